package record

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Source is one uploaded spreadsheet.
type Source interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

type multipartSource struct {
	fh *multipart.FileHeader
}

// FromFileHeader adapts a multipart upload part.
func FromFileHeader(fh *multipart.FileHeader) Source {
	return multipartSource{fh: fh}
}

func (m multipartSource) Name() string { return m.fh.Filename }
func (m multipartSource) Size() int64  { return m.fh.Size }

func (m multipartSource) Open() (io.ReadCloser, error) {
	return m.fh.Open()
}

type fileSource struct {
	path string
	size int64
}

// FromPath adapts a local file. The size is read once, up front.
func FromPath(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return fileSource{path: path, size: info.Size()}, nil
}

func (f fileSource) Name() string { return filepath.Base(f.path) }
func (f fileSource) Size() int64  { return f.size }

func (f fileSource) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}
