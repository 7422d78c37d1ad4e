package record

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"
)

// lineParser treats each non-empty line as "first,last,phone,email,extra".
func lineParser(r io.Reader) ([]Record, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if string(b) == "bad" {
		return nil, errors.New("error parsing spreadsheet: corrupt")
	}
	out := make([]Record, 0)
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		if line == "" {
			continue
		}
		cols := append(strings.Split(line, ","), "", "", "", "", "")
		out = append(out, Record{FirstName: cols[0], LastName: cols[1], PhoneNumber: cols[2], Email: cols[3], AdditionalFields: cols[4]})
	}
	return out, nil
}

type memSource struct {
	name string
	data string
}

func (m memSource) Name() string { return m.name }
func (m memSource) Size() int64  { return int64(len(m.data)) }
func (m memSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(m.data)), nil
}

// flakyStore delegates to an in-memory store and fails after allowed saves.
type flakyStore struct {
	*InMemoryRepository
	allowed int
	saves   int
}

var errStoreDown = errors.New("store unavailable")

func (s *flakyStore) Save(ctx context.Context, rec Record) (Record, error) {
	if s.saves >= s.allowed {
		return Record{}, errStoreDown
	}
	s.saves++
	return s.InMemoryRepository.Save(ctx, rec)
}

func (s *flakyStore) SaveMany(ctx context.Context, recs []Record) ([]Record, error) {
	return nil, errStoreDown
}

func (s *flakyStore) FindByFirstNameAndEmail(ctx context.Context, firstName, email string) ([]Record, error) {
	return nil, errStoreDown
}

type upload struct {
	name string
	data string
}

func multipartBody(t *testing.T, files ...upload) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(f.data)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return buf, w.FormDataContentType()
}
