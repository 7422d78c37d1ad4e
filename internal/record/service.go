package record

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/wichananm65/dynamic-form-backend/internal/metrics"
)

// Parser turns one spreadsheet stream into records, header row excluded.
type Parser func(r io.Reader) ([]Record, error)

// Service orchestrates record intake and lookup.
type Service struct {
	store   Store
	parse   Parser
	log     *zap.Logger
	metrics *metrics.Recorder
}

func NewService(store Store, parse Parser, log *zap.Logger, rec *metrics.Recorder) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, parse: parse, log: log, metrics: rec}
}

// BulkUpload parses and saves every file in order. The first failure stops the
// batch; records saved before it stay persisted.
func (s *Service) BulkUpload(ctx context.Context, files []Source) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	for _, f := range files {
		if f.Size() == 0 {
			s.metrics.FileProcessed(metrics.FileEmpty)
			return fmt.Errorf("%w: %s", ErrEmptyFile, f.Name())
		}
		n, err := s.uploadFile(ctx, f)
		s.metrics.RecordsSaved(metrics.SourceBulk, n)
		if err != nil {
			return err
		}
		s.metrics.FileProcessed(metrics.FileOK)
		s.log.Info("spreadsheet imported", zap.String("file", f.Name()), zap.Int("records", n))
	}
	return nil
}

func (s *Service) uploadFile(ctx context.Context, f Source) (int, error) {
	rc, err := f.Open()
	if err != nil {
		s.metrics.FileProcessed(metrics.FileParseError)
		return 0, fmt.Errorf("open %s: %w", f.Name(), err)
	}
	recs, err := s.parse(rc)
	rc.Close()
	if err != nil {
		s.metrics.FileProcessed(metrics.FileParseError)
		return 0, err
	}

	for i, rec := range recs {
		if _, err := s.store.Save(ctx, rec); err != nil {
			s.metrics.FileProcessed(metrics.FileStoreError)
			return i, fmt.Errorf("save record %d of %s: %w", i+1, f.Name(), err)
		}
	}
	return len(recs), nil
}

func (s *Service) SaveRecord(ctx context.Context, rec Record) (Record, error) {
	saved, err := s.store.Save(ctx, rec)
	if err != nil {
		return Record{}, fmt.Errorf("save record: %w", err)
	}
	s.metrics.RecordsSaved(metrics.SourceSingle, 1)
	return saved, nil
}

func (s *Service) SaveRecords(ctx context.Context, recs []Record) ([]Record, error) {
	if len(recs) == 0 {
		return nil, ErrNoRecords
	}
	saved, err := s.store.SaveMany(ctx, recs)
	if err != nil {
		return nil, fmt.Errorf("save records: %w", err)
	}
	s.metrics.RecordsSaved(metrics.SourceBatch, len(saved))
	return saved, nil
}

// RetrieveRecords returns records whose first name and email match exactly.
func (s *Service) RetrieveRecords(ctx context.Context, firstName, email string) ([]Record, error) {
	recs, err := s.store.FindByFirstNameAndEmail(ctx, firstName, email)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	if recs == nil {
		recs = []Record{}
	}
	return recs, nil
}
