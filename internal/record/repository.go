package record

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrEmptyFile = errors.New("file is empty")
	ErrNoFiles   = errors.New("no files uploaded")
	ErrNoRecords = errors.New("at least one record is required")
)

// Store persists records. Implementations own their copies once saved.
type Store interface {
	Save(ctx context.Context, rec Record) (Record, error)
	SaveMany(ctx context.Context, recs []Record) ([]Record, error)
	FindByFirstNameAndEmail(ctx context.Context, firstName, email string) ([]Record, error)
}

// InMemoryRepository keeps records in insertion order. Used for local runs and tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []Record
}

var _ Store = (*InMemoryRepository)(nil)

func NewInMemoryRepository(seed []Record) *InMemoryRepository {
	repo := &InMemoryRepository{records: make([]Record, 0, len(seed))}
	for _, rec := range seed {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		repo.records = append(repo.records, rec)
	}
	return repo
}

func (r *InMemoryRepository) Save(ctx context.Context, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = uuid.NewString()
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *InMemoryRepository) SaveMany(ctx context.Context, recs []Record) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := make([]Record, 0, len(recs))
	for _, rec := range recs {
		rec.ID = uuid.NewString()
		r.records = append(r.records, rec)
		saved = append(saved, rec)
	}
	return saved, nil
}

func (r *InMemoryRepository) FindByFirstNameAndEmail(ctx context.Context, firstName, email string) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0)
	for _, rec := range r.records {
		if rec.FirstName == firstName && rec.Email == email {
			out = append(out, rec)
		}
	}
	return out, nil
}

// All returns a copy of every stored record in insertion order.
func (r *InMemoryRepository) All() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}
