package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// PostgresRepository stores each record as a JSONB document in form_data:
//
//	seq bigserial primary key (insertion order)
//	id  text unique (store-assigned identifier)
//	doc jsonb (the record document)
type PostgresRepository struct {
	db *sql.DB
}

var _ Store = (*PostgresRepository)(nil)

const (
	createFormDataTable = `
        CREATE TABLE IF NOT EXISTS form_data (
            seq BIGSERIAL PRIMARY KEY,
            id TEXT NOT NULL UNIQUE,
            doc JSONB NOT NULL
        )
    `
	createFormDataIndex = `
        CREATE INDEX IF NOT EXISTS form_data_first_name_email_idx
        ON form_data ((doc->>'firstName'), (doc->>'email'))
    `
	insertFormDataQuery = `INSERT INTO form_data (id, doc) VALUES ($1, $2)`
	findFormDataQuery   = `
        SELECT id, doc FROM form_data
        WHERE doc->>'firstName' = $1 AND doc->>'email' = $2
        ORDER BY seq
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the form_data table and its lookup index when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFormDataTable); err != nil {
		return fmt.Errorf("create form_data table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createFormDataIndex); err != nil {
		return fmt.Errorf("create form_data index: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertDocument(ctx context.Context, ex execer, rec Record) (Record, error) {
	rec.ID = uuid.NewString()
	doc, err := json.Marshal(rec)
	if err != nil {
		return Record{}, err
	}
	if _, err := ex.ExecContext(ctx, insertFormDataQuery, rec.ID, string(doc)); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (r *PostgresRepository) Save(ctx context.Context, rec Record) (Record, error) {
	return insertDocument(ctx, r.db, rec)
}

func (r *PostgresRepository) SaveMany(ctx context.Context, recs []Record) ([]Record, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	saved := make([]Record, 0, len(recs))
	for _, rec := range recs {
		s, err := insertDocument(ctx, tx, rec)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		saved = append(saved, s)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *PostgresRepository) FindByFirstNameAndEmail(ctx context.Context, firstName, email string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, findFormDataQuery, firstName, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", id, err)
		}
		rec.ID = id
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
