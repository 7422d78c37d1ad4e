package record

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO form_data").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	saved, err := repo.Save(context.Background(), Record{FirstName: "Jo", Email: "j@x.com"})
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if saved.ID == "" || saved.FirstName != "Jo" {
		t.Fatalf("unexpected saved record %+v", saved)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresSaveMany_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO form_data").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO form_data").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	if _, err := repo.SaveMany(context.Background(), []Record{{FirstName: "A"}, {FirstName: "B"}}); err == nil {
		t.Fatalf("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresSaveMany_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO form_data").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO form_data").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	saved, err := repo.SaveMany(context.Background(), []Record{{FirstName: "A"}, {FirstName: "B"}})
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(saved) != 2 || saved[0].ID == saved[1].ID {
		t.Fatalf("unexpected saved records %+v", saved)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresFindByFirstNameAndEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "doc"}).
		AddRow("id-1", []byte(`{"firstName":"Alice","lastName":"One","email":"a@x.com"}`)).
		AddRow("id-2", []byte(`{"firstName":"Alice","lastName":"Two","email":"a@x.com"}`))
	mock.ExpectQuery("SELECT id, doc FROM form_data").WithArgs("Alice", "a@x.com").WillReturnRows(rows)

	got, err := repo.FindByFirstNameAndEmail(context.Background(), "Alice", "a@x.com")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(got) != 2 || got[0].ID != "id-1" || got[1].LastName != "Two" {
		t.Fatalf("unexpected records %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresFindByFirstNameAndEmail_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT id, doc FROM form_data").WithArgs("x", "y").WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}))

	got, err := repo.FindByFirstNameAndEmail(context.Background(), "x", "y")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
}

func TestPostgresEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS form_data").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS form_data_first_name_email_idx").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
