package generatedresumes

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGGetOwnedScopesByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
		WithArgs("gr-1", "bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "storage_key", "size_bytes", "sha256", "created_at"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetOwned(context.Background(), "bob", "gr-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGListByUserClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("alice", maxListLimit, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "storage_key", "size_bytes", "sha256", "created_at"}).
			AddRow("gr-1", "alice", "k/1_resume.pdf", int64(42), "abc", now))

	repo := &PGRepo{DB: db}
	items, err := repo.ListByUser(context.Background(), "alice", 5000, -3)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 || items[0].SizeBytes != 42 || items[0].StorageKey != "k/1_resume.pdf" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO generated_resumes")).
		WithArgs("gr-1", "alice", "key", int64(7), "sum", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	err = repo.Create(context.Background(), GeneratedResume{
		ID: "gr-1", UserID: "alice", StorageKey: "key", SizeBytes: 7, SHA256: "sum", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
