package resumes

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoDeleteOwnedScopesByUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM experiences WHERE id = $1 AND user_id = $2")).
		WithArgs("exp-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.DeleteOwned(context.Background(), SectionExperience, "user-1", "exp-1")
	if err != nil {
		t.Fatalf("DeleteOwned: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteOwnedTables(t *testing.T) {
	for section, table := range sectionTables {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM "+table+" WHERE id = $1 AND user_id = $2")).
			WithArgs("rec-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		n, err := repo.DeleteOwned(context.Background(), section, "user-1", "rec-1")
		if err != nil || n != 1 {
			t.Fatalf("%s: n=%d err=%v", section, n, err)
		}
	}

	repo, _ := newMockRepo(t)
	if _, err := repo.DeleteOwned(context.Background(), Section("users"), "user-1", "rec-1"); err == nil {
		t.Fatalf("expected unknown section to be rejected before any query")
	}
}

func TestPGRepoAddExperienceStoresNullDates(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO experiences").
		WithArgs("user-1", "Engineer", "Acme", "2020-01-15", nil, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("exp-1", created))

	rec, err := repo.AddExperience(context.Background(), "user-1", ExperienceInput{
		JobTitle:  "Engineer",
		Company:   "Acme",
		StartDate: "2020-01-15",
	})
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if rec.ID != "exp-1" || rec.EndDate != "" || rec.UserID != "user-1" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoAddMapsMissingOwner(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("INSERT INTO skills").
		WithArgs("ghost", "Go", "").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	if _, err := repo.AddSkill(context.Background(), "ghost", SkillInput{SkillName: "Go"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPGRepoUpsertDetails(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (user_id) DO UPDATE")).
		WithArgs("user-1", "Ada", "555", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("det-1", now, now))

	d, err := repo.UpsertDetails(context.Background(), "user-1", DetailsInput{FullName: "Ada", Phone: "555"})
	if err != nil {
		t.Fatalf("UpsertDetails: %v", err)
	}
	if d.ID != "det-1" || d.FullName != "Ada" {
		t.Fatalf("unexpected details: %+v", d)
	}
}

func TestPGRepoLoadProfileReadsOnlyOwnedRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	start := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email FROM users WHERE id = $1")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow("user-1", "a@x.com"))
	mock.ExpectQuery("FROM personal_details").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "phone", "linkedin_url", "portfolio_url", "created_at", "updated_at"}))
	mock.ExpectQuery("FROM experiences").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_title", "company", "start_date", "end_date", "description", "created_at"}).
			AddRow("exp-1", "Engineer", "Acme", start, nil, "", now))
	mock.ExpectQuery("FROM education").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "school", "degree", "start_date", "end_date", "created_at"}))
	mock.ExpectQuery("FROM skills").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "skill_name", "category", "created_at"}).
			AddRow("sk-1", "Go", "", now).
			AddRow("sk-2", "SQL", "", now))
	mock.ExpectQuery("FROM projects").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_name", "description", "link", "created_at"}))
	mock.ExpectCommit()

	p, err := repo.LoadProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.Email != "a@x.com" || p.PersonalDetails != nil {
		t.Fatalf("unexpected profile header: %+v", p)
	}
	if len(p.Experiences) != 1 || p.Experiences[0].StartDate != "2020-01-15" || p.Experiences[0].EndDate != "" {
		t.Fatalf("unexpected experiences: %+v", p.Experiences)
	}
	if len(p.Skills) != 2 || p.Skills[0].SkillName != "Go" || p.Skills[1].SkillName != "SQL" {
		t.Fatalf("unexpected skills order: %+v", p.Skills)
	}
	if p.Education == nil || p.Projects == nil {
		t.Fatalf("empty collections should not be nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoLoadProfileMissingUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email FROM users WHERE id = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))
	mock.ExpectRollback()

	if _, err := repo.LoadProfile(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
