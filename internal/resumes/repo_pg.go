package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"resume-builder/internal/shared/storage/db"
)

const foreignKeyViolation = "23503"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) UpsertDetails(ctx context.Context, userID string, in DetailsInput) (PersonalDetails, error) {
	const query = `
INSERT INTO personal_details (user_id, full_name, phone, linkedin_url, portfolio_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE SET
  full_name = EXCLUDED.full_name,
  phone = EXCLUDED.phone,
  linkedin_url = EXCLUDED.linkedin_url,
  portfolio_url = EXCLUDED.portfolio_url,
  updated_at = now()
RETURNING id, created_at, updated_at`
	d := PersonalDetails{
		UserID:       userID,
		FullName:     in.FullName,
		Phone:        in.Phone,
		LinkedInURL:  in.LinkedInURL,
		PortfolioURL: in.PortfolioURL,
	}
	err := r.DB.QueryRowContext(ctx, query, userID, in.FullName, in.Phone, in.LinkedInURL, in.PortfolioURL).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return PersonalDetails{}, mapWriteErr(err)
	}
	return d, nil
}

func (r *PGRepo) AddExperience(ctx context.Context, userID string, in ExperienceInput) (Experience, error) {
	const query = `
INSERT INTO experiences (user_id, job_title, company, start_date, end_date, description)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`
	rec := Experience{
		UserID:      userID,
		JobTitle:    in.JobTitle,
		Company:     in.Company,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
	}
	err := r.DB.QueryRowContext(ctx, query, userID, in.JobTitle, in.Company,
		nullableDate(in.StartDate), nullableDate(in.EndDate), in.Description).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return Experience{}, mapWriteErr(err)
	}
	return rec, nil
}

func (r *PGRepo) AddEducation(ctx context.Context, userID string, in EducationInput) (Education, error) {
	const query = `
INSERT INTO education (user_id, school, degree, start_date, end_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	rec := Education{
		UserID:    userID,
		School:    in.School,
		Degree:    in.Degree,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	err := r.DB.QueryRowContext(ctx, query, userID, in.School, in.Degree,
		nullableDate(in.StartDate), nullableDate(in.EndDate)).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return Education{}, mapWriteErr(err)
	}
	return rec, nil
}

func (r *PGRepo) AddSkill(ctx context.Context, userID string, in SkillInput) (Skill, error) {
	const query = `
INSERT INTO skills (user_id, skill_name, category)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	rec := Skill{UserID: userID, SkillName: in.SkillName, Category: in.Category}
	err := r.DB.QueryRowContext(ctx, query, userID, in.SkillName, in.Category).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return Skill{}, mapWriteErr(err)
	}
	return rec, nil
}

func (r *PGRepo) AddProject(ctx context.Context, userID string, in ProjectInput) (Project, error) {
	const query = `
INSERT INTO projects (user_id, project_name, description, link)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	rec := Project{UserID: userID, ProjectName: in.ProjectName, Description: in.Description, Link: in.Link}
	err := r.DB.QueryRowContext(ctx, query, userID, in.ProjectName, in.Description, in.Link).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return Project{}, mapWriteErr(err)
	}
	return rec, nil
}

// LoadProfile reads the user and every owned collection inside one
// read-only transaction so the snapshot is consistent.
func (r *PGRepo) LoadProfile(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	err := db.WithTx(ctx, r.DB, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead}, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT id, email FROM users WHERE id = $1`, userID).Scan(&p.UserID, &p.Email)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if p.PersonalDetails, err = loadDetails(ctx, tx, userID); err != nil {
			return err
		}
		if p.Experiences, err = loadExperiences(ctx, tx, userID); err != nil {
			return err
		}
		if p.Education, err = loadEducation(ctx, tx, userID); err != nil {
			return err
		}
		if p.Skills, err = loadSkills(ctx, tx, userID); err != nil {
			return err
		}
		p.Projects, err = loadProjects(ctx, tx, userID)
		return err
	})
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (r *PGRepo) DeleteOwned(ctx context.Context, section Section, userID, id string) (int64, error) {
	table, ok := section.table()
	if !ok {
		return 0, fmt.Errorf("unknown section %q", section)
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func loadDetails(ctx context.Context, tx *sql.Tx, userID string) (*PersonalDetails, error) {
	const query = `
SELECT id, full_name, phone, linkedin_url, portfolio_url, created_at, updated_at
FROM personal_details
WHERE user_id = $1`
	d := PersonalDetails{UserID: userID}
	err := tx.QueryRowContext(ctx, query, userID).Scan(
		&d.ID, &d.FullName, &d.Phone, &d.LinkedInURL, &d.PortfolioURL, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load personal details: %w", err)
	}
	return &d, nil
}

func loadExperiences(ctx context.Context, tx *sql.Tx, userID string) ([]Experience, error) {
	const query = `
SELECT id, job_title, company, start_date, end_date, description, created_at
FROM experiences
WHERE user_id = $1
ORDER BY created_at, id`
	rows, err := tx.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("load experiences: %w", err)
	}
	defer rows.Close()
	out := []Experience{}
	for rows.Next() {
		rec := Experience{UserID: userID}
		var start, end sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.JobTitle, &rec.Company, &start, &end, &rec.Description, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		rec.StartDate = formatDate(start)
		rec.EndDate = formatDate(end)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func loadEducation(ctx context.Context, tx *sql.Tx, userID string) ([]Education, error) {
	const query = `
SELECT id, school, degree, start_date, end_date, created_at
FROM education
WHERE user_id = $1
ORDER BY created_at, id`
	rows, err := tx.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("load education: %w", err)
	}
	defer rows.Close()
	out := []Education{}
	for rows.Next() {
		rec := Education{UserID: userID}
		var start, end sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.School, &rec.Degree, &start, &end, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan education: %w", err)
		}
		rec.StartDate = formatDate(start)
		rec.EndDate = formatDate(end)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func loadSkills(ctx context.Context, tx *sql.Tx, userID string) ([]Skill, error) {
	const query = `
SELECT id, skill_name, category, created_at
FROM skills
WHERE user_id = $1
ORDER BY created_at, id`
	rows, err := tx.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	defer rows.Close()
	out := []Skill{}
	for rows.Next() {
		rec := Skill{UserID: userID}
		if err := rows.Scan(&rec.ID, &rec.SkillName, &rec.Category, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func loadProjects(ctx context.Context, tx *sql.Tx, userID string) ([]Project, error) {
	const query = `
SELECT id, project_name, description, link, created_at
FROM projects
WHERE user_id = $1
ORDER BY created_at, id`
	rows, err := tx.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	defer rows.Close()
	out := []Project{}
	for rows.Next() {
		rec := Project{UserID: userID}
		if err := rows.Scan(&rec.ID, &rec.ProjectName, &rec.Description, &rec.Link, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullableDate(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatDate(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(dateLayout)
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return ErrUserNotFound
	}
	return err
}

var _ Repo = (*PGRepo)(nil)
