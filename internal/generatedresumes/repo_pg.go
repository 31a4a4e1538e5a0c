package generatedresumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, resume GeneratedResume) error {
	const query = `
INSERT INTO generated_resumes (id, user_id, storage_key, size_bytes, sha256, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.StorageKey,
		resume.SizeBytes,
		resume.SHA256,
		resume.CreatedAt,
	)
	return err
}

// GetOwned filters on both id and owner so foreign rows are never loaded.
func (r *PGRepo) GetOwned(ctx context.Context, userID, id string) (GeneratedResume, error) {
	const query = `
SELECT id, user_id, storage_key, size_bytes, sha256, created_at
FROM generated_resumes
WHERE id = $1 AND user_id = $2
LIMIT 1`
	var resume GeneratedResume
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(
		&resume.ID,
		&resume.UserID,
		&resume.StorageKey,
		&resume.SizeBytes,
		&resume.SHA256,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedResume{}, ErrNotFound
		}
		return GeneratedResume{}, err
	}
	return resume, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
SELECT id, user_id, storage_key, size_bytes, sha256, created_at
FROM generated_resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GeneratedResume{}
	for rows.Next() {
		var resume GeneratedResume
		if err := rows.Scan(
			&resume.ID,
			&resume.UserID,
			&resume.StorageKey,
			&resume.SizeBytes,
			&resume.SHA256,
			&resume.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
