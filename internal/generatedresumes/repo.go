package generatedresumes

import "context"

// Repo defines persistence operations for generated resumes.
type Repo interface {
	Create(ctx context.Context, resume GeneratedResume) error
	GetOwned(ctx context.Context, userID, id string) (GeneratedResume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error)
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
