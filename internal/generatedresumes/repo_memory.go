package generatedresumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores generated resumes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]GeneratedResume
	byUser map[string][]GeneratedResume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]GeneratedResume),
		byUser: make(map[string][]GeneratedResume),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, resume GeneratedResume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[resume.ID] = resume
	r.byUser[resume.UserID] = append(r.byUser[resume.UserID], resume)
	return nil
}

func (r *MemoryRepo) GetOwned(ctx context.Context, userID, id string) (GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedResume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[id]
	if !ok || resume.UserID != userID {
		return GeneratedResume{}, ErrNotFound
	}
	return resume, nil
}

// ListByUser returns the user's archive newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	r.mu.RLock()
	resumes := append([]GeneratedResume(nil), r.byUser[userID]...)
	r.mu.RUnlock()

	if offset >= len(resumes) {
		return []GeneratedResume{}, nil
	}
	sort.SliceStable(resumes, func(i, j int) bool {
		return resumes[i].CreatedAt.After(resumes[j].CreatedAt)
	})
	end := len(resumes)
	if offset+limit < end {
		end = offset + limit
	}
	return resumes[offset:end], nil
}
