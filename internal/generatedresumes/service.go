package generatedresumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/apperr"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
)

const archiveFileName = "resume.pdf"

// Service archives generated PDFs and serves them back to their owner.
type Service struct {
	Repo  Repo
	Store object.Store
	now   func() time.Time
}

func NewService(repo Repo, store object.Store) *Service {
	return &Service{Repo: repo, Store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Archive stores pdf and records it for userID. The object is removed again
// if the record cannot be written.
func (s *Service) Archive(ctx context.Context, userID string, pdf []byte) error {
	if s == nil || s.Repo == nil || s.Store == nil {
		return errors.New("archive not configured")
	}
	info, err := s.Store.Save(ctx, userID, archiveFileName, "application/pdf", bytes.NewReader(pdf))
	if err != nil {
		return fmt.Errorf("store pdf: %w", err)
	}
	record := GeneratedResume{
		ID:         uuid.NewString(),
		UserID:     userID,
		StorageKey: info.Key,
		SizeBytes:  info.SizeBytes,
		SHA256:     info.SHA256,
		CreatedAt:  s.now(),
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		if derr := s.Store.Delete(ctx, info.Key); derr != nil {
			telemetry.Error("generated_resume.orphaned_object", map[string]any{
				"storage_key": info.Key,
				"error":       derr.Error(),
			})
		}
		return fmt.Errorf("record pdf: %w", err)
	}
	telemetry.Info("generated_resume.archived", map[string]any{
		"user_id":    userID,
		"id":         record.ID,
		"size_bytes": record.SizeBytes,
	})
	return nil
}

// List returns the caller's archive newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error) {
	out, err := s.Repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrUpstream, "list generated resumes", err)
	}
	return out, nil
}

// Open returns the archived PDF if the caller owns it.
func (s *Service) Open(ctx context.Context, userID, id string) (GeneratedResume, io.ReadCloser, error) {
	if _, err := uuid.Parse(id); err != nil {
		return GeneratedResume{}, nil, apperr.New(apperr.ErrValidation, "Invalid generated resume id.")
	}
	record, err := s.Repo.GetOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return GeneratedResume{}, nil, notFound()
		}
		return GeneratedResume{}, nil, apperr.Wrap(apperr.ErrUpstream, "load generated resume", err)
	}
	body, err := s.Store.Open(ctx, record.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return GeneratedResume{}, nil, apperr.Wrap(apperr.ErrDataIntegrity, "archived object missing", err)
		}
		return GeneratedResume{}, nil, apperr.Wrap(apperr.ErrUpstream, "open archived object", err)
	}
	return record, body, nil
}

func notFound() error {
	return apperr.New(apperr.ErrNotFoundOrForbidden, "Generated resume not found or you do not have permission.")
}
