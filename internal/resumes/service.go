package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/apperr"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/validate"
	"resume-builder/resume/render"
)

// PDFRenderer converts a filled HTML document into PDF bytes.
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Archiver keeps a copy of each generated PDF. Archiving is best effort.
type Archiver interface {
	Archive(ctx context.Context, userID string, pdf []byte) error
}

type Service struct {
	Repo     Repo
	Renderer PDFRenderer
	Archiver Archiver
}

func NewService(repo Repo, renderer PDFRenderer, archiver Archiver) *Service {
	return &Service{Repo: repo, Renderer: renderer, Archiver: archiver}
}

func (s *Service) SaveDetails(ctx context.Context, userID string, in DetailsInput) (PersonalDetails, error) {
	in = in.trimmed()
	if err := validate.Struct(in); err != nil {
		return PersonalDetails{}, err
	}
	if err := checkOwner(userID); err != nil {
		return PersonalDetails{}, err
	}
	d, err := s.Repo.UpsertDetails(ctx, userID, in)
	return d, classifyWrite(err, "save details")
}

func (s *Service) AddExperience(ctx context.Context, userID string, in ExperienceInput) (Experience, error) {
	in = in.trimmed()
	if err := validate.Struct(in); err != nil {
		return Experience{}, err
	}
	if err := checkOwner(userID); err != nil {
		return Experience{}, err
	}
	rec, err := s.Repo.AddExperience(ctx, userID, in)
	return rec, classifyWrite(err, "add experience")
}

func (s *Service) AddEducation(ctx context.Context, userID string, in EducationInput) (Education, error) {
	in = in.trimmed()
	if err := validate.Struct(in); err != nil {
		return Education{}, err
	}
	if err := checkOwner(userID); err != nil {
		return Education{}, err
	}
	rec, err := s.Repo.AddEducation(ctx, userID, in)
	return rec, classifyWrite(err, "add education")
}

func (s *Service) AddSkill(ctx context.Context, userID string, in SkillInput) (Skill, error) {
	in = in.trimmed()
	if err := validate.Struct(in); err != nil {
		return Skill{}, err
	}
	if err := checkOwner(userID); err != nil {
		return Skill{}, err
	}
	rec, err := s.Repo.AddSkill(ctx, userID, in)
	return rec, classifyWrite(err, "add skill")
}

func (s *Service) AddProject(ctx context.Context, userID string, in ProjectInput) (Project, error) {
	in = in.trimmed()
	if err := validate.Struct(in); err != nil {
		return Project{}, err
	}
	if err := checkOwner(userID); err != nil {
		return Project{}, err
	}
	rec, err := s.Repo.AddProject(ctx, userID, in)
	return rec, classifyWrite(err, "add project")
}

// Profile loads everything the user owns. A valid identity without a user
// row is a data integrity failure.
func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	if err := checkOwner(userID); err != nil {
		return Profile{}, err
	}
	p, err := s.Repo.LoadProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Profile{}, apperr.Wrap(apperr.ErrDataIntegrity, "user record missing", err)
		}
		return Profile{}, apperr.Wrap(apperr.ErrUpstream, "load profile", err)
	}
	return p.normalize(), nil
}

// Preview returns the filled HTML document for the user.
func (s *Service) Preview(ctx context.Context, userID string) (string, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return "", err
	}
	html, err := render.HTML(BuildModel(p))
	if err != nil {
		return "", apperr.Wrap(apperr.ErrDataIntegrity, "fill template", err)
	}
	return html, nil
}

// Generate assembles and renders the user's resume to PDF.
func (s *Service) Generate(ctx context.Context, userID string) ([]byte, error) {
	html, err := s.Preview(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.Renderer == nil {
		return nil, apperr.Wrap(apperr.ErrRenderFailure, "Failed to generate PDF.", errors.New("renderer not configured"))
	}

	metrics.IncRenderStarted()
	start := time.Now()
	pdf, err := s.Renderer.Render(ctx, html)
	metrics.ObserveRenderDuration(time.Since(start))
	if err != nil {
		metrics.IncRenderFailed()
		if !errors.Is(err, apperr.ErrRenderFailure) {
			err = apperr.Wrap(apperr.ErrRenderFailure, "Failed to generate PDF.", err)
		}
		return nil, err
	}
	metrics.IncRenderCompleted()
	telemetry.Info("resume.generated", map[string]any{
		"user_id":     userID,
		"size_bytes":  len(pdf),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if s.Archiver != nil {
		if err := s.Archiver.Archive(ctx, userID, pdf); err != nil {
			metrics.IncArchiveFailed()
			telemetry.Error("resume.archive_failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}
	return pdf, nil
}

// Delete removes one record the user owns. Missing and foreign records
// produce the same not-found error.
func (s *Service) Delete(ctx context.Context, section Section, userID, id string) error {
	if _, ok := section.table(); !ok {
		return apperr.New(apperr.ErrValidation, fmt.Sprintf("Unknown section %q.", section))
	}
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return apperr.New(apperr.ErrValidation, "Invalid "+strings.ToLower(section.label())+" id.")
	}
	if err := checkOwner(userID); err != nil {
		return err
	}
	n, err := s.Repo.DeleteOwned(ctx, section, userID, id)
	if err != nil {
		return apperr.Wrap(apperr.ErrUpstream, "delete "+string(section), err)
	}
	switch {
	case n == 0:
		return apperr.New(apperr.ErrNotFoundOrForbidden, notFoundMessage(section))
	case n == 1:
		return nil
	default:
		return apperr.Wrap(apperr.ErrDataIntegrity, "scoped delete",
			fmt.Errorf("%s %s removed %d rows for one id", section, id, n))
	}
}

func notFoundMessage(section Section) string {
	if section == SectionExperience {
		return "Experience not found or you do not have permission to delete it."
	}
	return section.label() + " not found or you do not have permission."
}

// checkOwner rejects an authenticated identity that cannot name a user row.
func checkOwner(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return apperr.Wrap(apperr.ErrDataIntegrity, "identity is not a user id", err)
	}
	return nil
}

func classifyWrite(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUserNotFound) {
		return apperr.Wrap(apperr.ErrDataIntegrity, op, err)
	}
	return apperr.Wrap(apperr.ErrUpstream, op, err)
}
