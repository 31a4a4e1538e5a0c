package resumes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/users"
)

// MemoryRepo keeps resume records in process. User lookups go through the
// accounts repository so profiles carry the real email.
type MemoryRepo struct {
	mu    sync.RWMutex
	users users.Repo
	now   func() time.Time

	details     map[string]PersonalDetails
	experiences []Experience
	education   []Education
	skills      []Skill
	projects    []Project
}

func NewMemoryRepo(userRepo users.Repo) *MemoryRepo {
	return &MemoryRepo{
		users:   userRepo,
		now:     func() time.Time { return time.Now().UTC() },
		details: make(map[string]PersonalDetails),
	}
}

func (r *MemoryRepo) checkUser(ctx context.Context, userID string) (users.User, error) {
	if err := ctx.Err(); err != nil {
		return users.User{}, err
	}
	u, err := r.users.GetByID(ctx, userID)
	if errors.Is(err, users.ErrNotFound) {
		return users.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *MemoryRepo) UpsertDetails(ctx context.Context, userID string, in DetailsInput) (PersonalDetails, error) {
	if _, err := r.checkUser(ctx, userID); err != nil {
		return PersonalDetails{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	d, ok := r.details[userID]
	if !ok {
		d = PersonalDetails{ID: uuid.NewString(), UserID: userID, CreatedAt: now}
	}
	d.FullName = in.FullName
	d.Phone = in.Phone
	d.LinkedInURL = in.LinkedInURL
	d.PortfolioURL = in.PortfolioURL
	d.UpdatedAt = now
	r.details[userID] = d
	return d, nil
}

func (r *MemoryRepo) AddExperience(ctx context.Context, userID string, in ExperienceInput) (Experience, error) {
	if _, err := r.checkUser(ctx, userID); err != nil {
		return Experience{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := Experience{
		ID:          uuid.NewString(),
		UserID:      userID,
		JobTitle:    in.JobTitle,
		Company:     in.Company,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
		CreatedAt:   r.now(),
	}
	r.experiences = append(r.experiences, rec)
	return rec, nil
}

func (r *MemoryRepo) AddEducation(ctx context.Context, userID string, in EducationInput) (Education, error) {
	if _, err := r.checkUser(ctx, userID); err != nil {
		return Education{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := Education{
		ID:        uuid.NewString(),
		UserID:    userID,
		School:    in.School,
		Degree:    in.Degree,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		CreatedAt: r.now(),
	}
	r.education = append(r.education, rec)
	return rec, nil
}

func (r *MemoryRepo) AddSkill(ctx context.Context, userID string, in SkillInput) (Skill, error) {
	if _, err := r.checkUser(ctx, userID); err != nil {
		return Skill{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := Skill{
		ID:        uuid.NewString(),
		UserID:    userID,
		SkillName: in.SkillName,
		Category:  in.Category,
		CreatedAt: r.now(),
	}
	r.skills = append(r.skills, rec)
	return rec, nil
}

func (r *MemoryRepo) AddProject(ctx context.Context, userID string, in ProjectInput) (Project, error) {
	if _, err := r.checkUser(ctx, userID); err != nil {
		return Project{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProjectName: in.ProjectName,
		Description: in.Description,
		Link:        in.Link,
		CreatedAt:   r.now(),
	}
	r.projects = append(r.projects, rec)
	return rec, nil
}

func (r *MemoryRepo) LoadProfile(ctx context.Context, userID string) (Profile, error) {
	u, err := r.checkUser(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := Profile{UserID: u.ID, Email: u.Email}
	if d, ok := r.details[userID]; ok {
		p.PersonalDetails = &d
	}
	p.Experiences = ownedBy(r.experiences, userID, func(e Experience) string { return e.UserID })
	p.Education = ownedBy(r.education, userID, func(e Education) string { return e.UserID })
	p.Skills = ownedBy(r.skills, userID, func(s Skill) string { return s.UserID })
	p.Projects = ownedBy(r.projects, userID, func(p Project) string { return p.UserID })
	return p, nil
}

func (r *MemoryRepo) DeleteOwned(ctx context.Context, section Section, userID, id string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	match := func(recID, owner string) bool { return recID == id && owner == userID }
	var n int64
	switch section {
	case SectionExperience:
		r.experiences, n = removeWhere(r.experiences, func(e Experience) bool { return match(e.ID, e.UserID) })
	case SectionEducation:
		r.education, n = removeWhere(r.education, func(e Education) bool { return match(e.ID, e.UserID) })
	case SectionSkill:
		r.skills, n = removeWhere(r.skills, func(s Skill) bool { return match(s.ID, s.UserID) })
	case SectionProject:
		r.projects, n = removeWhere(r.projects, func(p Project) bool { return match(p.ID, p.UserID) })
	default:
		return 0, fmt.Errorf("unknown section %q", section)
	}
	return n, nil
}

func ownedBy[T any](items []T, userID string, owner func(T) string) []T {
	out := []T{}
	for _, it := range items {
		if owner(it) == userID {
			out = append(out, it)
		}
	}
	return out
}

func removeWhere[T any](items []T, drop func(T) bool) ([]T, int64) {
	kept := items[:0]
	var n int64
	for _, it := range items {
		if drop(it) {
			n++
			continue
		}
		kept = append(kept, it)
	}
	return kept, n
}

var _ Repo = (*MemoryRepo)(nil)
