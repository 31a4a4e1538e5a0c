package resumes

import (
	"context"
	"errors"
)

// ErrUserNotFound means the owning user row does not exist.
var ErrUserNotFound = errors.New("user not found")

// Repo persists resume records. Every operation is scoped by the owning user.
type Repo interface {
	UpsertDetails(ctx context.Context, userID string, in DetailsInput) (PersonalDetails, error)
	AddExperience(ctx context.Context, userID string, in ExperienceInput) (Experience, error)
	AddEducation(ctx context.Context, userID string, in EducationInput) (Education, error)
	AddSkill(ctx context.Context, userID string, in SkillInput) (Skill, error)
	AddProject(ctx context.Context, userID string, in ProjectInput) (Project, error)
	// LoadProfile returns the user with all owned records, children in
	// insertion order.
	LoadProfile(ctx context.Context, userID string) (Profile, error)
	// DeleteOwned removes the record only if userID owns it and reports
	// how many rows were removed.
	DeleteOwned(ctx context.Context, section Section, userID, id string) (int64, error)
}
