package resumes

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"resume-builder/internal/shared/validate"
)

const dateLayout = "2006-01-02"

// DetailsInput is the body of POST /details. Every field is optional.
type DetailsInput struct {
	FullName     string `json:"full_name" validate:"max=200"`
	Phone        string `json:"phone" validate:"max=50"`
	LinkedInURL  string `json:"linkedin_url" validate:"max=500"`
	PortfolioURL string `json:"portfolio_url" validate:"max=500"`
}

type ExperienceInput struct {
	JobTitle    string `json:"job_title" validate:"required,max=200"`
	Company     string `json:"company" validate:"required,max=200"`
	StartDate   string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Description string `json:"description" validate:"max=5000"`
}

type EducationInput struct {
	School    string `json:"school" validate:"required,max=200"`
	Degree    string `json:"degree" validate:"required,max=200"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type SkillInput struct {
	SkillName string `json:"skill_name" validate:"required,max=100"`
	Category  string `json:"category" validate:"max=100"`
}

type ProjectInput struct {
	ProjectName string `json:"project_name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Link        string `json:"link" validate:"omitempty,max=500"`
}

func init() {
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(ExperienceInput)
		checkDateOrder(sl, in.StartDate, in.EndDate)
	}, ExperienceInput{})
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(EducationInput)
		checkDateOrder(sl, in.StartDate, in.EndDate)
	}, EducationInput{})
}

func checkDateOrder(sl validator.StructLevel, start, end string) {
	if start == "" || end == "" {
		return
	}
	s, startErr := time.Parse(dateLayout, start)
	e, endErr := time.Parse(dateLayout, end)
	if startErr != nil || endErr != nil {
		return
	}
	if e.Before(s) {
		sl.ReportError(end, "end_date", "EndDate", "after_start", "")
	}
}

func (in DetailsInput) trimmed() DetailsInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.LinkedInURL = strings.TrimSpace(in.LinkedInURL)
	in.PortfolioURL = strings.TrimSpace(in.PortfolioURL)
	return in
}

func (in ExperienceInput) trimmed() ExperienceInput {
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Company = strings.TrimSpace(in.Company)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func (in EducationInput) trimmed() EducationInput {
	in.School = strings.TrimSpace(in.School)
	in.Degree = strings.TrimSpace(in.Degree)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	return in
}

func (in SkillInput) trimmed() SkillInput {
	in.SkillName = strings.TrimSpace(in.SkillName)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

func (in ProjectInput) trimmed() ProjectInput {
	in.ProjectName = strings.TrimSpace(in.ProjectName)
	in.Description = strings.TrimSpace(in.Description)
	in.Link = strings.TrimSpace(in.Link)
	return in
}
