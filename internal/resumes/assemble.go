package resumes

import (
	"time"

	"resume-builder/resume/model"
)

const (
	defaultName      = "Your Name"
	defaultPhone     = "Your Phone"
	defaultLinkedIn  = "Your LinkedIn"
	defaultPortfolio = "Your Portfolio"
	ongoing          = "Present"
)

// BuildModel maps a profile onto the template model. Absent contact fields
// get readable placeholders; absent record fields become empty strings.
func BuildModel(p Profile) model.ResumeModel {
	var d PersonalDetails
	if p.PersonalDetails != nil {
		d = *p.PersonalDetails
	}
	m := model.ResumeModel{
		Header: model.ResumeHeader{
			Name:      orDefault(d.FullName, defaultName),
			Email:     p.Email,
			Phone:     orDefault(d.Phone, defaultPhone),
			LinkedIn:  orDefault(d.LinkedInURL, defaultLinkedIn),
			Portfolio: orDefault(d.PortfolioURL, defaultPortfolio),
		},
		Experience: make([]model.ResumeExperience, 0, len(p.Experiences)),
		Education:  make([]model.ResumeEducation, 0, len(p.Education)),
		Skills:     make([]model.ResumeSkill, 0, len(p.Skills)),
		Projects:   make([]model.ResumeProject, 0, len(p.Projects)),
	}
	for _, e := range p.Experiences {
		m.Experience = append(m.Experience, model.ResumeExperience{
			Title:       e.JobTitle,
			Company:     e.Company,
			Start:       displayDate(e.StartDate),
			End:         orDefault(displayDate(e.EndDate), ongoing),
			Description: e.Description,
		})
	}
	for _, e := range p.Education {
		m.Education = append(m.Education, model.ResumeEducation{
			Degree: e.Degree,
			School: e.School,
			Start:  displayDate(e.StartDate),
			End:    displayDate(e.EndDate),
		})
	}
	for _, s := range p.Skills {
		m.Skills = append(m.Skills, model.ResumeSkill{Name: s.SkillName, Category: s.Category})
	}
	for _, pr := range p.Projects {
		m.Projects = append(m.Projects, model.ResumeProject{
			Name:        pr.ProjectName,
			Description: pr.Description,
			Link:        pr.Link,
		})
	}
	return m
}

// displayDate turns YYYY-MM-DD into "Jan 2006". Unparseable values are
// shown as stored.
func displayDate(value string) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return value
	}
	return t.Format("Jan 2006")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
