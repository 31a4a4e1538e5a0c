package resumes

import "time"

// PersonalDetails holds the contact block of a resume. At most one per user.
type PersonalDetails struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	LinkedInURL  string    `json:"linkedin_url"`
	PortfolioURL string    `json:"portfolio_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Experience is a work history entry. An empty EndDate means ongoing.
// Dates are YYYY-MM-DD or empty.
type Experience struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	JobTitle    string    `json:"job_title"`
	Company     string    `json:"company"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Education struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	School    string    `json:"school"`
	Degree    string    `json:"degree"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

type Skill struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SkillName string    `json:"skill_name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ProjectName string    `json:"project_name"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}

// Profile is a user with every owned record, read in one logical pass.
// It never carries the credential hash.
type Profile struct {
	UserID          string           `json:"id"`
	Email           string           `json:"email"`
	PersonalDetails *PersonalDetails `json:"personal_details"`
	Experiences     []Experience     `json:"experiences"`
	Education       []Education      `json:"education"`
	Skills          []Skill          `json:"skills"`
	Projects        []Project        `json:"projects"`
}

// normalize replaces nil lists with empty ones so they encode as [].
func (p Profile) normalize() Profile {
	if p.Experiences == nil {
		p.Experiences = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Skills == nil {
		p.Skills = []Skill{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	return p
}

// Section names a user-owned collection that supports scoped deletes.
type Section string

const (
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkill      Section = "skill"
	SectionProject    Section = "project"
)

var sectionTables = map[Section]string{
	SectionExperience: "experiences",
	SectionEducation:  "education",
	SectionSkill:      "skills",
	SectionProject:    "projects",
}

var sectionLabels = map[Section]string{
	SectionExperience: "Experience",
	SectionEducation:  "Education",
	SectionSkill:      "Skill",
	SectionProject:    "Project",
}

func (s Section) table() (string, bool) {
	t, ok := sectionTables[s]
	return t, ok
}

func (s Section) label() string {
	if l, ok := sectionLabels[s]; ok {
		return l
	}
	return "Record"
}
