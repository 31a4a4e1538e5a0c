// Package model holds the view of a resume that the HTML template consumes.
// Every field is already resolved: defaults applied, dates formatted.
package model

// ResumeModel is the fully assembled resume for one user.
type ResumeModel struct {
	Header     ResumeHeader       `json:"header"`
	Experience []ResumeExperience `json:"experience"`
	Education  []ResumeEducation  `json:"education"`
	Skills     []ResumeSkill      `json:"skills"`
	Projects   []ResumeProject    `json:"projects"`
}

// ResumeHeader captures top-of-resume contact details.
type ResumeHeader struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedIn"`
	Portfolio string `json:"portfolio"`
}

// ResumeExperience represents a work history entry. End is "Present" for
// ongoing roles.
type ResumeExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

// Heading renders as "<title> at <company>", dropping whichever half is empty.
func (e ResumeExperience) Heading() string {
	return joinNonEmpty(e.Title, " at ", e.Company)
}

// ResumeEducation represents an education entry.
type ResumeEducation struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// Heading renders as "<degree> from <school>".
func (e ResumeEducation) Heading() string {
	return joinNonEmpty(e.Degree, " from ", e.School)
}

// ResumeSkill is a single named skill.
type ResumeSkill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ResumeProject represents a notable project.
type ResumeProject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

func joinNonEmpty(a, sep, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + sep + b
	}
}
