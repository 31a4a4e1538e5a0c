package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"resume-builder/resume/model"
)

//go:embed templates/resume.html
var templateFS embed.FS

// descriptionPolicy keeps basic inline formatting in free-text descriptions
// and strips everything else, including attributes.
var descriptionPolicy = bluemonday.NewPolicy().
	AllowElements("b", "strong", "i", "em", "u", "br", "p", "ul", "ol", "li")

var resumeTemplate = template.Must(
	template.New("resume.html").
		Funcs(template.FuncMap{
			"richText":  richText,
			"dateRange": dateRange,
		}).
		ParseFS(templateFS, "templates/resume.html"),
)

// HTML fills the resume template. All user text is escaped except
// descriptions, which pass through the sanitizer first.
func HTML(resume model.ResumeModel) (string, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, resume); err != nil {
		return "", fmt.Errorf("execute resume template: %w", err)
	}
	return buf.String(), nil
}

func richText(s string) template.HTML {
	clean := descriptionPolicy.Sanitize(s)
	clean = strings.ReplaceAll(strings.TrimSpace(clean), "\n", "<br>")
	return template.HTML(clean)
}

func dateRange(start, end string) string {
	switch {
	case start == "":
		return end
	case end == "":
		return start
	default:
		return start + " - " + end
	}
}
