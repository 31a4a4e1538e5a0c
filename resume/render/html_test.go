package render

import (
	"strings"
	"testing"

	"resume-builder/resume/model"
)

func sampleModel() model.ResumeModel {
	return model.ResumeModel{
		Header: model.ResumeHeader{
			Name:     "Ada Lovelace",
			Email:    "ada@x.com",
			Phone:    "Your Phone",
			LinkedIn: "Your LinkedIn",
		},
		Experience: []model.ResumeExperience{
			{Title: "Engineer", Company: "Acme", Start: "Jan 2020", End: "Present", Description: "Built things"},
		},
		Education: []model.ResumeEducation{{Degree: "BSc", School: "MIT"}},
		Skills:    []model.ResumeSkill{{Name: "Go"}, {Name: "SQL"}},
		Projects:  []model.ResumeProject{{Name: "Engine", Description: "Analytical", Link: "https://example.com"}},
	}
}

func TestHTMLRendersFragments(t *testing.T) {
	out, err := HTML(sampleModel())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{
		"Ada Lovelace",
		"Engineer at Acme",
		"Jan 2020 - Present",
		"BSc from MIT",
		`<div class="skill">Go</div>`,
		"Analytical (https://example.com)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q", want)
		}
	}
	if strings.Index(out, ">Go<") > strings.Index(out, ">SQL<") {
		t.Fatalf("skills not rendered in retrieval order")
	}
}

func TestHTMLEmptyListsRenderCleanly(t *testing.T) {
	out, err := HTML(model.ResumeModel{Header: model.ResumeHeader{Name: "Your Name", Phone: "Your Phone", LinkedIn: "Your LinkedIn"}})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, bad := range []string{"undefined", "null", "<no value>", "{{", "}}"} {
		if strings.Contains(out, bad) {
			t.Fatalf("output contains %q", bad)
		}
	}
	for _, want := range []string{"Experience", "Projects", "Education", "Skills", "Your Name"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q", want)
		}
	}
}

func TestHTMLEscapesUserText(t *testing.T) {
	m := sampleModel()
	m.Header.Name = `<script>alert("x")</script>`
	m.Skills = []model.ResumeSkill{{Name: `<img src=x onerror=alert(1)>`}}
	m.Experience[0].Description = `<b>Led</b> the team<script>steal()</script> <a href="javascript:x">link</a>`

	out, err := HTML(m)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(out, "<script>") || strings.Contains(out, "<img") || strings.Contains(out, "javascript:") {
		t.Fatalf("user markup leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped name in output")
	}
	if !strings.Contains(out, "<b>Led</b> the team") {
		t.Fatalf("expected basic formatting to survive sanitizing")
	}
}

func TestRichTextKeepsLineBreaks(t *testing.T) {
	if got := string(richText("first\nsecond")); got != "first<br>second" {
		t.Fatalf("unexpected rich text %q", got)
	}
}

func TestDateRange(t *testing.T) {
	tests := []struct{ start, end, want string }{
		{"Jan 2020", "Present", "Jan 2020 - Present"},
		{"", "Present", "Present"},
		{"Jan 2020", "", "Jan 2020"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := dateRange(tt.start, tt.end); got != tt.want {
			t.Fatalf("dateRange(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestProjectBlockDescriptionKeepsLinkInside(t *testing.T) {
	out, err := HTML(model.ResumeModel{
		Projects: []model.ResumeProject{{Name: "Engine", Description: "<ul><li>fast</li></ul>", Link: "https://x.dev"}},
	})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(out, `<p class="desc">`) {
		t.Fatalf("block content must not be wrapped in a paragraph")
	}
	if !strings.Contains(out, `<div class="desc"><ul><li>fast</li></ul> (https://x.dev)</div>`) {
		t.Fatalf("link not kept inside the description block: %s", out)
	}
}
