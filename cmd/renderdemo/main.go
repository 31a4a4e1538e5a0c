// renderdemo renders a sample resume through headless Chrome and checks the
// resulting PDF carries the expected text.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "renderdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("renderdemo", pflag.ContinueOnError)
	outPath := flags.StringP("out", "o", "./out/sample_resume.pdf", "output path for the generated PDF")
	htmlOut := flags.Bool("html", false, "also write the filled HTML next to the PDF")
	chromePath := flags.String("chrome", os.Getenv("CHROME_PATH"), "path to a Chrome or Chromium binary")
	timeout := flags.Duration("timeout", 30*time.Second, "render timeout")
	if err := flags.Parse(args); err != nil {
		return err
	}

	resume := sampleResumeModel()
	html, err := render.HTML(resume)
	if err != nil {
		return fmt.Errorf("fill template: %w", err)
	}

	renderer := render.NewRenderer(render.ChromeLauncher{ExecPath: *chromePath}, *timeout)
	pdf, err := renderer.Render(context.Background(), html)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(*outPath, pdf, 0o644); err != nil {
		return err
	}
	if *htmlOut {
		htmlPath := strings.TrimSuffix(*outPath, filepath.Ext(*outPath)) + ".html"
		if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
			return err
		}
	}

	text, err := render.ExtractText(pdf)
	if err != nil {
		return fmt.Errorf("read back pdf: %w", err)
	}
	for _, want := range []string{resume.Header.Name, resume.Experience[0].Company} {
		if !strings.Contains(text, want) {
			return fmt.Errorf("rendered pdf missing %q", want)
		}
	}

	fmt.Printf("OK: wrote %s (%d bytes)\n", *outPath, len(pdf))
	return nil
}

func sampleResumeModel() model.ResumeModel {
	return model.ResumeModel{
		Header: model.ResumeHeader{
			Name:      "Jordan Lee",
			Email:     "jordan.lee@example.com",
			Phone:     "+1-555-0102",
			LinkedIn:  "linkedin.com/in/jordanlee",
			Portfolio: "jordanlee.dev",
		},
		Experience: []model.ResumeExperience{
			{
				Title:       "Senior Backend Engineer",
				Company:     "Acme Logistics",
				Start:       "Apr 2021",
				End:         "Present",
				Description: "Designed a routing service that reduced shipment latency by 18%.\nImplemented distributed tracing.",
			},
			{
				Title:       "Backend Engineer",
				Company:     "Blue Harbor Systems",
				Start:       "Jan 2018",
				End:         "Mar 2021",
				Description: "Built event-driven ingestion pipelines for <b>compliance</b> data feeds.",
			},
		},
		Education: []model.ResumeEducation{
			{Degree: "BSc Computer Science", School: "University of Texas", Start: "Sep 2013", End: "May 2017"},
		},
		Skills: []model.ResumeSkill{{Name: "Go"}, {Name: "PostgreSQL"}, {Name: "AWS"}},
		Projects: []model.ResumeProject{
			{Name: "routekit", Description: "Open source route planning library.", Link: "https://github.com/jordanlee/routekit"},
		},
	}
}
