package ai

import (
	_ "embed"
	"strings"

	"github.com/spigell/job-scout/internal/utils"
	"github.com/spigell/job-scout/internal/vacancy"
)

const (
	CoverMaxTokens = 800
	AdaptMaxTokens = 1000

	coverResumeLimit = 2500
	adaptResumeLimit = 3000
	descriptionLimit = 2000
)

//go:embed prompts/cover.md
var coverTemplate string

//go:embed prompts/adapt.md
var adaptTemplate string

// CoverPrompt renders the cover letter prompt for a vacancy and the
// candidate's resume text.
func CoverPrompt(v *vacancy.Vacancy, resume string) string {
	return render(coverTemplate, v, utils.Truncate(resume, coverResumeLimit))
}

// AdaptPrompt renders the resume adaptation prompt.
func AdaptPrompt(v *vacancy.Vacancy, resume string) string {
	return render(adaptTemplate, v, utils.Truncate(resume, adaptResumeLimit))
}

func render(template string, v *vacancy.Vacancy, resume string) string {
	// Scraped postings carry their text in FullText instead of Description.
	raw := v.Description
	if raw == "" {
		raw = v.FullText
	}
	description := utils.Truncate(utils.CleanHTML(raw), descriptionLimit)

	prompt := strings.ReplaceAll(template, "{{NAME}}", v.Name)
	prompt = strings.ReplaceAll(prompt, "{{EMPLOYER}}", v.Employer.Name)
	prompt = strings.ReplaceAll(prompt, "{{DESCRIPTION}}", description)
	prompt = strings.ReplaceAll(prompt, "{{RESUME}}", resume)

	return prompt
}
