package ai

import (
	"strings"
	"testing"

	"github.com/spigell/job-scout/internal/vacancy"
)

func TestCoverPrompt(t *testing.T) {
	t.Parallel()

	v := &vacancy.Vacancy{
		Name:        "Менеджер проектов",
		Employer:    vacancy.Employer{Name: "Яндекс"},
		Description: "<p>Ведение проектов &amp; работа с командой</p>",
	}

	got := CoverPrompt(v, "Опытный менеджер проектов, 5 лет в IT")

	if strings.Contains(got, "{{") {
		t.Errorf("unfilled placeholder in prompt: %q", got)
	}
	if !strings.Contains(got, "Название: Менеджер проектов") {
		t.Errorf("missing vacancy name")
	}
	if !strings.Contains(got, "Компания: Яндекс") {
		t.Errorf("missing employer")
	}
	if strings.Contains(got, "<p>") || !strings.Contains(got, "Ведение проектов & работа с командой") {
		t.Errorf("description must be cleaned: %q", got)
	}
	if !strings.Contains(got, "Опытный менеджер проектов") {
		t.Errorf("missing resume text")
	}
}

func TestAdaptPromptUsesFullTextFallback(t *testing.T) {
	t.Parallel()

	v := &vacancy.Vacancy{
		Name:     "Backend разработчик",
		Employer: vacancy.Employer{Name: "Стартап"},
		FullText: "Ищем backend разработчика, Go и Postgres, удалёнка",
	}

	got := AdaptPrompt(v, "Разработчик на Go")

	if !strings.Contains(got, "Ищем backend разработчика") {
		t.Errorf("full text must stand in for the missing description: %q", got)
	}
	if !strings.Contains(got, "БЫЛО") || !strings.Contains(got, "СТАЛО") {
		t.Errorf("edit format markers missing")
	}
}

func TestPromptsTruncateResume(t *testing.T) {
	t.Parallel()

	v := &vacancy.Vacancy{Name: "Роль", Employer: vacancy.Employer{Name: "Фирма"}}
	long := strings.Repeat("Z", 4000)

	if got := strings.Count(CoverPrompt(v, long), "Z"); got != coverResumeLimit {
		t.Errorf("cover resume length = %d, want %d", got, coverResumeLimit)
	}
	if got := strings.Count(AdaptPrompt(v, long), "Z"); got != adaptResumeLimit {
		t.Errorf("adapt resume length = %d, want %d", got, adaptResumeLimit)
	}
}
