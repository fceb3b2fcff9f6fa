package vacancy

import (
	"unicode/utf8"
)

// Source tags carried by every canonical vacancy. They drive adapter
// selection on detail fetch and the display icon in the presentation layer.
const (
	SourceHH       = "hh"
	SourceTrudvsem = "trudvsem"
	SourceTelegram = "telegram"
)

const (
	// MaxNameLen is the hard cap for a normalized vacancy title.
	MaxNameLen = 80
	// MaxFullTextLen caps the stored posting body for telegram vacancies.
	MaxFullTextLen = 1000
	// TextHashLen is the prefix of the raw posting text used as the dedup key.
	TextHashLen = 100
)

type Vacancies struct {
	Items []*Vacancy
}

// Vacancy is the canonical record all source adapters map into.
// Only id, name, source and alternate_url are guaranteed to be present.
type Vacancy struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Employer     Employer  `json:"employer"`
	Salary       *Salary   `json:"salary,omitempty"`
	AlternateURL string    `json:"alternate_url"`
	Area         Area      `json:"area"`
	Source       string    `json:"source"`
	Experience   NamedItem `json:"experience,omitempty"`
	Schedule     NamedItem `json:"schedule,omitempty"`
	Description  string    `json:"description,omitempty"`

	// Telegram-only fields.
	Channel  string `json:"channel,omitempty"`
	FullText string `json:"full_text,omitempty"`
	TextHash string `json:"text_hash,omitempty"`
	ParsedAt string `json:"parsed_at,omitempty"`
}

type Employer struct {
	Name string `json:"name"`
}

type Area struct {
	Name string `json:"name"`
}

type NamedItem struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Salary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
}

// NormalizeSalary enforces the magnitude convention shared by all sources:
// numeric values under 1000 are interpreted as thousands and multiplied,
// negative bounds are dropped. Returns nil when no bound survives.
func NormalizeSalary(s *Salary) *Salary {
	if s == nil {
		return nil
	}

	s.From = normalizeBound(s.From)
	s.To = normalizeBound(s.To)

	if s.From == nil && s.To == nil {
		return nil
	}

	return s
}

func normalizeBound(v *int) *int {
	if v == nil {
		return nil
	}
	if *v < 0 {
		return nil
	}
	if *v > 0 && *v < 1000 {
		scaled := *v * 1000
		return &scaled
	}
	return v
}

// TruncateName cuts a title to MaxNameLen runes.
func TruncateName(name string) string {
	return CutRunes(name, MaxNameLen)
}

// CutRunes returns the first limit runes of s without an ellipsis.
func CutRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}

func (v *Vacancies) Append(items ...*Vacancy) {
	v.Items = append(v.Items, items...)
}

func (v *Vacancies) FindByID(id string) *Vacancy {
	for _, vacancy := range v.Items {
		if vacancy.ID == id {
			return vacancy
		}
	}
	return nil
}

// IDs returns the ids of all vacancies in order.
func (v *Vacancies) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, vacancy := range v.Items {
		ids = append(ids, vacancy.ID)
	}
	return ids
}
