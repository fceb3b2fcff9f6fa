// Package prefs maps a free-form Russian/English wishes sentence into a
// typed preference record consumed by the vacancy sources.
package prefs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	ScheduleRemote  = "remote"
	ScheduleFullDay = "fullDay"

	ExperienceNone   = "noExperience"
	ExperienceJunior = "between1And3"
	ExperienceMiddle = "between3And6"

	// DefaultArea is the hh.ru region code for the whole country.
	DefaultArea = 113

	skipWord = "пропустить"
)

// Preferences narrows the search result set. Zero values mean "no filter".
type Preferences struct {
	Schedule   string
	Salary     int
	Experience string
	Area       int
}

var salaryRe = regexp.MustCompile(`(?i)от\s*(\d+)\s*(тыс|к|k)?`)

// Parse extracts preferences from a user sentence. The literal word
// "пропустить" yields the all-default record.
func Parse(text string) *Preferences {
	p := &Preferences{Area: DefaultArea}

	text = strings.ToLower(strings.TrimSpace(text))
	if text == skipWord {
		return p
	}

	switch {
	case strings.Contains(text, "удалён") || strings.Contains(text, "удален") || strings.Contains(text, "remote"):
		p.Schedule = ScheduleRemote
	case strings.Contains(text, "офис"):
		p.Schedule = ScheduleFullDay
	}

	// Salary is matched on a whitespace-stripped copy so that
	// "от 150 000" and "от 150к" behave the same.
	if m := salaryRe.FindStringSubmatch(strings.ReplaceAll(text, " ", "")); m != nil {
		salary, err := strconv.Atoi(m[1])
		if err == nil {
			if m[2] != "" || salary < 1000 {
				salary *= 1000
			}
			p.Salary = salary
		}
	}

	switch {
	case strings.Contains(text, "без опыт") || strings.Contains(text, "нет опыт"):
		p.Experience = ExperienceNone
	case strings.Contains(text, "1-3") || strings.Contains(text, "1 год") || strings.Contains(text, "2 год"):
		p.Experience = ExperienceJunior
	case strings.Contains(text, "3-6") || strings.Contains(text, "3 год") || strings.Contains(text, "5 год"):
		p.Experience = ExperienceMiddle
	}

	return p
}

// Summary renders the record back into a human sentence. Parsing the
// summary yields an equivalent record (area excluded, it is always the
// default).
func (p *Preferences) Summary() string {
	var parts []string

	switch p.Schedule {
	case ScheduleRemote:
		parts = append(parts, "удалёнка")
	case ScheduleFullDay:
		parts = append(parts, "офис")
	}

	if p.Salary > 0 {
		if p.Salary >= 1000 {
			parts = append(parts, fmt.Sprintf("от %dk руб", p.Salary/1000))
		} else {
			parts = append(parts, fmt.Sprintf("от %d руб", p.Salary))
		}
	}

	switch p.Experience {
	case ExperienceNone:
		parts = append(parts, "без опыта")
	case ExperienceJunior:
		parts = append(parts, "1-3 года")
	case ExperienceMiddle:
		parts = append(parts, "3-6 лет")
	}

	if len(parts) == 0 {
		return "без фильтров"
	}

	return strings.Join(parts, ", ")
}

// IsEmpty reports whether no narrowing filter is set.
func (p *Preferences) IsEmpty() bool {
	return p.Schedule == "" && p.Salary == 0 && p.Experience == ""
}
