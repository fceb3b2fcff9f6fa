package filtering

import (
	"strings"

	"github.com/spigell/job-scout/internal/vacancy"
)

// excludedTitles lists role phrases dropped from every search result.
// Matching is a substring check on the lowered vacancy name.
var excludedTitles = []string{
	"менеджер по продажам",
	"sales manager",
	"менеджер продаж",
	"торговый представитель",
	"продавец-консультант",
	"продавец",
}

type blacklistFilter struct{}

// NewBlacklist creates a filter that removes vacancies with blacklisted
// role titles.
func NewBlacklist() Filter {
	return &blacklistFilter{}
}

func (f *blacklistFilter) Name() string { return "blacklist" }

func (f *blacklistFilter) Apply(v *vacancy.Vacancies) (*vacancy.Vacancies, Step) {
	initial := v.Len()

	kept := make([]*vacancy.Vacancy, 0, initial)
	for _, item := range v.Items {
		if isBlacklisted(item.Name) {
			continue
		}
		kept = append(kept, item)
	}
	v.Items = kept

	return v, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

func isBlacklisted(name string) bool {
	lowered := strings.ToLower(name)
	for _, phrase := range excludedTitles {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}

	return false
}
