package filtering

import (
	"strings"

	"github.com/spigell/job-scout/internal/vacancy"
)

type dedupFilter struct{}

// NewDedup creates a filter that collapses vacancies sharing the same
// title and employer. The first occurrence wins, so source order decides
// which copy survives.
func NewDedup() Filter {
	return &dedupFilter{}
}

func (f *dedupFilter) Name() string { return "dedup" }

func (f *dedupFilter) Apply(v *vacancy.Vacancies) (*vacancy.Vacancies, Step) {
	initial := v.Len()

	seen := make(map[string]struct{}, initial)
	kept := make([]*vacancy.Vacancy, 0, initial)
	for _, item := range v.Items {
		key := strings.ToLower(item.Name) + "|" + strings.ToLower(item.Employer.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, item)
	}
	v.Items = kept

	return v, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}
