// Package filtering runs a pipeline of post-aggregation steps over a
// vacancy list.
package filtering

import (
	"go.uber.org/zap"

	"github.com/spigell/job-scout/internal/vacancy"
)

// Filter represents a single filtering step applied to vacancies.
type Filter interface {
	Name() string
	Apply(v *vacancy.Vacancies) (*vacancy.Vacancies, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially, returning the resulting
// vacancies list.
func Run(steps []Filter, v *vacancy.Vacancies, logger *zap.Logger) *vacancy.Vacancies {
	for _, step := range steps {
		next, info := step.Apply(v)

		if logger != nil {
			logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		v = next
	}

	return v
}
