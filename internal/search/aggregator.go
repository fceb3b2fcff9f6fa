// Package search fans a role query out to every vacancy source, merges
// the results and runs them through the filtering pipeline.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/job-scout/internal/filtering"
	"github.com/spigell/job-scout/internal/headhunter"
	"github.com/spigell/job-scout/internal/prefs"
	"github.com/spigell/job-scout/internal/vacancy"
)

// HHSource searches the hh.ru API.
type HHSource interface {
	Search(ctx context.Context, params *headhunter.SearchParams) (*vacancy.Vacancies, error)
}

// TrudvsemSource searches the "Работа России" API.
type TrudvsemSource interface {
	Search(ctx context.Context, query string, minSalary int) (*vacancy.Vacancies, error)
}

// StoreSource searches locally scraped postings.
type StoreSource interface {
	Search(query string, minSalary int) *vacancy.Vacancies
}

type Aggregator struct {
	hh     HHSource
	tv     TrudvsemSource
	store  StoreSource
	logger *zap.Logger
}

func NewAggregator(hh HHSource, tv TrudvsemSource, store StoreSource, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		hh:     hh,
		tv:     tv,
		store:  store,
		logger: logger,
	}
}

// Result holds a merged, filtered search outcome along with the raw
// per-source counts taken before filtering.
type Result struct {
	Query    string
	Items    *vacancy.Vacancies
	HHCount  int
	TVCount  int
	TGCount  int
}

// Search queries all sources concurrently. The hh.ru source receives the
// synonym-expanded query; the others get the raw one. A failing source is
// logged and contributes nothing, so one outage never empties the result.
func (a *Aggregator) Search(ctx context.Context, query string, p *prefs.Preferences) *Result {
	if p == nil {
		p = &prefs.Preferences{Area: prefs.DefaultArea}
	}

	var (
		wg       sync.WaitGroup
		hhItems  = &vacancy.Vacancies{}
		tvItems  = &vacancy.Vacancies{}
		tgItems  = &vacancy.Vacancies{}
	)

	wg.Add(3)

	go func() {
		defer wg.Done()

		found, err := a.hh.Search(ctx, headhunter.NewSearchParams(Expand(query), p))
		if err != nil {
			a.logger.Warn("hh.ru search failed", zap.Error(err))
			return
		}
		hhItems = found
	}()

	go func() {
		defer wg.Done()

		found, err := a.tv.Search(ctx, query, p.Salary)
		if err != nil {
			a.logger.Warn("trudvsem search failed", zap.Error(err))
			return
		}
		tvItems = found
	}()

	go func() {
		defer wg.Done()

		tgItems = a.store.Search(query, p.Salary)
	}()

	wg.Wait()

	merged := &vacancy.Vacancies{}
	merged.Items = append(merged.Items, hhItems.Items...)
	merged.Items = append(merged.Items, tvItems.Items...)
	merged.Items = append(merged.Items, tgItems.Items...)

	result := &Result{
		Query:   query,
		HHCount: hhItems.Len(),
		TVCount: tvItems.Len(),
		TGCount: tgItems.Len(),
	}

	result.Items = filtering.Run(
		[]filtering.Filter{filtering.NewBlacklist(), filtering.NewDedup()},
		merged,
		a.logger,
	)

	return result
}

// SourceSummary renders per-source counts for the "found N" message.
// Sources that returned nothing are omitted.
func (r *Result) SourceSummary() string {
	parts := make([]string, 0, 3)
	if r.HHCount > 0 {
		parts = append(parts, fmt.Sprintf("hh.ru: %d", r.HHCount))
	}
	if r.TVCount > 0 {
		parts = append(parts, fmt.Sprintf("Работа России: %d", r.TVCount))
	}
	if r.TGCount > 0 {
		parts = append(parts, fmt.Sprintf("Telegram: %d", r.TGCount))
	}

	return strings.Join(parts, " + ")
}
