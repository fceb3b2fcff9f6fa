package search

import "github.com/spigell/job-scout/internal/vacancy"

// PageSize is the number of vacancies shown per page when browsing.
const PageSize = 10

// TotalPages reports how many pages the result spans.
func (r *Result) TotalPages() int {
	if r.Items == nil || r.Items.Len() == 0 {
		return 0
	}

	return (r.Items.Len() + PageSize - 1) / PageSize
}

// Page returns the zero-based page n of the result. Out-of-range pages
// yield an empty slice.
func (r *Result) Page(n int) []*vacancy.Vacancy {
	if r.Items == nil || n < 0 {
		return nil
	}

	start := n * PageSize
	if start >= r.Items.Len() {
		return nil
	}

	end := start + PageSize
	if end > r.Items.Len() {
		end = r.Items.Len()
	}

	return r.Items.Items[start:end]
}
