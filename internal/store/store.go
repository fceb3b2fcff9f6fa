// Package store persists scraped vacancies in a single JSON file and
// serves keyword lookups over them.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/spigell/job-scout/internal/vacancy"

	"go.uber.org/zap"
)

const (
	// MaxRecords caps the file size; oldest records fall off the end.
	MaxRecords = 500
	// MaxSearchResults caps a single lookup.
	MaxSearchResults = 20
)

type Store struct {
	mu     sync.Mutex
	path   string
	items  []*vacancy.Vacancy
	logger *zap.Logger
}

func New(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Load reads the backing file into memory. A missing or corrupt file is
// not fatal: the store starts empty and the next Save rewrites it.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("reading vacancy store", zap.Error(err))
		}
		return
	}

	var items []*vacancy.Vacancy
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("vacancy store is corrupt, starting empty", zap.Error(err))
		return
	}

	s.items = items
}

func (s *Store) save() error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.items); err != nil {
		return err
	}

	return os.WriteFile(s.path, buf.Bytes(), 0o644)
}

// Update merges freshly scraped records in. A record whose text hash is
// already known is skipped; new records are prepended so the freshest
// postings surface first, and the total is trimmed to MaxRecords.
func (s *Store) Update(incoming []*vacancy.Vacancy) (added int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]struct{}, len(s.items))
	for _, v := range s.items {
		known[v.TextHash] = struct{}{}
	}

	fresh := make([]*vacancy.Vacancy, 0, len(incoming))
	for _, v := range incoming {
		if _, ok := known[v.TextHash]; ok {
			continue
		}
		known[v.TextHash] = struct{}{}
		fresh = append(fresh, v)
	}

	if len(fresh) == 0 {
		return 0, nil
	}

	s.items = append(fresh, s.items...)
	if len(s.items) > MaxRecords {
		s.items = s.items[:MaxRecords]
	}

	return len(fresh), s.save()
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// Search matches any word of the lowered query against the record's name
// and full text. Records with no salary information always pass the
// minSalary bound; a declared upper bound below it drops the record.
func (s *Store) Search(query string, minSalary int) *vacancy.Vacancies {
	s.mu.Lock()
	defer s.mu.Unlock()

	words := strings.Fields(strings.ToLower(query))
	result := &vacancy.Vacancies{}

	for _, v := range s.items {
		haystack := strings.ToLower(v.Name + " " + v.FullText)

		matched := false
		for _, w := range words {
			if strings.Contains(haystack, w) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		if minSalary > 0 && v.Salary != nil && v.Salary.To != nil && *v.Salary.To < minSalary {
			continue
		}

		result.Append(v)
		if result.Len() == MaxSearchResults {
			break
		}
	}

	return result
}
