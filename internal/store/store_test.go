package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spigell/job-scout/internal/vacancy"

	"go.uber.org/zap"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	return New(filepath.Join(t.TempDir(), "vacancies.json"), zap.NewNop())
}

func record(id, name, text string, to *int) *vacancy.Vacancy {
	v := &vacancy.Vacancy{
		ID:       id,
		Name:     name,
		FullText: text,
		TextHash: vacancy.CutRunes(text, vacancy.TextHashLen),
		Source:   vacancy.SourceTelegram,
	}
	if to != nil {
		v.Salary = &vacancy.Salary{To: to, Currency: "RUR"}
	}

	return v
}

func TestUpdateDeduplicatesByTextHash(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	added, err := s.Update([]*vacancy.Vacancy{
		record("tg_go_1", "Go разработчик", "ищем go разработчика в команду", nil),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	// Same text under a different id must be skipped.
	added, err = s.Update([]*vacancy.Vacancy{
		record("tg_go_2", "Go разработчик", "ищем go разработчика в команду", nil),
		record("tg_go_3", "Python разработчик", "нужен python инженер", nil),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
}

func TestUpdatePrependsAndCaps(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	batch := make([]*vacancy.Vacancy, 0, MaxRecords)
	for i := 0; i < MaxRecords; i++ {
		text := fmt.Sprintf("пост номер %d про вакансию", i)
		batch = append(batch, record(fmt.Sprintf("tg_old_%d", i), "Вакансия", text, nil))
	}
	if _, err := s.Update(batch); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := s.Update([]*vacancy.Vacancy{
		record("tg_new_1", "Свежая вакансия", "самый свежий пост", nil),
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if s.Len() != MaxRecords {
		t.Fatalf("len = %d, want %d", s.Len(), MaxRecords)
	}
	if s.items[0].ID != "tg_new_1" {
		t.Errorf("fresh record must be first, got %s", s.items[0].ID)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vacancies.json")

	first := New(path, zap.NewNop())
	if _, err := first.Update([]*vacancy.Vacancy{
		record("tg_a_1", "DevOps инженер", "devops вакансия с кубером", nil),
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	second := New(path, zap.NewNop())
	second.Load()
	if second.Len() != 1 {
		t.Fatalf("len after reload = %d, want 1", second.Len())
	}
	if second.items[0].ID != "tg_a_1" {
		t.Errorf("id = %s", second.items[0].ID)
	}
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop())
	s.Load()
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	low := 80000
	high := 200000

	s := testStore(t)
	if _, err := s.Update([]*vacancy.Vacancy{
		record("tg_x_1", "Python разработчик", "django и postgres", &low),
		record("tg_x_2", "Go разработчик", "go и kubernetes", &high),
		record("tg_x_3", "Backend инженер", "python fastapi", nil),
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	tests := []struct {
		name      string
		query     string
		minSalary int
		want      []string
	}{
		{
			name:  "any word matches name or text",
			query: "python",
			want:  []string{"tg_x_1", "tg_x_3"},
		},
		{
			name:      "upper bound below threshold drops record",
			query:     "python",
			minSalary: 100000,
			want:      []string{"tg_x_3"},
		},
		{
			name:      "no salary info passes the bound",
			query:     "инженер",
			minSalary: 300000,
			want:      []string{"tg_x_3"},
		},
		{
			name:  "no match",
			query: "java",
			want:  []string{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := s.Search(tc.query, tc.minSalary)
			if got.Len() != len(tc.want) {
				t.Fatalf("len = %d, want %d (%v)", got.Len(), len(tc.want), got.IDs())
			}
			for i, id := range tc.want {
				if got.Items[i].ID != id {
					t.Errorf("items[%d] = %s, want %s", i, got.Items[i].ID, id)
				}
			}
		})
	}
}
