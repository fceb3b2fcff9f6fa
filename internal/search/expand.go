package search

import "strings"

// synonymEntry maps a canonical role phrase to its search synonyms. The
// table is an ordered slice so expansion is deterministic; at most five
// synonyms go into the expanded query.
type synonymEntry struct {
	key      string
	synonyms []string
}

const maxSynonyms = 5

var jobSynonyms = []synonymEntry{
	{"менеджер проекта", []string{"менеджер проекта", "менеджер проектов", "project manager", "руководитель проекта", "руководитель проектов", "проектный менеджер", "PM"}},
	{"project manager", []string{"project manager", "менеджер проекта", "менеджер проектов", "руководитель проекта", "PM"}},
	{"продакт менеджер", []string{"продакт менеджер", "product manager", "продукт менеджер", "менеджер продукта", "product owner", "PO"}},
	{"product manager", []string{"product manager", "продакт менеджер", "product owner", "менеджер продукта"}},
	{"разработчик", []string{"разработчик", "developer", "программист", "инженер-программист"}},
	{"аналитик", []string{"аналитик", "analyst", "бизнес-аналитик", "системный аналитик", "data analyst"}},
	{"дизайнер", []string{"дизайнер", "designer", "UI дизайнер", "UX дизайнер", "UI/UX", "веб-дизайнер"}},
	{"маркетолог", []string{"маркетолог", "marketing manager", "интернет-маркетолог", "digital маркетолог"}},
	{"hr", []string{"hr", "HR менеджер", "рекрутер", "HR специалист", "специалист по подбору"}},
}

// Expand widens a role query with known synonyms joined by OR. A query
// matches an entry when it contains the key or the key contains it; an
// unknown query is returned as is.
func Expand(query string) string {
	lowered := strings.ToLower(strings.TrimSpace(query))
	for _, entry := range jobSynonyms {
		if strings.Contains(lowered, entry.key) || strings.Contains(entry.key, lowered) {
			syns := entry.synonyms
			if len(syns) > maxSynonyms {
				syns = syns[:maxSynonyms]
			}
			return strings.Join(syns, " OR ")
		}
	}

	return query
}
