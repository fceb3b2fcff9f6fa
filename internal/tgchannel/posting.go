package tgchannel

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/job-scout/internal/vacancy"
)

// jobKeywords is the classifier vocabulary: hiring verbs, seniority
// tokens, role names, tech tokens and compensation words.
var jobKeywords = []string{
	"вакансия", "ищем", "hiring", "требуется", "нужен", "открыта позиция",
	"junior", "middle", "senior", "lead", "разработчик", "developer",
	"менеджер", "manager", "аналитик", "analyst", "дизайнер", "designer",
	"тестировщик", "qa", "devops", "frontend", "backend", "fullstack",
	"python", "java", "javascript", "react", "vue", "angular", "node",
	"product", "project", "pm", "hr", "recruiter", "зарплата", "salary",
	"оклад", "remote", "удалённ", "удаленн",
}

var remoteKeywords = []string{
	"remote", "удалённ", "удаленн", "дистанц", "из дома", "home office",
}

var (
	salaryRe = regexp.MustCompile(`(?i)(?:от\s*)?(\d+[\s,.]?\d*)\s*(?:[-–—до]\s*(\d+[\s,.]?\d*))?\s*(?:тыс|k|к|₽|руб|rub|\$|usd|eur)?`)

	tagRe     = regexp.MustCompile(`[#@][\p{L}\p{N}_]+`)
	leadingRe = regexp.MustCompile(`^[\s\-–—•*:]+`)

	companyRes = []*regexp.Regexp{
		regexp.MustCompile(`компания[:\s]+([А-Яа-яA-Za-z0-9 ]+)`),
		regexp.MustCompile(`в\s+([A-Z][A-Za-z0-9]+)`),
	}
)

const (
	minPostingLen  = 50
	minKeywordHits = 2

	fallbackCompany = "Telegram"
	defaultRegion   = "Россия"
	remoteRegion    = "Remote"
)

// IsJobPosting decides whether a channel message advertises a job:
// at least 50 characters and two distinct vocabulary hits.
func IsJobPosting(text string) bool {
	if utf8.RuneCountInString(text) < minPostingLen {
		return false
	}

	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range jobKeywords {
		if strings.Contains(lower, kw) {
			hits++
			if hits >= minKeywordHits {
				return true
			}
		}
	}

	return false
}

// ExtractTitle picks a human-looking title from the first lines of the
// posting, stripping hashtags, mentions and bullet punctuation.
func ExtractTitle(text string) string {
	lines := strings.Split(text, "\n")
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}

	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "@") || strings.HasPrefix(line, "http") {
			continue
		}
		if utf8.RuneCountInString(line) < 5 {
			continue
		}

		cleaned := strings.TrimSpace(tagRe.ReplaceAllString(line, ""))
		cleaned = strings.TrimSpace(leadingRe.ReplaceAllString(cleaned, ""))
		if n := utf8.RuneCountInString(cleaned); n > 5 && n < 80 {
			return vacancy.TruncateName(cleaned)
		}
	}

	// No usable line: strip tags globally and retry on the first line.
	cleanedText := strings.TrimSpace(tagRe.ReplaceAllString(text, ""))
	firstLine := strings.TrimSpace(strings.SplitN(cleanedText, "\n", 2)[0])
	if n := utf8.RuneCountInString(firstLine); n > 5 && n < 80 {
		return firstLine
	}

	raw := vacancy.CutRunes(text, 60)
	raw = strings.ReplaceAll(raw, "#", "")
	raw = strings.ReplaceAll(raw, "@", "")
	return raw + "..."
}

// ExtractCompany tries the "компания: X" and "в <Capitalized>" patterns,
// falling back to the literal source name.
func ExtractCompany(text string) string {
	for _, re := range companyRes {
		if m := re.FindStringSubmatch(text); m != nil {
			company := strings.TrimSpace(m[1])
			if n := utf8.RuneCountInString(company); n > 3 && n < 30 {
				return company
			}
		}
	}
	return fallbackCompany
}

// ExtractSalary parses a salary range from the raw posting. The currency
// is always tagged RUR: the suffix is matched but intentionally not
// branched on.
func ExtractSalary(text string) *vacancy.Salary {
	m := salaryRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	from, ok := parseAmount(m[1])
	if !ok {
		return nil
	}

	s := &vacancy.Salary{From: &from, Currency: "RUR"}
	if to, ok := parseAmount(m[2]); ok {
		s.To = &to
	}

	return vacancy.NormalizeSalary(s)
}

func parseAmount(raw string) (int, bool) {
	cleaned := strings.NewReplacer(" ", "", ",", "", ".", "").Replace(raw)
	if cleaned == "" {
		return 0, false
	}

	n := 0
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}

	return n, true
}

// IsRemote reports whether the posting mentions remote work.
func IsRemote(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range remoteKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Region maps the remoteness flag to the displayed area name.
func Region(text string) string {
	if IsRemote(text) {
		return remoteRegion
	}
	return defaultRegion
}
