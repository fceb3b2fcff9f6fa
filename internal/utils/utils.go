package utils

import (
	"context"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var sleep = time.Sleep

// WaitFor sleeps for the given duration but returns early when the context
// is canceled. Used for pacing between channel fetches.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips markup from an upstream description: tags are replaced
// with spaces, entities decoded and whitespace collapsed.
func CleanHTML(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// Truncate returns the first limit runes of s without decoration.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// TruncateEllipsis shortens the provided string to the specified limit,
// appending an ellipsis when truncated.
func TruncateEllipsis(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
