package utils

import (
	"context"
	"testing"
	"time"
)

func TestTruncateEllipsis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "counts runes not bytes",
			input:  "разработчик",
			limit:  6,
			expect: "разраб...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateEllipsis(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestCleanHTML(t *testing.T) {
	t.Parallel()

	in := "<p>Мы ищем <b>Go-разработчика</b>.</p>\n<ul><li>Опыт &gt; 3 лет</li></ul>"
	want := "Мы ищем Go-разработчика . Опыт > 3 лет"
	if got := CleanHTML(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTruncatePlain(t *testing.T) {
	t.Parallel()

	if got := Truncate("abcdef", 3); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestWaitForCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := WaitFor(ctx, time.Minute); err == nil {
		t.Fatalf("expected context error")
	}
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("zero duration must not error: %v", err)
	}
}
