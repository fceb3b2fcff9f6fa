// Package ai defines the text generation contract and the prompts used
// to produce cover letters and resume edits.
package ai

import "context"

// Generator produces a completion for a single user prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, maxTokens int) (string, error)
}
