// Package llm wraps the external text-generation backends behind one
// request/response interface.
package llm

import "context"

// Generator produces text for a composed prompt with the given model.
// Failures are surfaced verbatim to the caller; no retries happen here.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}
