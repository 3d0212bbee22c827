// Package llm wraps the text-generation collaborator behind a single
// request/response contract so the workflow can be exercised with mocks.
package llm

import "context"

// Completer turns one prompt into one generated text. Implementations own
// any timeout or transport concerns; the workflow never retries.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
