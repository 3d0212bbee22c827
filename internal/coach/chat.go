package coach

import (
	"context"
	"fmt"
)

// Ask answers one user question against the full transaction batch. Every
// question is a fresh pass over the data: aggregates and the spending
// total are recomputed before the prompt is built, so answers never cite
// stale numbers even when the caller changed the budget between questions.
// Exactly one generation call is made per question.
//
// The user message and the assistant reply are appended to the
// conversation; the caller carries the log between invocations.
func (w *Workflow) Ask(ctx context.Context, rs *RunState, question string) (string, error) {
	aggs := Categorize(rs.Transactions)
	total := SumAmounts(rs.Transactions)
	rs.CurrentMonthSpending = total

	prompt := buildChatPrompt(rs, aggs, question)

	reply, err := w.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("Ask: %w", err)
	}

	rs.Conversation = append(rs.Conversation,
		Message{Role: RoleUser, Text: question},
		Message{Role: RoleAssistant, Text: reply},
	)

	return reply, nil
}
