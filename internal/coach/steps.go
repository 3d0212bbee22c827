package coach

import (
	"context"
	"fmt"

	"github.com/dvloznov/budget-coach/internal/llm"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// insightConcurrency bounds the per-category generation fan-out.
const insightConcurrency = 4

// Step is one node of the workflow. Execute reads from the shared RunState
// and returns a partial update; it must not mutate the state itself.
type Step interface {
	Name() string
	Execute(ctx context.Context, rs *RunState) (*Delta, error)
}

// AnalyzeStep groups the batch by category and generates one insight per
// distinct category. The generation calls run concurrently, but results
// are merged in lexical category order so the output is deterministic
// given deterministic completions.
type AnalyzeStep struct {
	completer llm.Completer
}

func (s *AnalyzeStep) Name() string { return "analyze" }

func (s *AnalyzeStep) Execute(ctx context.Context, rs *RunState) (*Delta, error) {
	aggs := Categorize(rs.Transactions)
	categories := sortedCategories(aggs)

	insights := make([]SpendingInsight, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(insightConcurrency)

	for i, category := range categories {
		agg := aggs[category]
		g.Go(func() error {
			comment, err := s.completer.Complete(gctx, buildInsightPrompt(agg))
			if err != nil {
				return fmt.Errorf("insight for category %s: %w", agg.Category, err)
			}
			// Each goroutine writes its own slot.
			insights[i] = SpendingInsight{
				Category:        agg.Category,
				TotalSpent:      agg.TotalSpent,
				NumTransactions: agg.TransactionCount,
				Comment:         comment,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Delta{Insights: insights}, nil
}

// SummarizeStep sums the batch, requests the monthly summary, and commits
// the total so the decide state reads a fresh value.
type SummarizeStep struct {
	completer llm.Completer
}

func (s *SummarizeStep) Name() string { return "summarize" }

func (s *SummarizeStep) Execute(ctx context.Context, rs *RunState) (*Delta, error) {
	total := SumAmounts(rs.Transactions)

	summary, err := s.completer.Complete(ctx, buildSummaryPrompt(rs.MonthlyBudget, total))
	if err != nil {
		return nil, fmt.Errorf("monthly summary: %w", err)
	}

	return &Delta{
		Spending: &total,
		Messages: []Message{{Role: RoleAssistant, Text: summary}},
	}, nil
}

// AlertStep runs only when the decide state selects it.
type AlertStep struct {
	completer llm.Completer
}

func (s *AlertStep) Name() string { return "alert" }

func (s *AlertStep) Execute(ctx context.Context, rs *RunState) (*Delta, error) {
	alert, err := s.completer.Complete(ctx, buildAlertPrompt(rs.MonthlyBudget, rs.CurrentMonthSpending))
	if err != nil {
		return nil, fmt.Errorf("overspend alert: %w", err)
	}

	return &Delta{
		Messages: []Message{{Role: RoleAssistant, Text: alert}},
	}, nil
}

// SumAmounts is the deterministic total over a batch.
func SumAmounts(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}
