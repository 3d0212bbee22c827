// Package coach implements the spending-analysis workflow: a small state
// machine that turns a batch of transactions into per-category insights, a
// monthly summary, and an overspend alert when spending crosses the
// threshold.
package coach

import (
	"context"
	"fmt"

	"github.com/dvloznov/budget-coach/internal/llm"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Workflow sequences the steps over a caller-supplied RunState. It is
// stateless between invocations; the caller carries the budget and the
// growing conversation forward.
type Workflow struct {
	completer llm.Completer
	steps     map[State]Step
	log       zerolog.Logger
}

// NewWorkflow wires the steps to one generation collaborator.
func NewWorkflow(completer llm.Completer, log zerolog.Logger) *Workflow {
	return &Workflow{
		completer: completer,
		steps: map[State]Step{
			StateAnalyze:   &AnalyzeStep{completer: completer},
			StateSummarize: &SummarizeStep{completer: completer},
			StateAlert:     &AlertStep{completer: completer},
		},
		log: log,
	}
}

// Run walks the state machine from start to end. Each step's partial
// update is merged into rs only after the step succeeds; on error the run
// stops and rs holds exactly what the completed steps committed. There are
// no retries and no rollback.
func (w *Workflow) Run(ctx context.Context, rs *RunState) error {
	runID := uuid.NewString()
	log := w.log.With().Str("run_id", runID).Logger()

	log.Info().
		Int("transactions", len(rs.Transactions)).
		Str("budget", rs.MonthlyBudget.String()).
		Msg("starting run")

	for state := Next(StateStart, rs); state != StateEnd; state = Next(state, rs) {
		step, ok := w.steps[state]
		if !ok {
			// Decision states carry no work of their own.
			continue
		}

		log.Debug().Str("step", step.Name()).Msg("running step")

		delta, err := step.Execute(ctx, rs)
		if err != nil {
			return fmt.Errorf("workflow: step %s: %w", step.Name(), err)
		}
		rs.apply(delta)
	}

	log.Info().
		Int("insights", len(rs.Insights)).
		Str("spending", rs.CurrentMonthSpending.String()).
		Msg("run complete")

	return nil
}
