package coach

import (
	"context"

	"github.com/shopspring/decimal"
)

// TransactionSource supplies the normalized transactions for a time window.
// A failed fetch must be reported as an error, never as an empty list; an
// empty list from a successful fetch is a valid (empty) run.
type TransactionSource interface {
	Fetch(ctx context.Context, windowDays int) ([]Transaction, error)
}

// State identifies a node of the spending-analysis workflow.
type State int

const (
	StateStart State = iota
	StateAnalyze
	StateSummarize
	StateDecide
	StateAlert
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateAnalyze:
		return "analyze"
	case StateSummarize:
		return "summarize"
	case StateDecide:
		return "decide"
	case StateAlert:
		return "alert"
	case StateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// RunState is the single shared record threaded through one workflow
// invocation. The orchestrator owns it exclusively; concurrent invocations
// must each use their own instance. Transactions and MonthlyBudget are
// read-only once the run starts; Insights and CurrentMonthSpending are
// written once by their steps; Conversation is append-only.
type RunState struct {
	Transactions         []Transaction     `json:"transactions"`
	MonthlyBudget        decimal.Decimal   `json:"monthly_budget"`
	Insights             []SpendingInsight `json:"insights"`
	CurrentMonthSpending decimal.Decimal   `json:"current_month_spending"`
	Conversation         []Message         `json:"conversation"`
}

// Delta is the partial update a step hands back. The runner merges it into
// the RunState only after the step succeeds, so a failed step leaves the
// state exactly as the previous step left it.
type Delta struct {
	Insights []SpendingInsight
	Spending *decimal.Decimal
	Messages []Message
}

func (rs *RunState) apply(d *Delta) {
	if d == nil {
		return
	}
	if d.Insights != nil {
		rs.Insights = d.Insights
	}
	if d.Spending != nil {
		rs.CurrentMonthSpending = *d.Spending
	}
	rs.Conversation = append(rs.Conversation, d.Messages...)
}

// Next is the transition function of the workflow. It is pure: the only
// branch reads CurrentMonthSpending and MonthlyBudget at StateDecide, which
// runs after the summarize step has committed the total.
func Next(s State, rs *RunState) State {
	switch s {
	case StateStart:
		return StateAnalyze
	case StateAnalyze:
		return StateSummarize
	case StateSummarize:
		return StateDecide
	case StateDecide:
		if ShouldAlert(rs.CurrentMonthSpending, rs.MonthlyBudget) {
			return StateAlert
		}
		return StateEnd
	case StateAlert:
		return StateEnd
	default:
		return StateEnd
	}
}
