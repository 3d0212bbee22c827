package coach

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNext_LinearPath(t *testing.T) {
	rs := &RunState{}

	tests := []struct {
		from State
		want State
	}{
		{StateStart, StateAnalyze},
		{StateAnalyze, StateSummarize},
		{StateSummarize, StateDecide},
		{StateAlert, StateEnd},
		{StateEnd, StateEnd},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			if got := Next(tt.from, rs); got != tt.want {
				t.Errorf("Next(%s) = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}

func TestNext_DecideBranch(t *testing.T) {
	tests := []struct {
		name     string
		spending string
		budget   string
		want     State
	}{
		{"under threshold terminates", "60", "100", StateEnd},
		{"at threshold terminates", "80", "100", StateEnd},
		{"over threshold alerts", "90", "100", StateAlert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &RunState{
				MonthlyBudget:        decimal.RequireFromString(tt.budget),
				CurrentMonthSpending: decimal.RequireFromString(tt.spending),
			}
			if got := Next(StateDecide, rs); got != tt.want {
				t.Errorf("Next(decide) = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRunState_Apply(t *testing.T) {
	rs := &RunState{Conversation: []Message{{Role: RoleUser, Text: "hi"}}}

	spending := decimal.RequireFromString("42")
	rs.apply(&Delta{
		Insights: []SpendingInsight{{Category: "Dining"}},
		Spending: &spending,
		Messages: []Message{{Role: RoleAssistant, Text: "summary"}},
	})

	if len(rs.Insights) != 1 {
		t.Errorf("insights not merged")
	}
	if !rs.CurrentMonthSpending.Equal(spending) {
		t.Errorf("spending = %s, want 42", rs.CurrentMonthSpending)
	}
	if len(rs.Conversation) != 2 || rs.Conversation[1].Text != "summary" {
		t.Errorf("conversation = %+v, want user message then summary", rs.Conversation)
	}

	// A nil delta and an empty delta leave the state untouched.
	rs.apply(nil)
	rs.apply(&Delta{})
	if len(rs.Conversation) != 2 || !rs.CurrentMonthSpending.Equal(spending) {
		t.Errorf("empty delta changed the state: %+v", rs)
	}
}
