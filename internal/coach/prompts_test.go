package coach

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildInsightPrompt(t *testing.T) {
	agg := &CategoryAggregate{
		Category:         "Dining",
		TotalSpent:       decimal.RequireFromString("1234.5"),
		TransactionCount: 7,
		RecentItems: []Transaction{
			tx(1, "12.50", "Dining", "Cafe A"),
			tx(2, "30", "Dining", "Bistro B"),
		},
	}

	prompt := buildInsightPrompt(agg)

	for _, want := range []string{
		"Dining",
		"Total spent: $1,234.50",
		"Number of transactions: 7",
		"Cafe A: $12.50",
		"Bistro B: $30.00",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("insight prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildSummaryPrompt_NegativeRemaining(t *testing.T) {
	prompt := buildSummaryPrompt(
		decimal.RequireFromString("50"),
		decimal.RequireFromString("60"),
	)

	for _, want := range []string{
		"Monthly Budget: $50.00",
		"Total Spent: $60.00",
		"Remaining: -$10.00",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("summary prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildAlertPrompt(t *testing.T) {
	prompt := buildAlertPrompt(
		decimal.RequireFromString("2000"),
		decimal.RequireFromString("1900"),
	)

	if !strings.Contains(prompt, "alert about excessive spending") {
		t.Errorf("alert prompt missing the alert directive:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Remaining: $100.00") {
		t.Errorf("alert prompt missing remaining amount:\n%s", prompt)
	}
}

func TestBuildChatPrompt_IncludesConversation(t *testing.T) {
	rs := &RunState{
		MonthlyBudget:        decimal.RequireFromString("100"),
		CurrentMonthSpending: decimal.RequireFromString("60"),
		Conversation: []Message{
			{Role: RoleUser, Text: "earlier question"},
			{Role: RoleAssistant, Text: "earlier answer"},
		},
	}
	aggs := map[string]*CategoryAggregate{
		"Dining": {Category: "Dining", TotalSpent: decimal.RequireFromString("60"), TransactionCount: 3},
	}

	prompt := buildChatPrompt(rs, aggs, "what now?")

	for _, want := range []string{
		"user: earlier question",
		"assistant: earlier answer",
		"Dining: $60.00 across 3 transactions",
		"The client asks: what now?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("chat prompt missing %q:\n%s", want, prompt)
		}
	}
}
