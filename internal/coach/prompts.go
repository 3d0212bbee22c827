package coach

import (
	"fmt"
	"strings"

	"github.com/dvloznov/budget-coach/internal/money"
	"github.com/shopspring/decimal"
)

// buildInsightPrompt encodes one category aggregate into a generation
// request. All amounts are pre-formatted here so the model never invents
// its own number formatting.
func buildInsightPrompt(agg *CategoryAggregate) string {
	var b strings.Builder

	b.WriteString("You are a passive-aggressive budget coach. ")
	fmt.Fprintf(&b, "Generate a snarky but helpful insight about spending in the %s category.\n\n", agg.Category)
	fmt.Fprintf(&b, "Total spent: %s\n", money.Format(agg.TotalSpent))
	fmt.Fprintf(&b, "Number of transactions: %d\n", agg.TransactionCount)

	if len(agg.RecentItems) > 0 {
		b.WriteString("Recent purchases:\n")
		for _, tx := range agg.RecentItems {
			fmt.Fprintf(&b, "- %s: %s\n", tx.Merchant, money.Format(tx.Amount))
		}
	}

	b.WriteString("\nMake your response:\n")
	b.WriteString("1. Snarky but not mean.\n")
	b.WriteString("2. Include one helpful suggestion.\n")
	b.WriteString("3. Use emojis sparingly.\n")
	b.WriteString("4. Keep it concise (2-3 sentences).\n")
	b.WriteString("5. Write every amount exactly as shown above, never split across lines.\n")

	return b.String()
}

// buildSummaryPrompt encodes budget, total and remaining for the monthly
// summary. A negative remaining passes through as-is.
func buildSummaryPrompt(budget, totalSpent decimal.Decimal) string {
	remaining := budget.Sub(totalSpent)

	var b strings.Builder

	b.WriteString("You are a passive-aggressive budget coach. Generate a monthly spending summary.\n\n")
	fmt.Fprintf(&b, "Monthly Budget: %s\n", money.Format(budget))
	fmt.Fprintf(&b, "Total Spent: %s\n", money.Format(totalSpent))
	fmt.Fprintf(&b, "Remaining: %s\n", money.Format(remaining))

	b.WriteString("\nMake your response:\n")
	b.WriteString("1. Start with a snarky observation about overall spending.\n")
	b.WriteString("2. Include specific category breakdowns.\n")
	b.WriteString("3. End with a passive-aggressive but helpful tip.\n")
	b.WriteString("4. Use markdown formatting.\n")
	b.WriteString("5. Write every amount exactly as shown above.\n")

	return b.String()
}

// buildAlertPrompt is the dramatized variant used when spending crosses
// the alert threshold.
func buildAlertPrompt(budget, totalSpent decimal.Decimal) string {
	remaining := budget.Sub(totalSpent)

	var b strings.Builder

	b.WriteString("You are a passive-aggressive budget coach. Generate an alert about excessive spending.\n\n")
	fmt.Fprintf(&b, "Monthly Budget: %s\n", money.Format(budget))
	fmt.Fprintf(&b, "Total Spent: %s\n", money.Format(totalSpent))
	fmt.Fprintf(&b, "Remaining: %s\n", money.Format(remaining))

	b.WriteString("\nMake your response:\n")
	b.WriteString("1. Start with a dramatic observation about spending.\n")
	b.WriteString("2. Include specific examples of \"interesting\" purchases.\n")
	b.WriteString("3. End with a sarcastic but practical suggestion.\n")
	b.WriteString("4. Use emojis for extra passive-aggressive effect.\n")
	b.WriteString("5. Write every amount exactly as shown above.\n")

	return b.String()
}

// buildChatPrompt assembles the conversational request: budget position,
// per-category aggregates, the prior conversation, and the new question.
func buildChatPrompt(rs *RunState, aggs map[string]*CategoryAggregate, question string) string {
	var b strings.Builder

	b.WriteString("You are a passive-aggressive budget coach chatting with your client about their spending.\n\n")
	fmt.Fprintf(&b, "Monthly Budget: %s\n", money.Format(rs.MonthlyBudget))
	fmt.Fprintf(&b, "Total Spent: %s\n", money.Format(rs.CurrentMonthSpending))
	fmt.Fprintf(&b, "Remaining: %s\n\n", money.Format(rs.MonthlyBudget.Sub(rs.CurrentMonthSpending)))

	if len(aggs) > 0 {
		b.WriteString("Spending by category:\n")
		for _, category := range sortedCategories(aggs) {
			agg := aggs[category]
			fmt.Fprintf(&b, "- %s: %s across %d transactions\n",
				agg.Category, money.Format(agg.TotalSpent), agg.TransactionCount)
		}
		b.WriteString("\n")
	}

	if len(rs.Conversation) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, msg := range rs.Conversation {
			fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Text)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "The client asks: %s\n", question)

	b.WriteString("\nMake your response:\n")
	b.WriteString("1. Answer the question using the numbers above.\n")
	b.WriteString("2. Snarky but genuinely helpful.\n")
	b.WriteString("3. Keep it short.\n")
	b.WriteString("4. Write every amount exactly as shown above.\n")

	return b.String()
}
