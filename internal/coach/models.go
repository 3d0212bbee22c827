package coach

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized transaction as supplied by a source.
// Amounts are positive for money spent; refunds come through negative.
// Single-currency by convention, so no currency code is carried.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Merchant    string          `json:"merchant"`
}

// recentItemsWindow bounds the trailing per-category sample kept for
// prompt context.
const recentItemsWindow = 3

// CategoryAggregate is the per-category rollup built fresh each run and
// discarded once insights are generated. RecentItems holds at most the
// last recentItemsWindow transactions in input order, oldest dropped first.
type CategoryAggregate struct {
	Category         string
	TotalSpent       decimal.Decimal
	TransactionCount int
	RecentItems      []Transaction
}

// SpendingInsight pairs a category's aggregate numbers with the generated
// commentary. Exactly one is produced per distinct category in the batch.
type SpendingInsight struct {
	Category        string          `json:"category"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	NumTransactions int             `json:"num_transactions"`
	Comment         string          `json:"comment"`
}

// Role tags a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the run's conversation log.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
