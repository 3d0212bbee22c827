package coach

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestShouldAlert(t *testing.T) {
	tests := []struct {
		name   string
		spent  string
		budget string
		want   bool
	}{
		{"well under budget", "60", "100", false},
		{"exactly at threshold", "80", "100", false},
		{"just over threshold", "80.01", "100", true},
		{"over budget", "120", "100", true},
		{"zero budget zero spend", "0", "0", false},
		{"zero budget any spend", "0.01", "0", true},
		{"small budget overspend", "60", "50", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spent := decimal.RequireFromString(tt.spent)
			budget := decimal.RequireFromString(tt.budget)
			if got := ShouldAlert(spent, budget); got != tt.want {
				t.Errorf("ShouldAlert(%s, %s) = %v, want %v", tt.spent, tt.budget, got, tt.want)
			}
		})
	}
}
