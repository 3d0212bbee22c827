package coach

import "github.com/shopspring/decimal"

// alertThreshold is the share of the monthly budget above which the
// overspend alert fires.
var alertThreshold = decimal.RequireFromString("0.8")

// ShouldAlert reports whether spending warrants an overspend alert:
// true iff spent > 0.8 * budget. Hitting the threshold exactly does not
// trigger, and with a zero budget any positive spend does.
func ShouldAlert(spent, budget decimal.Decimal) bool {
	return spent.GreaterThan(budget.Mul(alertThreshold))
}
