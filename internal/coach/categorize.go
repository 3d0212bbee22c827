package coach

import "sort"

// Categorize groups transactions by category label. Each transaction adds
// its amount to the category total, bumps the count, and enters the
// bounded recent-items window. Empty input yields an empty map.
func Categorize(txs []Transaction) map[string]*CategoryAggregate {
	aggs := make(map[string]*CategoryAggregate)

	for _, tx := range txs {
		agg, ok := aggs[tx.Category]
		if !ok {
			agg = &CategoryAggregate{Category: tx.Category}
			aggs[tx.Category] = agg
		}
		agg.TotalSpent = agg.TotalSpent.Add(tx.Amount)
		agg.TransactionCount++
		agg.RecentItems = append(agg.RecentItems, tx)
		if len(agg.RecentItems) > recentItemsWindow {
			agg.RecentItems = agg.RecentItems[1:]
		}
	}

	return aggs
}

// sortedCategories returns the aggregate keys in lexical order, giving the
// insight fan-out a deterministic merge order.
func sortedCategories(aggs map[string]*CategoryAggregate) []string {
	categories := make([]string, 0, len(aggs))
	for c := range aggs {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
