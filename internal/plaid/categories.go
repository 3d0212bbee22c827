package plaid

import "strings"

// CategoryOther is the fallback when no keyword matches.
const CategoryOther = "Other"

// categoryKeywords maps keywords found in Plaid's primary category onto
// the coach's labels. Order matters: the first matching group wins.
var categoryKeywords = []struct {
	label    string
	keywords []string
}{
	{"Dining", []string{"restaurant", "cafe", "coffee", "bar", "pub", "food", "dining"}},
	{"Shopping", []string{"amazon", "walmart", "target", "store", "shop", "retail"}},
	{"Entertainment", []string{"netflix", "spotify", "hulu", "entertainment", "movie", "theater"}},
	{"Travel", []string{"united", "airline", "hotel", "travel", "flight"}},
	{"Transportation", []string{"uber", "lyft", "taxi", "transit", "parking"}},
	{"Utilities", []string{"electric", "water", "gas", "utility", "internet", "phone"}},
}

// MapCategory flattens Plaid's category hierarchy to one coach label by
// keyword-matching the primary category.
func MapCategory(categories []string) string {
	if len(categories) == 0 {
		return CategoryOther
	}

	primary := strings.ToLower(categories[0])
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(primary, kw) {
				return group.label
			}
		}
	}

	return CategoryOther
}
