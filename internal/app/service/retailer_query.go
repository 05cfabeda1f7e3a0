package service

import (
	"strings"

	"github.com/retailhub/retailhub-backend/internal/app/model"
)

// Search keeps the retailers whose name, location or category contains query,
// ignoring case. A blank or whitespace-only query returns records unchanged;
// otherwise the query is matched as given, surrounding spaces included.
func Search(records []model.Retailer, query string) []model.Retailer {
	if strings.TrimSpace(query) == "" {
		return records
	}
	needle := strings.ToLower(query)

	matched := make([]model.Retailer, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), needle) ||
			strings.Contains(strings.ToLower(r.Location), needle) ||
			strings.Contains(strings.ToLower(r.Category), needle) {
			matched = append(matched, r)
		}
	}
	return matched
}

// DistinctCategories lists each category once, in first-seen order.
func DistinctCategories(records []model.Retailer) []string {
	seen := make(map[string]struct{}, len(records))
	categories := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		categories = append(categories, r.Category)
	}
	return categories
}

// SplitProsCons splits the combined form field on "||". Anything after a
// second separator is dropped.
func SplitProsCons(prosCons string) (pros, cons string) {
	parts := strings.Split(prosCons, prosConsSeparator)
	pros = parts[0]
	if len(parts) > 1 {
		cons = parts[1]
	}
	return pros, cons
}

const prosConsSeparator = "||"
