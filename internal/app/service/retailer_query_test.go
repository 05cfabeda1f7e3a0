package service

import (
	"testing"

	"github.com/retailhub/retailhub-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func queryFixture() []model.Retailer {
	return []model.Retailer{
		{ID: "1", Name: "Acme Market", Location: "NYC", Category: "Grocery"},
		{ID: "2", Name: "Volt", Location: "Boston", Category: "Electronics"},
		{ID: "3", Name: "Green Leaf", Location: "Brooklyn, NYC", Category: "Grocery"},
		{ID: "4", Name: "Byte Shop", Location: "Austin", Category: "electronics"},
	}
}

func TestSearch(t *testing.T) {
	records := queryFixture()

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "empty query returns all in order", query: "", wantIDs: []string{"1", "2", "3", "4"}},
		{name: "whitespace query returns all", query: "   ", wantIDs: []string{"1", "2", "3", "4"}},
		{name: "category match is case-insensitive", query: "ELEC", wantIDs: []string{"2", "4"}},
		{name: "name match", query: "acme", wantIDs: []string{"1"}},
		{name: "location match", query: "nyc", wantIDs: []string{"1", "3"}},
		{name: "no match", query: "pharmacy", wantIDs: []string{}},
		{name: "trailing space is part of the match", query: "acme ", wantIDs: []string{"1"}},
		{name: "trailing space past end of field", query: "volt ", wantIDs: []string{}},
		{name: "leading space is part of the match", query: " nyc", wantIDs: []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(records, tt.query)
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearch_EmptyQueryReturnsInputUnchanged(t *testing.T) {
	records := queryFixture()
	assert.Equal(t, records, Search(records, ""))
}

func TestSearch_DoesNotMatchOtherFields(t *testing.T) {
	records := []model.Retailer{{ID: "1", Name: "A", Location: "B", Category: "C", Note: "electronics", Contact: "elec@example.com"}}
	assert.Empty(t, Search(records, "elec"))
}

func TestDistinctCategories(t *testing.T) {
	assert.Equal(t, []string{"Grocery", "Electronics", "electronics"}, DistinctCategories(queryFixture()))
	assert.Equal(t, []string{}, DistinctCategories(nil))
}

func TestSplitProsCons(t *testing.T) {
	tests := []struct {
		input    string
		wantPros string
		wantCons string
	}{
		{input: "fast||pricey", wantPros: "fast", wantCons: "pricey"},
		{input: "fast", wantPros: "fast", wantCons: ""},
		{input: "", wantPros: "", wantCons: ""},
		{input: "||pricey", wantPros: "", wantCons: "pricey"},
		{input: "a||b||c", wantPros: "a", wantCons: "b"},
		{input: "good staff || slow", wantPros: "good staff ", wantCons: " slow"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pros, cons := SplitProsCons(tt.input)
			assert.Equal(t, tt.wantPros, pros)
			assert.Equal(t, tt.wantCons, cons)
		})
	}
}
