package domain

import "strings"

type (
	Product struct {
		ID          int
		Title       string
		Price       float64
		Description string
		Category    string
		Image       string
		Rating      ProductRating
	}

	ProductRating struct {
		Rate  float64
		Count int
	}
)

// Valid reports whether the product is complete enough to show to a user.
// Incomplete products may still exist in a catalog, validity is a query.
func (p Product) Valid() bool {
	return p.Title != "" &&
		p.Description != "" &&
		p.Category != "" &&
		p.Image != "" &&
		p.Price > 0
}

// CategoryAll is the sentinel criteria value matching every category.
const CategoryAll = "all"

// Uncategorized labels the count bucket for products without a category.
const Uncategorized = "uncategorized"

type FilterCriteria struct {
	Search   string
	Category string

	// Optional narrowing predicates, zero value means "not set".
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
}

// MatchesCategory reports whether the product passes the category predicate.
// An empty or "all" category passes everything, otherwise exact equality.
func (c FilterCriteria) MatchesCategory(p Product) bool {
	if c.Category == "" || c.Category == CategoryAll {
		return true
	}
	return p.Category == c.Category
}

// MatchesSearch reports whether the product passes the search predicate.
// The query is trimmed and case-folded, a blank query passes everything,
// otherwise any of title, description or category must contain it.
func (c FilterCriteria) MatchesSearch(p Product) bool {
	q := strings.ToLower(strings.TrimSpace(c.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

func (c FilterCriteria) Matches(p Product) bool {
	return c.MatchesCategory(p) && c.MatchesSearch(p)
}

type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortRating    SortKey = "rating"
)
