package service

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductsQuerier = (*Catalog)(nil)

// Catalog holds the product sequence for the session. Insertion order
// is the catalog source order and never changes, every query returns
// a fresh slice and leaves the products untouched.
type Catalog struct {
	products []domain.Product
}

func NewCatalog(products []domain.Product) *Catalog {
	ps := make([]domain.Product, len(products))
	copy(ps, products)
	return &Catalog{products: ps}
}

func (c *Catalog) All() []domain.Product {
	ps := make([]domain.Product, len(c.products))
	copy(ps, c.products)
	return ps
}

func (c *Catalog) ByID(id int) (domain.Product, error) {
	const op = "Catalog.ByID"

	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%s: product %d: %w", op, id, port.ErrNotFound)
}

// Categories returns the distinct non-empty category labels,
// lexicographically sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, p := range c.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return cats
}

// CategoryCounts maps each category to its number of products,
// products without a category count under [domain.Uncategorized].
func (c *Catalog) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range c.products {
		label := p.Category
		if label == "" {
			label = domain.Uncategorized
		}
		counts[label]++
	}
	return counts
}

// Filter applies the category and search predicates, relative order
// is preserved.
func (c *Catalog) Filter(criteria domain.FilterCriteria) []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if criteria.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Sort(key domain.SortKey) []domain.Product {
	return SortProducts(c.products, key)
}

func (c *Catalog) PriceRange(min, max float64) []domain.Product {
	return FilterPriceRange(c.products, min, max)
}

func (c *Catalog) MinRating(rating float64) []domain.Product {
	return FilterMinRating(c.products, rating)
}

// SortProducts returns a sorted copy, the input is never mutated.
// Name ordering is locale aware, an unrecognized key returns the
// original order unchanged.
func SortProducts(products []domain.Product, key domain.SortKey) []domain.Product {
	ps := make([]domain.Product, len(products))
	copy(ps, products)

	switch key {
	case domain.SortPriceAsc:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Price < ps[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Price > ps[j].Price
		})
	case domain.SortNameAsc:
		col := collate.New(language.AmericanEnglish)
		sort.SliceStable(ps, func(i, j int) bool {
			return col.CompareString(ps[i].Title, ps[j].Title) < 0
		})
	case domain.SortNameDesc:
		col := collate.New(language.AmericanEnglish)
		sort.SliceStable(ps, func(i, j int) bool {
			return col.CompareString(ps[i].Title, ps[j].Title) > 0
		})
	case domain.SortRating:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Rating.Rate > ps[j].Rating.Rate
		})
	}
	return ps
}

// FilterPriceRange keeps products with min <= price <= max, bounds
// inclusive, over the base currency price.
func FilterPriceRange(products []domain.Product, min, max float64) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.Price >= min && p.Price <= max {
			out = append(out, p)
		}
	}
	return out
}

// FilterMinRating keeps products rated at least the given value,
// a missing rating counts as 0.
func FilterMinRating(products []domain.Product, rating float64) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.Rating.Rate >= rating {
			out = append(out, p)
		}
	}
	return out
}
