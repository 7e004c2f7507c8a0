package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/niksmo/storefront/internal/core/domain"
)

func TestNewState(t *testing.T) {
	s := domain.NewState()
	assert.Equal(t, domain.BaseCurrency, s.Currency)
	assert.Empty(t, s.Criteria.Search)
	assert.Empty(t, s.Criteria.Category)
}

func TestReduce(t *testing.T) {
	t.Run("SearchChanged", func(t *testing.T) {
		s := domain.NewState()
		next := domain.Reduce(s, domain.SearchChanged{Text: "phone"})
		assert.Equal(t, "phone", next.Criteria.Search)
	})

	t.Run("CategorySelected", func(t *testing.T) {
		s := domain.NewState()
		next := domain.Reduce(s, domain.CategorySelected{Category: "electronics"})
		assert.Equal(t, "electronics", next.Criteria.Category)
	})

	t.Run("SortChanged", func(t *testing.T) {
		s := domain.NewState()
		next := domain.Reduce(s, domain.SortChanged{Key: domain.SortPriceAsc})
		assert.Equal(t, domain.SortPriceAsc, next.Sort)
	})

	t.Run("CurrencyChanged", func(t *testing.T) {
		s := domain.NewState()
		next := domain.Reduce(s, domain.CurrencyChanged{Currency: "EUR"})
		assert.Equal(t, "EUR", next.Currency)
	})

	t.Run("UnsupportedCurrencyIsNoOp", func(t *testing.T) {
		s := domain.NewState()
		s.Currency = "GBP"
		next := domain.Reduce(s, domain.CurrencyChanged{Currency: "XYZ"})
		assert.Equal(t, "GBP", next.Currency)
	})

	t.Run("CriteriaCleared", func(t *testing.T) {
		s := domain.NewState()
		s = domain.Reduce(s, domain.SearchChanged{Text: "phone"})
		s = domain.Reduce(s, domain.CategorySelected{Category: "electronics"})
		s = domain.Reduce(s, domain.CriteriaCleared{})
		assert.Equal(t, domain.FilterCriteria{}, s.Criteria)
	})

	t.Run("InputStateIsNeverMutated", func(t *testing.T) {
		s := domain.NewState()
		_ = domain.Reduce(s, domain.SearchChanged{Text: "phone"})
		assert.Empty(t, s.Criteria.Search)
	})
}

func TestRateTable(t *testing.T) {
	t.Run("BaseCurrencyImplicit", func(t *testing.T) {
		r, ok := domain.RateTable{}.Rate("USD")
		assert.True(t, ok)
		assert.Equal(t, 1.0, r)
	})

	t.Run("MissingCode", func(t *testing.T) {
		_, ok := domain.RateTable{"EUR": 0.92}.Rate("CHF")
		assert.False(t, ok)
	})

	t.Run("FallbackTable", func(t *testing.T) {
		rates := domain.FallbackRates()
		assert.Equal(t, 0.92, rates["EUR"])
		assert.Equal(t, 0.79, rates["GBP"])
		assert.Equal(t, 149.50, rates["JPY"])
		assert.Equal(t, 17.20, rates["MXN"])
		assert.Equal(t, 1.0, rates["USD"])
	})
}

func TestCurrencyTables(t *testing.T) {
	assert.Equal(t, "€", domain.Symbol("EUR"))
	assert.Equal(t, "$", domain.Symbol("UNKNOWN"))
	assert.Equal(t, "Japanese Yen", domain.CurrencyName("JPY"))
	assert.Equal(t, "ABC", domain.CurrencyName("ABC"))
	assert.True(t, domain.ZeroDecimal("JPY"))
	assert.False(t, domain.ZeroDecimal("EUR"))
	assert.True(t, domain.Supported("MXN"))
	assert.False(t, domain.Supported("CHF"))
	assert.Len(t, domain.SupportedCurrencies(), 5)
}
