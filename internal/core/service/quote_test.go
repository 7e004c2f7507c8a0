package service_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

type memStore struct {
	m map[string]string
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, error) {
	v, ok := s.m[key]
	if !ok {
		return "", port.ErrNotFound
	}
	return v, nil
}

func (s *memStore) Set(key, value string) error {
	s.m[key] = value
	return nil
}

func (s *memStore) Delete(key string) error {
	delete(s.m, key)
	return nil
}

type MockStore struct {
	mock.Mock
}

func (s *MockStore) Get(key string) (string, error) {
	args := s.Called(key)
	return args.String(0), args.Error(1)
}

func (s *MockStore) Set(key, value string) error {
	args := s.Called(key, value)
	return args.Error(0)
}

func (s *MockStore) Delete(key string) error {
	args := s.Called(key)
	return args.Error(0)
}

func TestQuoteLedger(t *testing.T) {
	product := testProducts()[0]

	t.Run("LoadEmptyStore", func(t *testing.T) {
		ledger := service.NewQuoteLedger(newMemStore())
		assert.Empty(t, ledger.Load())
		assert.Zero(t, ledger.Count())
	})

	t.Run("LoadCorruptValue", func(t *testing.T) {
		store := newMemStore()
		store.m["quote"] = "{not json"

		ledger := service.NewQuoteLedger(store)
		assert.Empty(t, ledger.Load())
	})

	t.Run("AddPersistsSnapshot", func(t *testing.T) {
		store := newMemStore()
		ledger := service.NewQuoteLedger(store)

		entries, ok := ledger.Add(product)
		require.True(t, ok)
		require.Len(t, entries, 1)
		assert.Equal(t, product.ID, entries[0].ID)
		assert.Equal(t, product.Title, entries[0].Title)

		assert.True(t, ledger.Contains(product.ID))
		assert.Equal(t, 1, ledger.Count())

		_, err := store.Get("quote")
		require.NoError(t, err)

		updatedAt, err := store.Get("quote_updated_at")
		require.NoError(t, err)
		_, err = time.Parse(time.RFC3339, updatedAt)
		assert.NoError(t, err)
	})

	t.Run("DuplicateAddIsNoOp", func(t *testing.T) {
		ledger := service.NewQuoteLedger(newMemStore())

		_, ok := ledger.Add(product)
		require.True(t, ok)
		entries, ok := ledger.Add(product)
		require.True(t, ok)

		assert.Len(t, entries, 1)
		assert.Equal(t, 1, ledger.Count())
	})

	t.Run("RemoveOnEmptyLedger", func(t *testing.T) {
		ledger := service.NewQuoteLedger(newMemStore())

		entries, ok := ledger.Remove(42)
		require.True(t, ok)
		assert.Empty(t, entries)
	})

	t.Run("RemovePersistsResult", func(t *testing.T) {
		ps := testProducts()
		ledger := service.NewQuoteLedger(newMemStore())
		ledger.Add(ps[0])
		ledger.Add(ps[1])

		entries, ok := ledger.Remove(ps[0].ID)
		require.True(t, ok)
		require.Len(t, entries, 1)
		assert.Equal(t, ps[1].ID, entries[0].ID)
		assert.False(t, ledger.Contains(ps[0].ID))
	})

	t.Run("ClearPersistsEmptySequence", func(t *testing.T) {
		store := newMemStore()
		ledger := service.NewQuoteLedger(store)
		ledger.Add(product)

		require.True(t, ledger.Clear())
		assert.Zero(t, ledger.Count())
		assert.Equal(t, "[]", store.m["quote"])
	})

	t.Run("SnapshotIsNotALiveReference", func(t *testing.T) {
		ledger := service.NewQuoteLedger(newMemStore())
		p := testProducts()[0]
		ledger.Add(p)

		p.Price = 1
		assert.Equal(t, 199.99, ledger.Load()[0].Price)
	})
}

func TestQuoteLedgerStorageFailures(t *testing.T) {
	product := testProducts()[0]

	t.Run("AddReportsPersistFailure", func(t *testing.T) {
		store := new(MockStore)
		store.On("Get", "quote").Return("", port.ErrNotFound)
		store.On("Set", "quote", mock.Anything).
			Return(errors.New("disk full"))

		ledger := service.NewQuoteLedger(store)
		entries, ok := ledger.Add(product)

		assert.False(t, ok)
		assert.Len(t, entries, 1)
	})

	t.Run("ReadFailureDegradesToEmpty", func(t *testing.T) {
		store := new(MockStore)
		store.On("Get", "quote").Return("", errors.New("io error"))

		ledger := service.NewQuoteLedger(store)
		assert.Empty(t, ledger.Load())
		assert.Zero(t, ledger.Count())
		assert.False(t, ledger.Contains(product.ID))
	})
}

func TestQuoteLedgerExport(t *testing.T) {
	rates := domain.RateTable{"EUR": 0.92}

	t.Run("EmptyLedger", func(t *testing.T) {
		ledger := service.NewQuoteLedger(newMemStore())

		b, err := ledger.Export("EUR", rates)
		require.NoError(t, err)

		var snap struct {
			Currency     string              `json:"currency"`
			Timestamp    string              `json:"timestamp"`
			Items        []domain.QuoteEntry `json:"items"`
			ExchangeRate float64             `json:"exchangeRate"`
		}
		require.NoError(t, json.Unmarshal(b, &snap))

		assert.Equal(t, "EUR", snap.Currency)
		assert.NotNil(t, snap.Items)
		assert.Empty(t, snap.Items)
		assert.Equal(t, 0.92, snap.ExchangeRate)

		_, err = time.Parse(time.RFC3339, snap.Timestamp)
		assert.NoError(t, err)
	})

	t.Run("TwoSpaceIndentation", func(t *testing.T) {
		ledger := service.NewQuoteLedger(newMemStore())

		b, err := ledger.Export("USD", rates)
		require.NoError(t, err)
		assert.Contains(t, string(b), "\n  \"currency\"")
	})

	t.Run("UnknownCurrencyExportsRateOne", func(t *testing.T) {
		ledger := service.NewQuoteLedger(newMemStore())

		b, err := ledger.Export("CHF", rates)
		require.NoError(t, err)

		var snap domain.QuoteSnapshot
		require.NoError(t, json.Unmarshal(b, &snap))
		assert.Equal(t, 1.0, snap.ExchangeRate)
	})
}

func TestExportFilename(t *testing.T) {
	ts := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "quote-2024-03-09.json", service.ExportFilename(ts))
}

func TestQuoteScenarioConvertedTotal(t *testing.T) {
	// One product at 10 USD, EUR rate 0.5: the quote totals 5 EUR.
	p := domain.Product{
		ID: 1, Title: "Widget", Price: 10,
		Description: "d", Category: "c", Image: "i",
	}
	rates := domain.RateTable{"EUR": 0.5}

	ledger := service.NewQuoteLedger(newMemStore())
	entries, ok := ledger.Add(p)
	require.True(t, ok)

	total := service.Total(entries, "EUR", rates)
	assert.InDelta(t, 5.0, total, 1e-9)
	assert.Equal(t, "€5.00", service.FormatPrice(total, "EUR"))
}
