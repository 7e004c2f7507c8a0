package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// Persistence keys shared with any other storefront session on the
// same store.
const (
	currencyKey     = "currency"
	quoteKey        = "quote"
	quoteUpdatedKey = "quote_updated_at"
)

var _ port.QuoteKeeper = (*QuoteLedger)(nil)

// QuoteLedger is the user's selected-items list, unique by product id.
// The persisted value is the source of truth: every mutation re-reads
// the stored sequence, applies the change and writes the result back,
// so concurrent sessions sharing one store stay consistent. Storage
// failures degrade to an empty sequence and a false success flag,
// they never propagate.
type QuoteLedger struct {
	mu    sync.Mutex
	store port.KeyValueStore
	now   func() time.Time
}

func NewQuoteLedger(store port.KeyValueStore) *QuoteLedger {
	return &QuoteLedger{store: store, now: time.Now}
}

// Load returns the persisted entries, empty when nothing is persisted
// or the stored value is unreadable.
func (l *QuoteLedger) Load() []domain.QuoteEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Add appends a snapshot of the product and persists the result.
// Adding an id already present is a no-op. The flag reports whether
// the ledger was left persisted.
func (l *QuoteLedger) Add(p domain.Product) ([]domain.QuoteEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.load()
	for _, e := range entries {
		if e.ID == p.ID {
			return entries, true
		}
	}

	entries = append(entries, domain.SnapshotProduct(p))
	return entries, l.persist(entries)
}

// Remove drops every entry with the given id and persists the result
// unconditionally, even when nothing matched.
func (l *QuoteLedger) Remove(id int) ([]domain.QuoteEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.load()
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return kept, l.persist(kept)
}

// Clear persists an empty sequence.
func (l *QuoteLedger) Clear() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.persist(nil)
}

func (l *QuoteLedger) Contains(id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.load() {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (l *QuoteLedger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.load())
}

// Export serializes the current ledger as the downloadable snapshot:
// currency, ISO-8601 timestamp, items and the active exchange rate
// (1 when the currency is absent from the table), indented with two
// spaces. The shape must stay compatible with existing exports.
func (l *QuoteLedger) Export(currency string, rates domain.RateTable) ([]byte, error) {
	const op = "QuoteLedger.Export"

	items := l.Load()
	if items == nil {
		items = []domain.QuoteEntry{}
	}

	rate, ok := rates.Rate(currency)
	if !ok {
		rate = 1
	}

	snap := domain.QuoteSnapshot{
		Currency:     currency,
		Timestamp:    l.now().UTC().Format(time.RFC3339),
		Items:        items,
		ExchangeRate: rate,
	}

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// ExportFilename names the downloadable artifact for the given moment.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("quote-%s.json", t.UTC().Format(time.DateOnly))
}

func (l *QuoteLedger) load() []domain.QuoteEntry {
	const op = "QuoteLedger.load"
	log := slog.With("op", op)

	s, err := l.store.Get(quoteKey)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			log.Warn("failed to read quote, using empty", "err", err)
		}
		return nil
	}

	var entries []domain.QuoteEntry
	if err := json.Unmarshal([]byte(s), &entries); err != nil {
		log.Warn("corrupt quote value, using empty", "err", err)
		return nil
	}
	return entries
}

func (l *QuoteLedger) persist(entries []domain.QuoteEntry) bool {
	const op = "QuoteLedger.persist"
	log := slog.With("op", op)

	if entries == nil {
		entries = []domain.QuoteEntry{}
	}

	b, err := json.Marshal(entries)
	if err != nil {
		log.Error("failed to serialize quote", "err", err)
		return false
	}

	if err := l.store.Set(quoteKey, string(b)); err != nil {
		log.Warn("failed to persist quote", "err", err)
		return false
	}

	updatedAt := l.now().UTC().Format(time.RFC3339)
	if err := l.store.Set(quoteUpdatedKey, updatedAt); err != nil {
		log.Warn("failed to persist update timestamp", "err", err)
	}
	return true
}
