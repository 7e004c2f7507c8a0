package service

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.StateKeeper = (*Storefront)(nil)
var _ port.ViewProvider = (*Storefront)(nil)

// Storefront owns the interactive state and connects the pure parts:
// every dispatched event goes through [domain.Reduce], the resulting
// view flows to the view sink. Search events are debounced through the
// filter pipeline, all other events recompute immediately. The active
// currency is persisted across sessions.
type Storefront struct {
	mu       sync.Mutex
	state    domain.State
	rates    domain.RateTable
	pipeline *FilterPipeline
	store    port.KeyValueStore
	sink     port.ViewSink
}

func NewStorefront(
	catalog *Catalog,
	rates domain.RateTable,
	store port.KeyValueStore,
	sink port.ViewSink,
	debounce time.Duration,
) *Storefront {
	s := &Storefront{
		state: domain.NewState(),
		rates: rates,
		store: store,
		sink:  sink,
	}
	s.state.Currency = s.loadCurrency()
	s.pipeline = NewFilterPipeline(catalog, debounce, s.onSearchSettled)
	return s
}

// Dispatch applies a user intent. The operation is atomic from the
// caller's perspective, the state either fully transitions or stays.
func (s *Storefront) Dispatch(e domain.Event) {
	s.mu.Lock()
	prev := s.state
	s.state = domain.Reduce(s.state, e)
	next := s.state
	s.mu.Unlock()

	switch e.(type) {
	case domain.SearchChanged:
		s.pipeline.Push(next.Criteria, next.Sort)
		return
	case domain.CurrencyChanged:
		if next.Currency != prev.Currency {
			s.persistCurrency(next.Currency)
		}
	}
	s.render(next)
}

func (s *Storefront) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rates returns the session rate table. It is fetched once at startup
// and treated as read-only.
func (s *Storefront) Rates() domain.RateTable {
	return s.rates
}

func (s *Storefront) View(
	criteria domain.FilterCriteria, key domain.SortKey,
) []domain.Product {
	return s.pipeline.View(criteria, key)
}

// RenderCurrent pushes the view for the current state to the sink,
// used once at startup to seed the initial render.
func (s *Storefront) RenderCurrent() {
	s.render(s.State())
}

// Close cancels any pending debounced recomputation.
func (s *Storefront) Close() {
	s.pipeline.Stop()
}

func (s *Storefront) onSearchSettled(domain.FilterCriteria, domain.SortKey) {
	// The debounced criteria may be stale by now, render the latest.
	s.render(s.State())
}

func (s *Storefront) render(st domain.State) {
	if s.sink == nil {
		return
	}
	products := s.pipeline.View(st.Criteria, st.Sort)
	s.sink.RenderView(domain.View{
		Products: products,
		Currency: st.Currency,
		Rates:    s.rates,
	})
}

func (s *Storefront) loadCurrency() string {
	const op = "Storefront.loadCurrency"

	cur, err := s.store.Get(currencyKey)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			slog.Warn("failed to read currency preference",
				"op", op, "err", err)
		}
		return domain.BaseCurrency
	}
	if !domain.Supported(cur) {
		return domain.BaseCurrency
	}
	return cur
}

func (s *Storefront) persistCurrency(currency string) {
	const op = "Storefront.persistCurrency"

	if err := s.store.Set(currencyKey, currency); err != nil {
		slog.Warn("failed to persist currency preference",
			"op", op, "err", err)
	}
}
