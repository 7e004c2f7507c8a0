package port

import (
	"context"
	"errors"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ErrNotFound is returned by lookups that miss: an absent persistence
// key or an unknown product id.
var ErrNotFound = errors.New("not found")

type CatalogProvider interface {
	FetchCatalog(context.Context) ([]domain.Product, error)
}

type RatesProvider interface {
	FetchRates(context.Context) (domain.RateTable, error)
}

// KeyValueStore is the persistence collaborator: a synchronous
// string-keyed, string-valued store. Get returns [ErrNotFound]
// for absent keys.
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

type ProductsQuerier interface {
	All() []domain.Product
	ByID(id int) (domain.Product, error)
	Categories() []string
	CategoryCounts() map[string]int
}

// ViewProvider derives a filtered and sorted product view. The result
// is a pure function of the catalog and the arguments.
type ViewProvider interface {
	View(domain.FilterCriteria, domain.SortKey) []domain.Product
}

type QuoteKeeper interface {
	Load() []domain.QuoteEntry
	Add(domain.Product) ([]domain.QuoteEntry, bool)
	Remove(id int) ([]domain.QuoteEntry, bool)
	Clear() bool
	Contains(id int) bool
	Count() int
	Export(currency string, rates domain.RateTable) ([]byte, error)
}

type StateKeeper interface {
	Dispatch(domain.Event)
	State() domain.State
	Rates() domain.RateTable
}

// ViewSink consumes rendered views, it stands in for the rendering
// collaborator which is outside the core.
type ViewSink interface {
	RenderView(domain.View)
}

// ViewSource exposes the most recently rendered view.
type ViewSource interface {
	Latest() (domain.View, bool)
}
