package service

import (
	"math"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// DefaultDebounce is the quiet period coalescing search input bursts.
const DefaultDebounce = 300 * time.Millisecond

var _ port.ViewProvider = (*FilterPipeline)(nil)

// FilterPipeline composes the filter criteria into the catalog.
// View is pure and deterministic. Push is the debounced trigger for
// interactive search input: bursts within the quiet period collapse
// into a single trailing-edge recomputation using only the latest
// criteria.
type FilterPipeline struct {
	catalog *Catalog
	wait    time.Duration
	fire    func(domain.FilterCriteria, domain.SortKey)

	mu          sync.Mutex
	timer       *time.Timer
	gen         uint64
	pending     domain.FilterCriteria
	pendingSort domain.SortKey
}

func NewFilterPipeline(
	catalog *Catalog,
	wait time.Duration,
	fire func(domain.FilterCriteria, domain.SortKey),
) *FilterPipeline {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &FilterPipeline{catalog: catalog, wait: wait, fire: fire}
}

// View filters and sorts the catalog: category and search predicates,
// then the optional price range and minimum rating, then the sort key.
// Identical inputs always produce the identical order.
func (p *FilterPipeline) View(
	criteria domain.FilterCriteria, key domain.SortKey,
) []domain.Product {
	ps := p.catalog.Filter(criteria)
	if criteria.MinPrice > 0 || criteria.MaxPrice > 0 {
		max := criteria.MaxPrice
		if max <= 0 {
			max = math.Inf(1)
		}
		ps = FilterPriceRange(ps, criteria.MinPrice, max)
	}
	if criteria.MinRating > 0 {
		ps = FilterMinRating(ps, criteria.MinRating)
	}
	return SortProducts(ps, key)
}

// Push schedules a recomputation after the quiet period. A push while
// one is pending replaces the pending criteria and restarts the clock.
func (p *FilterPipeline) Push(criteria domain.FilterCriteria, key domain.SortKey) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending, p.pendingSort = criteria, key
	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	gen := p.gen
	p.timer = time.AfterFunc(p.wait, func() { p.flush(gen) })
}

// Stop cancels a pending recomputation.
func (p *FilterPipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// flush fires only when its generation is still current. Stop on an
// already-expired timer is a no-op, so a stale flush may run
// concurrently with a fresh Push; the generation check keeps the burst
// down to a single fire.
func (p *FilterPipeline) flush(gen uint64) {
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	criteria, key := p.pending, p.pendingSort
	p.mu.Unlock()

	if p.fire != nil {
		p.fire(criteria, key)
	}
}
