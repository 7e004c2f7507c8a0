package render

import (
	"log/slog"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ViewSink = (*ViewCache)(nil)
var _ port.ViewSource = (*ViewCache)(nil)

// ViewCache stands on the rendering boundary: the core pushes each
// derived view into it and readers pick up the latest one.
type ViewCache struct {
	mu   sync.RWMutex
	view domain.View
	has  bool
}

func NewViewCache() *ViewCache {
	return &ViewCache{}
}

func (c *ViewCache) RenderView(v domain.View) {
	const op = "ViewCache.RenderView"

	c.mu.Lock()
	c.view = v
	c.has = true
	c.mu.Unlock()

	slog.Debug("view rendered",
		"op", op, "nProducts", len(v.Products), "currency", v.Currency)
}

func (c *ViewCache) Latest() (domain.View, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view, c.has
}
