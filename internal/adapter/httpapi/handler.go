package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

type CatalogHandler struct {
	querier port.ProductsQuerier
	views   port.ViewProvider
	state   port.StateKeeper
}

func RegisterCatalog(
	mux *http.ServeMux,
	querier port.ProductsQuerier,
	views port.ViewProvider,
	state port.StateKeeper,
) {
	h := CatalogHandler{querier, views, state}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := domain.FilterCriteria{
		Search:    q.Get("q"),
		Category:  q.Get("category"),
		MinPrice:  parseFloat(q.Get("min_price")),
		MaxPrice:  parseFloat(q.Get("max_price")),
		MinRating: parseFloat(q.Get("min_rating")),
	}
	key := domain.SortKey(q.Get("sort"))
	currency := h.currency(q.Get("currency"))

	products := h.views.View(criteria, key)
	writeJSON(w, ProductsResponse{
		Products: toProductDTOs(products, currency, h.state.Rates()),
		Currency: currency,
	})
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := h.querier.ByID(id)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to read product", http.StatusInternalServerError)
		return
	}

	currency := h.currency(r.URL.Query().Get("currency"))
	writeJSON(w, toProductDTO(p, currency, h.state.Rates()))
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, CategoriesResponse{
		Categories: h.querier.Categories(),
		Counts:     h.querier.CategoryCounts(),
	})
}

func (h CatalogHandler) currency(override string) string {
	if domain.Supported(override) {
		return override
	}
	return h.state.State().Currency
}

type IntentHandler struct {
	state port.StateKeeper
	views port.ViewSource
}

// RegisterIntents wires the user intents coming back from the
// rendering collaborator: search text, category selection, sort and
// currency changes, and the latest rendered view.
func RegisterIntents(
	mux *http.ServeMux, state port.StateKeeper, views port.ViewSource,
) {
	h := IntentHandler{state, views}
	mux.HandleFunc("PUT /v1/search", h.PutSearch)
	mux.HandleFunc("PUT /v1/category", h.PutCategory)
	mux.HandleFunc("PUT /v1/sort", h.PutSort)
	mux.HandleFunc("PUT /v1/currency", h.PutCurrency)
	mux.HandleFunc("DELETE /v1/criteria", h.DeleteCriteria)
	mux.HandleFunc("GET /v1/view", h.GetView)
	mux.HandleFunc("GET /v1/state", h.GetState)
}

func (h IntentHandler) PutSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.state.Dispatch(domain.SearchChanged{Text: req.Query})
	w.WriteHeader(http.StatusAccepted)
}

func (h IntentHandler) PutCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.state.Dispatch(domain.CategorySelected{Category: req.Category})
	w.WriteHeader(http.StatusNoContent)
}

func (h IntentHandler) PutSort(w http.ResponseWriter, r *http.Request) {
	var req SortRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.state.Dispatch(domain.SortChanged{Key: domain.SortKey(req.Sort)})
	w.WriteHeader(http.StatusNoContent)
}

func (h IntentHandler) PutCurrency(w http.ResponseWriter, r *http.Request) {
	var req CurrencyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.state.Dispatch(domain.CurrencyChanged{Currency: req.Currency})
	writeJSON(w, h.state.State())
}

func (h IntentHandler) DeleteCriteria(w http.ResponseWriter, r *http.Request) {
	h.state.Dispatch(domain.CriteriaCleared{})
	w.WriteHeader(http.StatusNoContent)
}

func (h IntentHandler) GetView(w http.ResponseWriter, r *http.Request) {
	v, ok := h.views.Latest()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, ViewResponse{
		Products: toProductDTOs(v.Products, v.Currency, v.Rates),
		Currency: v.Currency,
		Rates:    v.Rates,
	})
}

func (h IntentHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.state.State())
}

type QuoteHandler struct {
	quotes  port.QuoteKeeper
	querier port.ProductsQuerier
	state   port.StateKeeper
}

func RegisterQuote(
	mux *http.ServeMux,
	quotes port.QuoteKeeper,
	querier port.ProductsQuerier,
	state port.StateKeeper,
) {
	h := QuoteHandler{quotes, querier, state}
	mux.HandleFunc("GET /v1/quote", h.GetQuote)
	mux.HandleFunc("POST /v1/quote/items", h.AddItem)
	mux.HandleFunc("DELETE /v1/quote/items/{id}", h.RemoveItem)
	mux.HandleFunc("DELETE /v1/quote", h.ClearQuote)
	mux.HandleFunc("GET /v1/quote/export", h.ExportQuote)
}

func (h QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	currency := h.currency(r.URL.Query().Get("currency"))
	writeJSON(w, h.quoteResponse(h.quotes.Load(), currency, true))
}

func (h QuoteHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "QuoteHandler.AddItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := h.querier.ByID(req.ID)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	items, ok := h.quotes.Add(p)
	if !ok {
		log.Warn("quote not persisted", "productID", p.ID)
	}

	currency := h.currency("")
	writeJSON(w, h.quoteResponse(items, currency, ok))
}

func (h QuoteHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "QuoteHandler.RemoveItem"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	items, ok := h.quotes.Remove(id)
	if !ok {
		log.Warn("quote not persisted", "productID", id)
	}
	writeJSON(w, h.quoteResponse(items, h.currency(""), ok))
}

func (h QuoteHandler) ClearQuote(w http.ResponseWriter, r *http.Request) {
	if !h.quotes.Clear() {
		http.Error(w, "failed to clear quote", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h QuoteHandler) ExportQuote(w http.ResponseWriter, r *http.Request) {
	const op = "QuoteHandler.ExportQuote"
	log := slog.With("op", op)

	currency := h.currency(r.URL.Query().Get("currency"))

	b, err := h.quotes.Export(currency, h.state.Rates())
	if err != nil {
		http.Error(w, "failed to export quote", http.StatusInternalServerError)
		log.Error("failed to export quote", "err", err)
		return
	}

	name := service.ExportFilename(time.Now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", name))
	if _, err := w.Write(b); err != nil {
		log.Error("failed to write export body", "err", err)
	}
}

func (h QuoteHandler) quoteResponse(
	items []domain.QuoteEntry, currency string, persisted bool,
) QuoteResponse {
	if items == nil {
		items = []domain.QuoteEntry{}
	}
	total := service.Total(items, currency, h.state.Rates())
	return QuoteResponse{
		Items:        items,
		Count:        len(items),
		Currency:     currency,
		Total:        total,
		DisplayTotal: service.FormatPrice(total, currency),
		Persisted:    persisted,
	}
}

func (h QuoteHandler) currency(override string) string {
	if domain.Supported(override) {
		return override
	}
	return h.state.State().Currency
}

func writeJSON(w http.ResponseWriter, v any) {
	const op = "httpapi.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	const op = "httpapi.decodeBody"

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		slog.Warn("failed to parse JSON", "op", op, "err", err)
		return false
	}
	return true
}

// parseFloat resolves malformed numeric inputs to 0, query errors
// never fail a request.
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
