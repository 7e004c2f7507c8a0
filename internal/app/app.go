package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/fetch"
	"github.com/niksmo/storefront/internal/adapter/httpapi"
	"github.com/niksmo/storefront/internal/adapter/render"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	store      storage.KV
	catalog    *service.Catalog
	ledger     *service.QuoteLedger
	storefront *service.Storefront
	views      *render.ViewCache
	httpServer httpapi.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStore()

	catalog, rates := app.fetchStartupData()

	app.initCore(catalog, rates)
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

// initStore opens the key-value store. A broken filesystem store is
// not fatal: the session continues on an in-memory store and loses
// persistence only.
func (app *App) initStore() {
	const op = "App.initStore"
	log := slog.With("op", op)

	kv, err := storage.NewKV(app.cfg.Store.Path)
	if err != nil {
		log.Warn("store unavailable, falling back to memory", "err", err)
		kv, err = storage.NewMemKV()
		if err != nil {
			app.fallDown(op, err)
		}
	}
	app.store = kv
}

// fetchStartupData runs the catalog and rates fetches concurrently and
// joins both before initialization continues. A catalog failure is
// fatal, a rates failure substitutes the fallback table.
func (app *App) fetchStartupData() ([]domain.Product, domain.RateTable) {
	const op = "App.fetchStartupData"
	log := slog.With("op", op)

	client := fetch.New(fetch.Config{
		CatalogURL:    app.cfg.API.CatalogURL,
		RatesURL:      app.cfg.API.RatesURL,
		Timeout:       app.cfg.API.Timeout,
		RetryAttempts: app.cfg.API.RetryAttempts,
	})

	var (
		catalog  []domain.Product
		rates    domain.RateTable
		ratesErr error
	)

	g, ctx := errgroup.WithContext(app.ctx)
	g.Go(func() (err error) {
		catalog, err = client.FetchCatalog(ctx)
		return err
	})
	g.Go(func() error {
		rates, ratesErr = client.FetchRates(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		app.fallDown(op, err)
	}

	if ratesErr != nil {
		log.Warn("rates unavailable, using fallback table", "err", ratesErr)
		rates = domain.FallbackRates()
	}

	log.Info("startup data ready", "nProducts", len(catalog))
	return catalog, rates
}

func (app *App) initCore(catalog []domain.Product, rates domain.RateTable) {
	app.catalog = service.NewCatalog(catalog)
	app.ledger = service.NewQuoteLedger(app.store)
	app.views = render.NewViewCache()
	app.storefront = service.NewStorefront(
		app.catalog, rates, app.store, app.views, app.cfg.Search.Debounce,
	)
	app.storefront.RenderCurrent()
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httpapi.RegisterCatalog(mux, app.catalog, app.storefront, app.storefront)
	httpapi.RegisterIntents(mux, app.storefront, app.views)
	httpapi.RegisterQuote(mux, app.ledger, app.catalog, app.storefront)

	handler := httpapi.AllowJSON(mux)
	app.httpServer = httpapi.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.storefront.Close()
	app.store.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
