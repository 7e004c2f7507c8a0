package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
)

const defaultTimeout = 10 * time.Second

var _ port.CatalogProvider = Client{}
var _ port.RatesProvider = Client{}

type Config struct {
	CatalogURL string
	RatesURL   string
	Timeout    time.Duration

	// RetryAttempts above 1 wraps each fetch with exponential backoff.
	RetryAttempts int
}

// Client fetches the two startup documents: the product catalog and
// the exchange rate table.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

func New(cfg Config) Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

// FetchCatalog downloads and decodes the product catalog. Any network,
// status or decode failure is returned to the caller, a catalog
// failure is fatal to startup.
func (c Client) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	const op = "fetch.Client.FetchCatalog"

	body, err := c.get(ctx, c.cfg.CatalogURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var ps []product
	if err := json.Unmarshal(body, &ps); err != nil {
		return nil, fmt.Errorf("%s: failed to decode catalog: %w", op, err)
	}
	return toDomain(ps), nil
}

// FetchRates downloads the exchange rate document. A missing or empty
// rates mapping is an error, the caller substitutes the fallback table.
func (c Client) FetchRates(ctx context.Context) (domain.RateTable, error) {
	const op = "fetch.Client.FetchRates"

	body, err := c.get(ctx, c.cfg.RatesURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc ratesDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to decode rates: %w", op, err)
	}
	if len(doc.Rates) == 0 {
		return nil, fmt.Errorf("%s: rates missing from document", op)
	}
	return domain.RateTable(doc.Rates), nil
}

func (c Client) get(ctx context.Context, url string) ([]byte, error) {
	if c.cfg.RetryAttempts > 1 {
		rc := retry.RetryConfig{
			MaxAttempts: c.cfg.RetryAttempts,
			Backoff:     retry.ExponentialBackoff(time.Second),
		}
		return retry.DoWithResult(ctx, rc, func() ([]byte, error) {
			return c.getOnce(ctx, url)
		})
	}
	return c.getOnce(ctx, url)
}

func (c Client) getOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s",
			resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
