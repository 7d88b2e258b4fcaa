package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/pkg/logger"
)

// selectorPageSize is requested when filling a dropdown: selectors are not
// paginated, so one large page covers the whole list.
const selectorPageSize = 1000

// ClientConfig configures the connection to the legacy backend.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries uint64
}

// Client is a thin HTTP client over the legacy dealer-management API. Every
// response body goes through the normalizer before leaving this package.
type Client struct {
	baseURL    string
	apiKey     string
	http       *http.Client
	maxRetries uint64
}

// NewClient creates a legacy API client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	retries := cfg.MaxRetries
	if retries == 0 {
		retries = 3
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		http:       &http.Client{Timeout: timeout},
		maxRetries: retries,
	}
}

// Page is one normalized page of raw payload objects.
type Page struct {
	Items      []any
	Pagination Pagination
}

// ListBrands fetches one page of brands.
func (c *Client) ListBrands(ctx context.Context, page, pageSize int) (Page, error) {
	return c.list(ctx, "/api/marques", nil, page, pageSize)
}

// ListModelsByBrand fetches one page of a brand's models.
func (c *Client) ListModelsByBrand(ctx context.Context, brandID string, page, pageSize int) (Page, error) {
	return c.list(ctx, "/api/modeles", url.Values{"idMarque": {brandID}}, page, pageSize)
}

// ListVersionsByModel fetches one page of a model's versions.
func (c *Client) ListVersionsByModel(ctx context.Context, modelID string, page, pageSize int) (Page, error) {
	return c.list(ctx, "/api/versions", url.Values{"idModele": {modelID}}, page, pageSize)
}

// ListSaleTypes fetches the full sale-type list.
func (c *Client) ListSaleTypes(ctx context.Context) (Page, error) {
	return c.list(ctx, "/api/typesVente", nil, 1, selectorPageSize)
}

func (c *Client) list(ctx context.Context, path string, query url.Values, page, pageSize int) (Page, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))

	payload, err := c.get(ctx, path, query)
	if err != nil {
		return Page{}, err
	}

	items, pagination := NormalizePage(payload, page, pageSize)
	return Page{Items: items, Pagination: pagination}, nil
}

// get performs one GET with retries. Connection failures and 5xx responses
// are retried with exponential backoff; 4xx responses are not.
func (c *Client) get(ctx context.Context, path string, query url.Values) (any, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.InitialInterval = 200 * time.Millisecond
	retryPolicy.MaxInterval = 5 * time.Second

	var payload any
	err := backoff.RetryNotify(
		func() error {
			var attemptErr error
			payload, attemptErr = c.getOnce(ctx, endpoint)
			return attemptErr
		},
		backoff.WithContext(backoff.WithMaxRetries(retryPolicy, c.maxRetries), ctx),
		func(err error, wait time.Duration) {
			logger.Warn(ctx, "legacy api call failed, retrying",
				"endpoint", path, "wait", wait.String(), "error", err)
		},
	)
	if err != nil {
		return nil, apperror.NewUpstream(err).WithDetail("endpoint", path)
	}
	return payload, nil
}

func (c *Client) getOnce(ctx context.Context, endpoint string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return payload, nil
}
