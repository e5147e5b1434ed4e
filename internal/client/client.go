package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/simonvc/ratedash/internal/fx"
)

// DefaultBaseURL is where the rates API listens unless told otherwise.
const DefaultBaseURL = "http://localhost:8000"

// Client talks to the rates API. Requests carry no timeout of their own; the
// caller's context bounds them.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

type Option func(*Client)

// WithLogger sets where failed fetches are reported.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCurrencies returns the currency catalog of the latest rate set:
// the set's base first, then every quoted code.
func (c *Client) FetchCurrencies(ctx context.Context) ([]string, error) {
	rs, err := c.LatestRates(ctx, "")
	if err != nil {
		c.log.Error("Error fetching currencies", "err", err)
		return nil, err
	}
	base := rs.Base
	if base == "" {
		base = fx.DefaultBase
	}
	return fx.Catalog(base, rs.Rates), nil
}

// FetchCurrencyCodesNames returns the code -> display name mapping verbatim.
func (c *Client) FetchCurrencyCodesNames(ctx context.Context) (map[string]string, error) {
	var result map[string]string
	if err := c.get(ctx, "/api/currencies/codes_and_names/", nil, &result); err != nil {
		c.log.Error("Error fetching currency names", "err", err)
		return nil, err
	}
	return result, nil
}

// LatestRates fetches the newest rate set quoted against base. An empty base
// leaves the choice to the server.
func (c *Client) LatestRates(ctx context.Context, base string) (*fx.RateSet, error) {
	return c.rateSet(ctx, "/api/exchange-rates/latest/", base)
}

// PreviousRates fetches the rate set of the day before the newest one.
func (c *Client) PreviousRates(ctx context.Context, base string) (*fx.RateSet, error) {
	return c.rateSet(ctx, "/api/exchange-rates/previous/", base)
}

func (c *Client) rateSet(ctx context.Context, path, base string) (*fx.RateSet, error) {
	params := url.Values{}
	if base != "" {
		params.Set("base", base)
	}
	var result fx.RateSet
	if err := c.get(ctx, path, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Convert asks the server to convert amount (a decimal string) from one
// currency to another.
func (c *Client) Convert(ctx context.Context, amount, from, to string) (*fx.Conversion, error) {
	params := url.Values{}
	params.Set("amount", amount)
	params.Set("from", from)
	params.Set("to", to)
	var result fx.Conversion
	if err := c.get(ctx, "/api/exchange-rates/convert/", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Historical fetches the rate history of from/to over period.
func (c *Client) Historical(ctx context.Context, from, to string, period fx.Period) (*fx.Series, error) {
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)
	params.Set("period", string(period))
	var result fx.Series
	if err := c.get(ctx, "/api/exchange-rates/historical/", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/currencies/codes_and_names/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.doRequest(req, result)
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) doRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
