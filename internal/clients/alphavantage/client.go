// Package alphavantage provides a client for the Alpha Vantage API
package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	DefaultBaseURL   = "https://www.alphavantage.co"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the QuoteClient interface against the Alpha Vantage
// GLOBAL_QUOTE endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a provider-level error
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Alpha Vantage API error: %s (status: %d)", e.Message, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return common.ErrUnavailable
}

// globalQuotePayload mirrors the provider's numbered-field response shape.
// Every field arrives as a string; missing fields decode to "".
type globalQuotePayload struct {
	Symbol        string `json:"01. symbol"`
	Open          string `json:"02. open"`
	High          string `json:"03. high"`
	Low           string `json:"04. low"`
	Price         string `json:"05. price"`
	Volume        string `json:"06. volume"`
	TradingDay    string `json:"07. latest trading day"`
	PreviousClose string `json:"08. previous close"`
	Change        string `json:"09. change"`
	ChangePct     string `json:"10. change percent"`
}

type globalQuoteResponse struct {
	GlobalQuote *globalQuotePayload `json:"Global Quote"`
}

// GetQuote fetches a live quote for one symbol. No retry, no caching.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("symbol", symbol).Msg("Alpha Vantage quote request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request for '%s' failed: %w: %w", symbol, common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var payload globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode quote for '%s': %w", symbol, common.ErrUnavailable)
	}

	// The provider signals an unknown symbol with a missing or empty
	// "Global Quote" object rather than an error status.
	if payload.GlobalQuote == nil || payload.GlobalQuote.Symbol == "" {
		return nil, fmt.Errorf("no quote for '%s': %w", symbol, common.ErrNoData)
	}

	return normalizeQuote(symbol, payload.GlobalQuote), nil
}

// normalizeQuote converts the provider's string fields into a canonical
// Quote. Malformed or missing numeric fields degrade to zero values; a
// missing percent-change is treated as 0 by contract.
func normalizeQuote(symbol string, gq *globalQuotePayload) *models.Quote {
	volume, _ := strconv.ParseInt(strings.TrimSpace(gq.Volume), 10, 64)
	return &models.Quote{
		Symbol:        strings.ToUpper(symbol),
		Price:         parseFloat(gq.Price),
		PreviousClose: parseFloat(gq.PreviousClose),
		Change:        parseFloat(gq.Change),
		ChangePct:     parsePercent(gq.ChangePct),
		Volume:        volume,
		TradingDay:    gq.TradingDay,
		FetchedAt:     time.Now(),
	}
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// parsePercent parses values like "1.2345%" (the trailing percent sign is
// optional in practice).
func parsePercent(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	return parseFloat(s)
}

// IsNoData reports whether err is the provider's no-quote-for-symbol case.
func IsNoData(err error) bool {
	return errors.Is(err, common.ErrNoData)
}

// Ensure Client implements QuoteClient
var _ interfaces.QuoteClient = (*Client)(nil)
