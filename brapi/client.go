// Package brapi fetches quarterly statements from a brapi.dev compatible
// market-data API and maps them onto financial_indicators records.
package brapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public brapi endpoint
const DefaultBaseURL = "https://brapi.dev/api"

// Modules requested on every quote
var Modules = []string{
	"incomeStatementHistory",
	"balanceSheetHistoryQuarterly",
	"cashflowHistoryQuarterly",
	"financialData",
	"defaultKeyStatistics",
}

// ErrorKind classifies a failed fetch
type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindStatus    ErrorKind = "status"
	KindPayload   ErrorKind = "payload"
)

// FetchError describes a failed quote request
type FetchError struct {
	Kind       ErrorKind
	Ticker     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("quote %s: API returned status %d", e.Ticker, e.StatusCode)
	case KindPayload:
		return fmt.Sprintf("quote %s: invalid payload: %v", e.Ticker, e.Err)
	default:
		return fmt.Sprintf("quote %s: request failed: %v", e.Ticker, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client is a market-data API client
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a new client. A zero timeout leaves the request bounded only by its context.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// quoteURL builds GET {base}/quote/{ticker}?modules=...&token=...
func (c *Client) quoteURL(ticker string) string {
	q := url.Values{}
	q.Set("modules", strings.Join(Modules, ","))
	if c.token != "" {
		q.Set("token", c.token)
	}
	return fmt.Sprintf("%s/quote/%s?%s", c.baseURL, url.PathEscape(ticker), q.Encode())
}

// FetchQuote requests the quarterly statements of a ticker
func (c *Client) FetchQuote(ctx context.Context, ticker string) (*QuoteResponse, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.quoteURL(ticker), nil)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, Ticker: ticker, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		// *url.Error carries the request URL, token included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &FetchError{Kind: KindTransport, Ticker: ticker, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().
		Str("ticker", ticker).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("quote fetched")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			Kind:       KindStatus,
			Ticker:     ticker,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(body))),
		}
	}

	var quote QuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, &FetchError{Kind: KindPayload, Ticker: ticker, Err: err}
	}
	return &quote, nil
}
