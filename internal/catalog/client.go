package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shelf/internal/domain"
	"shelf/internal/metrics"
)

// DefaultBaseURL is the public DummyJSON-compatible listing API
const DefaultBaseURL = "https://dummyjson.com"

// Query is a single page request
type Query struct {
	Text   string
	Limit  int
	Offset int
}

// ProductAPI searches the remote catalogue
type ProductAPI interface {
	Search(ctx context.Context, q Query) (domain.Page, error)
}

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// HTTPStatus returns the response status code
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// Client talks to a DummyJSON-style /products/search endpoint
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent: "shelf",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search fetches one page of products matching q
func (c *Client) Search(ctx context.Context, q Query) (domain.Page, error) {
	start := time.Now()
	page, err := c.search(ctx, q)
	metrics.APIRequestDuration.Observe(time.Since(start).Seconds())
	metrics.APIRequests.WithLabelValues(outcome(err)).Inc()

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Warn("Product search failed", "query", q.Text, "offset", q.Offset, "error", err)
		}
		return domain.Page{}, err
	}

	slog.Debug("Product search completed",
		"query", q.Text,
		"offset", q.Offset,
		"items", len(page.Items),
		"total", page.Total,
		"elapsed", time.Since(start))
	return page, nil
}

func (c *Client) search(ctx context.Context, q Query) (domain.Page, error) {
	endpoint := c.searchURL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		// Surface cancellation unchanged so callers can tell it apart.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Page{}, ctxErr
		}
		return domain.Page{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Page{}, statusError(resp)
	}

	var page domain.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return domain.Page{}, fmt.Errorf("failed to decode products: %w", err)
	}
	return page, nil
}

func (c *Client) searchURL(q Query) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/products/search"

	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("skip", strconv.Itoa(q.Offset))
	u.RawQuery = params.Encode()
	return u.String()
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Message string `json:"message"`
	}
	se := &StatusError{StatusCode: resp.StatusCode}
	if json.Unmarshal(body, &payload) == nil {
		se.Message = payload.Message
	}
	return se
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var se *StatusError
	switch {
	case errors.As(err, &se):
		return "http_error"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "network_error"
	}
}
