// Package lookup calls the external number-lookup API. The upstream is a
// best-effort third-party endpoint, so calls run behind retries and a
// circuit breaker.
package lookup

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

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// ErrNoRecord means the upstream answered but knows nothing about the number.
var ErrNoRecord = errors.New("no record for number")

const (
	defaultTimeout = 15 * time.Second
	maxRetries     = 3
	retryDelay     = 2 * time.Second
)

type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
	baseURL    string
	apiKey     string
	logger     zerolog.Logger
	sleepFn    func(time.Duration)
}

type Option func(*Client)

// WithSleepFunc overrides the inter-retry sleep. Intended for tests.
func WithSleepFunc(fn func(time.Duration)) Option {
	return func(c *Client) {
		c.sleepFn = fn
	}
}

func NewClient(baseURL, apiKey string, httpClient *http.Client, logger zerolog.Logger, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "number-lookup",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	c := &Client{
		httpClient: httpClient,
		breaker:    cb,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
		sleepFn:    time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Lookup fetches the detail payload for a mobile number. The upstream may
// answer with a JSON array of records or plain text; both are returned as
// display-ready text.
func (c *Client) Lookup(ctx context.Context, number string) (string, error) {
	return c.breaker.Execute(func() (string, error) {
		var lastErr error
		for attempt := 1; attempt <= maxRetries; attempt++ {
			result, err := c.fetch(ctx, number)
			if err == nil || errors.Is(err, ErrNoRecord) || ctx.Err() != nil {
				return result, err
			}

			lastErr = err
			c.logger.Warn().Err(err).Int("attempt", attempt).Msg("lookup request failed")
			if attempt < maxRetries {
				c.sleepFn(retryDelay)
			}
		}

		return "", fmt.Errorf("lookup failed after %d attempts: %w", maxRetries, lastErr)
	})
}

func (c *Client) fetch(ctx context.Context, number string) (string, error) {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("mobile", number)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read lookup response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup returned HTTP %d", resp.StatusCode)
	}

	return parsePayload(body)
}

// parsePayload formats a JSON array of records into display text; anything
// that is not JSON comes back verbatim.
func parsePayload(body []byte) (string, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", ErrNoRecord
	}

	var records []map[string]any
	if err := json.Unmarshal(body, &records); err != nil {
		return trimmed, nil
	}
	if len(records) == 0 {
		return "", ErrNoRecord
	}

	var b strings.Builder
	for i, record := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, key := range []string{"name", "father_name", "address", "mobile", "alt_mobile", "circle", "id_number", "email"} {
			value, ok := record[key]
			if !ok {
				continue
			}
			text, ok := value.(string)
			if !ok || strings.TrimSpace(text) == "" {
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", fieldLabel(key), strings.TrimSpace(text))
		}
	}

	if b.Len() == 0 {
		return "", ErrNoRecord
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func fieldLabel(key string) string {
	switch key {
	case "name":
		return "Name"
	case "father_name":
		return "Father's Name"
	case "address":
		return "Address"
	case "mobile":
		return "Mobile"
	case "alt_mobile":
		return "Alt Mobile"
	case "circle":
		return "Circle"
	case "id_number":
		return "ID Number"
	case "email":
		return "Email"
	default:
		return key
	}
}
