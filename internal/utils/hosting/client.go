package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"
)

// RateLimitError is returned when the server responds with HTTP 429.
type RateLimitError struct {
	Message        string
	ResetTimestamp time.Time // from X-RateLimit-Reset, if present
}

func (r *RateLimitError) Error() string {
	if !r.ResetTimestamp.IsZero() {
		return fmt.Sprintf("rate limit exceeded; retry after %s", r.ResetTimestamp.Format(time.RFC3339))
	}
	return fmt.Sprintf("rate limit exceeded: %s", r.Message)
}

// ConflictError is returned for 409 conflicts (the domain is attached to
// another project or account at the provider).
type ConflictError struct {
	Message string
}

func (c *ConflictError) Error() string {
	return fmt.Sprintf("conflict (409): %s", c.Message)
}

// NotFoundError is returned for 404s (unknown domain at the provider).
type NotFoundError struct {
	Message string
}

func (n *NotFoundError) Error() string {
	return fmt.Sprintf("not found (404): %s", n.Message)
}

// Client manages communication with the domain-hosting provider's API.
type Client struct {
	BaseURL      *url.URL
	APIKey       string
	HTTPClient   *http.Client
	MaxRetries   int           // how many times to retry on 429
	RetryInitial time.Duration // initial backoff
}

const defaultBaseURL = "https://api.hostdeck.dev/v1"

// NewClient initializes a hosting API client with the given API key.
// If rawBaseURL is empty it defaults to the production endpoint.
func NewClient(apiKey, rawBaseURL string, maxRetries int, retryInitial time.Duration) (*Client, error) {
	base := rawBaseURL
	if base == "" {
		base = defaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if retryInitial <= 0 {
		retryInitial = 1 * time.Second
	}

	return &Client{
		BaseURL:      parsed,
		APIKey:       apiKey,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		MaxRetries:   maxRetries,
		RetryInitial: retryInitial,
	}, nil
}

// doRequest issues one API call, decoding the JSON response into out
// (when non-nil). 429 responses are retried with exponential backoff up
// to MaxRetries; 404 and 409 map to typed errors.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, out any) error {
	u := *c.BaseURL
	u.Path = path.Join(u.Path, endpoint)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	backoff := c.RetryInitial
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return err
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return readErr
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if out != nil && len(respBody) > 0 {
				if err := json.Unmarshal(respBody, out); err != nil {
					return fmt.Errorf("decoding response: %w", err)
				}
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests:
			rlErr := &RateLimitError{Message: string(respBody)}
			if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
				if secs, convErr := strconv.ParseInt(reset, 10, 64); convErr == nil {
					rlErr.ResetTimestamp = time.Unix(secs, 0)
				}
			}
			if attempt >= c.MaxRetries {
				return rlErr
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2

		case resp.StatusCode == http.StatusNotFound:
			return &NotFoundError{Message: string(respBody)}

		case resp.StatusCode == http.StatusConflict:
			return &ConflictError{Message: string(respBody)}

		default:
			return fmt.Errorf("hosting API %s %s failed: status %d – %s",
				method, endpoint, resp.StatusCode, respBody)
		}
	}
}
