package googlebooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"context"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://www.googleapis.com/books/v1"

	// Google Books tolerates modest anonymous traffic; stay well under it
	rateLimit = 2
	rateBurst = 4

	requestTimeout = 10 * time.Second
)

// ErrUpstream marks any non-success outcome from the external search API.
// Failures are non-retriable within a single ingestion call.
var ErrUpstream = errors.New("book search upstream error")

// Client queries the Google Books volumes API with rate limiting and a
// conservative request timeout.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a Google Books API client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Search returns at most limit volumes matching the query term.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Volume, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", limit))

	fullURL := c.baseURL + "/volumes?" + params.Encode()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "BookHub/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrUpstream, resp.StatusCode, string(bodyBytes))
	}

	var response VolumeListResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrUpstream, err)
	}

	// the API may return more than asked for; enforce the cap here
	if len(response.Items) > limit {
		response.Items = response.Items[:limit]
	}

	return response.Items, nil
}
