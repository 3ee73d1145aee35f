/* external.go
 * Contains the client used to fetch fixture and result data from the results feed, and return
 * it as domain matches to the higher level functions. Requests are rate limited; the feed
 * provider enforces a small per-minute quota
 */

package external

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"scorecast/api/shared"
)

// feedRequestsPerMinute matches the feed provider's documented quota.
const feedRequestsPerMinute = 30

type Client struct {
	BaseURL string
	APIKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a feed client. The API key may be empty for feeds that
// serve public fixtures.
func NewClient(baseURL string, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required but none was provided")
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Minute/feedRequestsPerMinute), 2),
	}, nil
}

// FetchMatches pulls the full fixture list, including final scores for
// finished matches, and maps it onto the domain model.
func (c *Client) FetchMatches(ctx context.Context) ([]shared.Match, error) {
	body, err := c.get(ctx, c.BaseURL+"/v1/matches")
	if err != nil {
		return nil, fmt.Errorf("error fetching matches from feed: %w", err)
	}

	var rows []feedMatch
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("error decoding feed response: %w", err)
	}

	matches := make([]shared.Match, 0, len(rows))
	for _, row := range rows {
		m, err := row.toMatch()
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// get performs one rate-limited request and returns the (possibly gzipped)
// response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	reader := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error creating gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}
	return io.ReadAll(reader)
}
