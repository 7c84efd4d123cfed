// Package social queries the social-search service (spec §4.G item 1, §6).
package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
)

// Post is the first matching post for a mint, or the zero value if none
// was found.
type Post struct {
	ID   string
	Text string
	URL  string
}

// tweet and twitterResponse mirror the upstream search API's response
// shape, ported from original_source/src/x.rs.
type tweet struct {
	ID   string `json:"tweet_id"`
	Text string `json:"text"`
}

type twitterResponse struct {
	Tweets     []tweet `json:"tweets"`
	NextCursor string  `json:"next_cursor_str"`
}

type errorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Client searches the social-search service, retrying transient failures
// immediately (no backoff) up to three times before falling back to an
// empty post — never aborting the caller (spec §5).
type Client struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
}

// New builds a Client against baseURL using apiKey for authentication.
func New(baseURL, apiKey string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 0
	rc.RetryWaitMax = 0
	rc.Logger = log.New(io.Discard, "", 0)
	return &Client{baseURL: baseURL, apiKey: apiKey, http: rc}
}

// SearchFirstPost returns the first post mentioning query (typically a
// mint address), or the zero Post if none was found or the request
// ultimately failed after retries.
func (c *Client) SearchFirstPost(ctx context.Context, query string) Post {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return Post{}
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("cursor", "")
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return Post{}
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Post{}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Post{}
	}

	var twResp twitterResponse
	if err := json.Unmarshal(body, &twResp); err == nil && len(twResp.Tweets) > 0 {
		first := twResp.Tweets[0]
		return Post{
			ID:   first.ID,
			Text: first.Text,
			URL:  fmt.Sprintf("https://x.com/i/status/%s", first.ID),
		}
	}

	var errResp errorResponse
	_ = json.Unmarshal(body, &errResp)
	return Post{}
}
