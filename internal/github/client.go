package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devconnect/api/pkg/logger"
	"github.com/devconnect/api/pkg/metrics"
)

// ErrNoProfile is returned when GitHub reports no such user (or any non-200).
var ErrNoProfile = errors.New("no github profile found")

const defaultBaseURL = "https://api.github.com"

// Client proxies the GitHub repository-listing API. Responses are cached in
// Redis (best effort) so repeated profile views don't burn API quota.
type Client struct {
	http     *http.Client
	baseURL  string
	token    string
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewClient creates a proxy client. cache may be nil to disable caching;
// token may be empty for anonymous (lower-quota) access.
func NewClient(token string, cache *redis.Client, cacheTTL time.Duration) *Client {
	return &Client{
		http:     &http.Client{Timeout: 10 * time.Second},
		baseURL:  defaultBaseURL,
		token:    token,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// SetBaseURL overrides the API endpoint (tests).
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// Repos returns the user's five most recently created public repositories as
// raw JSON, ready to relay to the caller.
func (c *Client) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	key := "github:repos:" + username
	if c.cache != nil {
		if b, err := c.cache.Get(ctx, key).Bytes(); err == nil {
			metrics.GithubCache.WithLabelValues("hit").Inc()
			return json.RawMessage(b), nil
		}
		metrics.GithubCache.WithLabelValues("miss").Inc()
	}

	url := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrNoProfile
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, c.cacheTTL).Err(); err != nil {
			logger.Warnf("github cache write failed for %s: %v", username, err)
		}
	}
	return json.RawMessage(body), nil
}
