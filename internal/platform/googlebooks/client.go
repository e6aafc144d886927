package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"bookstore/internal/catalog"
)

const DefaultBaseURL = "https://www.googleapis.com/books/v1"

// Client calls the Google Books volumes API. Each method issues exactly one
// outbound request; failures surface to the caller and are never retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

func NewClient(baseURL, userAgent string, rps float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// searchResponse matches the volumes search payload. totalItems counts the
// whole result set, not the returned page.
type searchResponse struct {
	TotalItems int              `json:"totalItems"`
	Items      []catalog.Volume `json:"items"`
}

func (c *Client) Search(ctx context.Context, query string, offset, limit int) (catalog.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	if offset > 0 {
		q.Set("startIndex", strconv.Itoa(offset))
	}
	q.Set("maxResults", strconv.Itoa(limit))

	var res searchResponse
	if err := c.get(ctx, c.baseURL+"/volumes?"+q.Encode(), &res); err != nil {
		return catalog.SearchResult{}, err
	}
	return catalog.SearchResult{Items: res.Items, Total: res.TotalItems}, nil
}

func (c *Client) GetVolume(ctx context.Context, id string) (catalog.Volume, error) {
	var vol catalog.Volume
	err := c.get(ctx, c.baseURL+"/volumes/"+url.PathEscape(id), &vol)
	return vol, err
}

func (c *Client) get(ctx context.Context, rawURL string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return catalog.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
