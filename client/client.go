package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/citypulse/connect"
)

const (
	defaultTimeout = 3 * time.Second
	userAgent      = "connect-feed-engine/1.0"
)

// Client talks to the external catalog service over HTTP. Venue metadata
// is cached in-process; the catalog owns the data, we only reference it.
type Client struct {
	client  *http.Client
	cache   *cache.Cache
	baseURL string
}

func New(baseURL string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:  &httpClient,
		cache:   cache.New(10*time.Minute, 15*time.Minute),
		baseURL: baseURL,
	}
	httpClient.Transport = c
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

func (c *Client) get(ctx context.Context, path string, response any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errCatalogNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %v", err)
	}

	if err := json.Unmarshal(body, response); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}

var errCatalogNotFound = fmt.Errorf("catalog: not found")

// GetVenue resolves one venue's display metadata. Returns nil, nil when
// the catalog has no entry for the id.
func (c *Client) GetVenue(ctx context.Context, venueID, venueType string) (*connect.VenueMetadata, error) {
	cacheKey := venueType + "/" + venueID
	if cached, found := c.cache.Get(cacheKey); found {
		meta := cached.(connect.VenueMetadata)
		return &meta, nil
	}

	path := fmt.Sprintf("/api/v1/venues/%s/%s", url.PathEscape(venueType), url.PathEscape(venueID))

	var meta connect.VenueMetadata
	err := c.get(ctx, path, &meta)
	if err == errCatalogNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve venue %s: %v", venueID, err)
	}

	c.cache.Set(cacheKey, meta, cache.DefaultExpiration)
	return &meta, nil
}

// SearchListings queries the catalog's listing search, used to pad the
// featured channel with highly rated venues.
func (c *Client) SearchListings(ctx context.Context, region string, minRating float64, limit int) ([]connect.CatalogListing, error) {
	query := url.Values{}
	if region != "" {
		query.Set("region", region)
	}
	query.Set("minRating", strconv.FormatFloat(minRating, 'f', 1, 64))
	query.Set("limit", strconv.Itoa(limit))

	var listings []connect.CatalogListing
	err := c.get(ctx, "/api/v1/listings?"+query.Encode(), &listings)
	if err == errCatalogNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %v", err)
	}
	return listings, nil
}
