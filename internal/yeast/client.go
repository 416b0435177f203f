package yeast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const requestTimeout = 10 * time.Second

// Client fetches the yeast catalog from the MeadTools API.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	brands     []string
}

// NewClient constructs a Client for the API rooted at baseURL.
func NewClient(logger *slog.Logger, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		brands:     append([]string(nil), Brands...),
	}
}

// FetchAll fetches every brand concurrently and returns the entries sorted by
// name. A brand that fails to load contributes no entries.
func (c *Client) FetchAll(ctx context.Context) ([]Yeast, error) {
	results := make([][]Yeast, len(c.brands))
	g, gctx := errgroup.WithContext(ctx)
	for i, brand := range c.brands {
		i, brand := i, brand
		g.Go(func() error {
			list, err := c.fetchBrand(gctx, brand)
			if err != nil {
				c.logger.Warn("yeast catalog fetch failed", "brand", brand, "error", err)
				return nil
			}
			results[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var flat []Yeast
	for _, list := range results {
		flat = append(flat, list...)
	}
	sort.SliceStable(flat, func(i, j int) bool {
		return strings.ToLower(flat[i].Name) < strings.ToLower(flat[j].Name)
	})
	return flat, nil
}

func (c *Client) fetchBrand(ctx context.Context, brand string) ([]Yeast, error) {
	endpoint := fmt.Sprintf("%s/api/yeasts?brand=%s", c.baseURL, url.QueryEscape(brand))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", endpoint, resp.StatusCode)
	}

	var list []Yeast
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode yeasts for %q: %w", brand, err)
	}
	return list, nil
}
