package metacritic

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
	"github.com/preston-bernstein/metascore-lookup-service/internal/providers"
)

// Config controls how the metacritic client reaches the listing pages.
type Config struct {
	BaseURL    string
	Platform   string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches catalog listing pages from metacritic and extracts raw entries.
type Client struct {
	baseURL    string
	base       *url.URL
	platform   string
	userAgent  string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a metacritic client with the provided configuration.
func NewClient(cfg Config) *Client {
	baseURL := normalizeBaseURL(cfg.BaseURL)
	base, err := url.Parse(baseURL + "/")
	if err != nil {
		base = nil
	}
	return &Client{
		baseURL:    baseURL,
		base:       base,
		platform:   orDefault(cfg.Platform, defaultPlatform),
		userAgent:  orDefault(cfg.UserAgent, defaultUserAgent),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// Name identifies the upstream in logs and metrics.
func (c *Client) Name() string { return providerName }

// FetchPage retrieves one listing page. A page with no products yields an
// empty slice, which callers treat as the end of the listing.
func (c *Client) FetchPage(ctx context.Context, page int) ([]domaingames.RawEntry, error) {
	if page < 0 {
		return nil, fmt.Errorf("%s: negative page %d", providerName, page)
	}

	req, err := c.buildRequest(ctx, page)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyLimit))
		return nil, c.statusError(req.URL.String(), resp)
	}

	entries, err := parsePage(resp.Body, c.base)
	if err != nil {
		return nil, fmt.Errorf("%s: parse page %d: %w", providerName, page, err)
	}
	return entries, nil
}

func (c *Client) buildRequest(ctx context.Context, page int) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(page), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	return req, nil
}

func (c *Client) pageURL(page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return c.baseURL + fmt.Sprintf(listingPathFormat, url.PathEscape(c.platform)) + "?" + q.Encode()
}

func (c *Client) statusError(pageURL string, resp *http.Response) error {
	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    providerName + " rate limited",
		}
	}
	return &providers.StatusError{
		Provider:   providerName,
		URL:        pageURL,
		StatusCode: resp.StatusCode,
	}
}
