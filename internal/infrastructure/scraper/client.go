package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/pricegrid/backend/internal/domain"
)

const maxFetchAttempts = 3

// Client fetches retailer pages with a shared rate limit so the collect
// stage never hammers a site, regardless of how many retailers it walks.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a page-fetching client. requestsPerSecond bounds the
// sustained fetch rate; burst allows short bursts above it.
func NewClient(requestsPerSecond float64, burst int, timeout time.Duration, userAgent string) *Client {
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// SetDebug enables request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// GetDocument fetches a page and parses it. Transient failures are retried
// with exponential backoff up to maxFetchAttempts.
func (c *Client) GetDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		doc, err := c.fetchOnce(ctx, pageURL)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if c.debug {
			log.Printf("[SCRAPE] attempt %d/%d for %s failed: %v", attempt, maxFetchAttempts, pageURL, err)
		}

		if attempt < maxFetchAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(exponentialBackoff(attempt)):
			}
		}
	}

	return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailed, pageURL, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return doc, nil
}

// exponentialBackoff returns the wait before the next retry attempt.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}
