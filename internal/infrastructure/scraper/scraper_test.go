package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricegrid/backend/internal/domain"
)

const listingHTML = `
<html><body>
  <div class="item-product">
    <h3 class="name">Frozen Beef Pie 500g</h3>
    <div class="price">R 89.99</div>
    <span class="size">500g</span>
    <a class="link" href="/p/beef-pie-500g">view</a>
  </div>
  <div class="item-product">
    <h3 class="name">Hake Fillets 800g</h3>
    <div class="price">R 119.99</div>
    <a class="link" href="/p/hake-fillets"></a>
  </div>
  <div class="item-product">
    <!-- promo tile without a product name -->
    <div class="price">R 10.00</div>
  </div>
  <a class="next" href="/frozen?page=2">next</a>
</body></html>`

func testRetailer() RetailerConfig {
	return RetailerConfig{
		Name:        "Shoprite",
		CategoryURL: "https://shop.example/frozen",
		Category:    "Frozen Foods",
		Enabled:     true,
		Selectors: Selectors{
			ProductCard: "div.item-product",
			ProductLink: "a.link",
			NextButton:  "a.next",
			ProductName: "h3.name",
			Price:       "div.price",
			Size:        "span.size",
		},
	}
}

func TestExtractRecords(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	require.NoError(t, err)

	client := NewClient(10, 1, time.Second, "test")
	s := NewScraper(client, testRetailer(), 1, 0, false)

	records := s.ExtractRecords(doc, "https://shop.example/frozen")
	require.Len(t, records, 2, "the nameless promo tile must be dropped")

	first := records[0]
	assert.Equal(t, "Frozen Beef Pie 500g", first[domain.FieldProductName])
	assert.Equal(t, "R 89.99", first[domain.FieldPrice])
	assert.Equal(t, "500g", first[domain.FieldSize])
	assert.Equal(t, "Shoprite", first[domain.FieldRetailer])
	assert.Equal(t, "Frozen Foods", first[domain.FieldCategory])
	assert.Equal(t, "https://shop.example/p/beef-pie-500g", first[domain.FieldProductURL])

	// Size selector found nothing for the second card: absent, not empty.
	_, present := records[1].Field(domain.FieldSize)
	assert.False(t, present)
}

func TestScraperRun(t *testing.T) {
	t.Run("follows pagination up to max pages", func(t *testing.T) {
		var pagesServed int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pagesServed++
			fmt.Fprintf(w, `
<html><body>
  <div class="item-product">
    <h3 class="name">Product page %d</h3>
    <div class="price">R 10.00</div>
  </div>
  <a class="next" href="/frozen?page=%d">next</a>
</body></html>`, pagesServed, pagesServed+1)
		}))
		defer server.Close()

		retailer := testRetailer()
		retailer.CategoryURL = server.URL + "/frozen"

		client := NewClient(100, 10, time.Second, "test")
		s := NewScraper(client, retailer, 2, 0, false)

		records, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, 2, pagesServed)
	})

	t.Run("max items truncates the walk", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, listingHTML)
		}))
		defer server.Close()

		retailer := testRetailer()
		retailer.CategoryURL = server.URL + "/frozen"

		client := NewClient(100, 10, time.Second, "test")
		s := NewScraper(client, retailer, 5, 1, false)

		records, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("failing first page is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		retailer := testRetailer()
		retailer.CategoryURL = server.URL + "/frozen"

		client := NewClient(100, 10, time.Second, "test")
		s := NewScraper(client, retailer, 1, 0, false)

		_, err := s.Run(context.Background())
		assert.ErrorIs(t, err, domain.ErrFetchFailed)
	})
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
	}
}
