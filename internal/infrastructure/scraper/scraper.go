package scraper

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pricegrid/backend/internal/domain"
)

// Scraper walks one retailer's category pages and extracts raw product
// records. Field cleanup happens downstream; the scraper only lifts text
// off the page and leaves unconfigured or empty fields absent.
type Scraper struct {
	client   *Client
	retailer RetailerConfig
	maxPages int
	maxItems int
	debug    bool
}

// NewScraper creates a scraper for one retailer. maxItems 0 means no limit.
func NewScraper(client *Client, retailer RetailerConfig, maxPages, maxItems int, debug bool) *Scraper {
	if maxPages < 1 {
		maxPages = 1
	}
	return &Scraper{
		client:   client,
		retailer: retailer,
		maxPages: maxPages,
		maxItems: maxItems,
		debug:    debug,
	}
}

// Run collects records starting at the category URL, following the
// next-page link up to the page limit. A page that fails to fetch ends the
// walk with whatever was collected so far, unless nothing at all came back.
func (s *Scraper) Run(ctx context.Context) ([]domain.RawProductRecord, error) {
	var records []domain.RawProductRecord
	pageURL := s.retailer.CategoryURL

	for page := 1; page <= s.maxPages && pageURL != ""; page++ {
		doc, err := s.client.GetDocument(ctx, pageURL)
		if err != nil {
			if len(records) > 0 {
				log.Printf("[SCRAPE] %s: stopping at page %d: %v", s.retailer.Name, page, err)
				break
			}
			return nil, err
		}

		pageRecords := s.ExtractRecords(doc, pageURL)
		records = append(records, pageRecords...)

		if s.debug {
			log.Printf("[SCRAPE] %s page %d: %d products", s.retailer.Name, page, len(pageRecords))
		}

		if s.maxItems > 0 && len(records) >= s.maxItems {
			records = records[:s.maxItems]
			break
		}

		pageURL = s.nextPageURL(doc, pageURL)
	}

	return records, nil
}

// ExtractRecords pulls one record per product card from a parsed listing
// page. Only configured selectors are consulted; a selector that finds no
// text leaves its field absent rather than empty.
func (s *Scraper) ExtractRecords(doc *goquery.Document, pageURL string) []domain.RawProductRecord {
	sel := s.retailer.Selectors
	var records []domain.RawProductRecord

	doc.Find(sel.ProductCard).Each(func(_ int, card *goquery.Selection) {
		record := domain.RawProductRecord{
			domain.FieldRetailer: s.retailer.Name,
		}
		if s.retailer.Category != "" {
			record[domain.FieldCategory] = s.retailer.Category
		}

		setText(record, domain.FieldProductName, card, sel.ProductName)
		setText(record, domain.FieldPrice, card, sel.Price)
		setText(record, domain.FieldPricePerUnit, card, sel.PricePerUnit)
		setText(record, domain.FieldBrand, card, sel.Brand)
		setText(record, domain.FieldSize, card, sel.Size)
		setText(record, domain.FieldBarcode, card, sel.Barcode)

		if sel.ProductLink != "" {
			if href, ok := card.Find(sel.ProductLink).First().Attr("href"); ok {
				record[domain.FieldProductURL] = resolveURL(pageURL, href)
			}
		}

		// A card without a name is page furniture, not a product.
		if _, ok := record.Field(domain.FieldProductName); ok {
			records = append(records, record)
		}
	})

	return records
}

// nextPageURL resolves the configured next-button link, or "" when the walk
// is done.
func (s *Scraper) nextPageURL(doc *goquery.Document, pageURL string) string {
	if s.retailer.Selectors.NextButton == "" {
		return ""
	}
	href, ok := doc.Find(s.retailer.Selectors.NextButton).First().Attr("href")
	if !ok || href == "" {
		return ""
	}
	return resolveURL(pageURL, href)
}

func setText(record domain.RawProductRecord, field string, card *goquery.Selection, selector string) {
	if selector == "" {
		return
	}
	text := strings.TrimSpace(card.Find(selector).First().Text())
	if text != "" {
		record[field] = text
	}
}

// resolveURL makes relative hrefs absolute against the page they came from.
func resolveURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
