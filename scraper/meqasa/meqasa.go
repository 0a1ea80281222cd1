package meqasa

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"ghana-rentals/config"
	"ghana-rentals/models"
	"ghana-rentals/utils"
)

const baseURL = "https://www.meqasa.com"

// Scraper discovers meqasa search URLs for a query and extracts raw listing
// records from the result pages. All fetch and parse failures are absorbed
// here: Extract never returns an error, only however many records survived.
type Scraper struct {
	logger  *utils.Logger
	fetcher Fetcher
	retry   *utils.RetryConfig
	seen    *utils.URLSet
}

// New creates a ready-to-use meqasa Scraper. The fetch strategy is chosen
// from the config: plain HTTP by default, headless Chrome when DynamicFetch
// is set.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	timeout := time.Duration(cfg.FetchTimeoutSec) * time.Second

	var fetcher Fetcher = NewHTTPFetcher(timeout)
	if cfg.DynamicFetch {
		fetcher = NewBrowserFetcher(timeout, cfg.ChromeBin)
		logger.Info("[meqasa] Dynamic fetch enabled — pages will be browser-rendered")
	}

	return &Scraper{
		logger:  logger,
		fetcher: fetcher,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		seen: utils.NewURLSet(),
	}
}

// DiscoverSources builds the search-result URLs to scrape for the given
// entities. The slug layout mirrors meqasa's own search URLs:
// /<type>-for-rent-in-<location>[?bed=N]. Deterministic for a given query.
func (s *Scraper) DiscoverSources(entities models.QueryEntities) []string {
	slug := "properties"
	switch entities.PropertyType {
	case models.PropertyTypeApartment:
		slug = "apartments"
	case models.PropertyTypeHouse:
		slug = "houses"
	case models.PropertyTypeTownhouse:
		slug = "townhouses"
	}

	parts := []string{slug, "for-rent"}
	if entities.Location != nil {
		parts = append(parts, "in-"+strings.ReplaceAll(strings.ToLower(*entities.Location), " ", "-"))
	} else {
		parts = append(parts, "in-ghana")
	}

	target := baseURL + "/" + strings.Join(parts, "-")
	if entities.Bedrooms != nil {
		target += fmt.Sprintf("?bed=%d", *entities.Bedrooms)
	}

	s.logger.Info("[meqasa] Discovered source URL: %s", target)
	return []string{target}
}

// Extract fetches one search-result page and parses its listing cards into
// raw records. A failed fetch or unparseable page yields an empty slice.
func (s *Scraper) Extract(ctx context.Context, pageURL string) []*models.RawRecord {
	var body []byte
	err := s.retry.Do(ctx, "fetch "+pageURL, func() error {
		var ferr error
		body, ferr = s.fetcher.Fetch(ctx, pageURL)
		return ferr
	})
	if err != nil {
		s.logger.Error("[meqasa] Giving up on %s: %v", pageURL, err)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.logger.Error("[meqasa] Could not parse HTML from %s: %v", pageURL, err)
		return nil
	}

	records := s.extractListings(doc, pageURL)
	s.logger.Info("[meqasa] Extracted %d raw listings from %s", len(records), pageURL)
	return records
}

// extractListings walks the listing cards of a parsed search page. Cards
// that carry neither a price nor a description are skipped, as are cards
// whose listing URL was already seen in this run.
func (s *Scraper) extractListings(doc *goquery.Document, pageURL string) []*models.RawRecord {
	cards := doc.Find("article.mqs-prop-card")
	if cards.Length() == 0 {
		cards = doc.Find("div.mqs-featured-prop-inner-wrap, div.mqs-prop-card-premium")
	}
	s.logger.Debug("[meqasa] Found %d listing card elements on %s", cards.Length(), pageURL)

	records := make([]*models.RawRecord, 0, cards.Length())
	cards.Each(func(i int, card *goquery.Selection) {
		rec := &models.RawRecord{
			ID:        uuid.NewString(),
			SourceURL: pageURL,
			ScrapedAt: time.Now().UTC(),
		}

		rec.PriceRaw = strings.TrimSpace(card.Find("span.h3").First().Text())
		rec.LocationRaw = strings.TrimSpace(card.Find("address").First().Text())
		rec.PropertyTypeRaw = strings.TrimSpace(card.Find("div.prop-type-card").First().Text())

		card.Find("div.fur-are span[title]").Each(func(_ int, span *goquery.Selection) {
			title, _ := span.Attr("title")
			switch {
			case strings.Contains(strings.ToLower(title), "bedroom"):
				rec.BedroomsRaw = strings.TrimSpace(span.Text())
			case strings.Contains(strings.ToLower(title), "bathroom"):
				rec.BathroomsRaw = strings.TrimSpace(span.Text())
			}
		})

		titleLink := card.Find("a.mqs-prop-dt-wrapper, a.prop-title-link").First()
		if titleLink.Length() > 0 {
			if title, ok := titleLink.Attr("title"); ok && strings.TrimSpace(title) != "" {
				rec.DescriptionRaw = strings.TrimSpace(title)
			} else {
				rec.DescriptionRaw = strings.TrimSpace(titleLink.Text())
			}
			if href, ok := titleLink.Attr("href"); ok {
				rec.ListingURL = resolveURL(pageURL, href)
			}
		} else {
			header := card.Find("h2, h3, h4").FilterFunction(func(_ int, h *goquery.Selection) bool {
				class, _ := h.Attr("class")
				return strings.Contains(class, "prop-title") || strings.Contains(class, "card-title")
			}).First()
			if header.Length() > 0 {
				rec.DescriptionRaw = strings.TrimSpace(header.Text())
				if href, ok := header.Find("a").First().Attr("href"); ok {
					rec.ListingURL = resolveURL(pageURL, href)
				} else if href, ok := header.Closest("a").Attr("href"); ok {
					rec.ListingURL = resolveURL(pageURL, href)
				}
			}
		}

		if rec.PriceRaw == "" && rec.DescriptionRaw == "" {
			s.logger.Debug("[meqasa] Card %d skipped — no price or description", i)
			return
		}
		if rec.ListingURL != "" && !s.seen.Add(rec.ListingURL) {
			s.logger.Debug("[meqasa] Duplicate listing URL skipped: %s", rec.ListingURL)
			return
		}

		records = append(records, rec)
	})

	return records
}

// resolveURL makes card hrefs absolute against the page they came from.
func resolveURL(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
