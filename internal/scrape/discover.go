package scrape

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gocolly/colly"
)

// pageMarker is the substring whose presence in a listing document means
// a further page exists. Its absence ends the crawl even when the current
// page still yielded articles.
const pageMarker = "?page="

// articleAnchor matches the article-title anchors on a listing page.
const articleAnchor = "h3 > a[href]"

// Discoverer walks the paginated search listing and hands every article
// URL to a visitor callback, in document order. It is single-pass: a
// returned error stops the walk for good.
type Discoverer struct {
	searchURL string
	userAgent string
	logger    *log.Logger
}

func NewDiscoverer(searchURL, userAgent string, logger *log.Logger) *Discoverer {
	return &Discoverer{
		searchURL: searchURL,
		userAgent: userAgent,
		logger:    logger,
	}
}

func (d *Discoverer) Discover(ctx context.Context, each func(articleURL string) error) error {
	for page := 0; ; page++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		pageURL := listingPageURL(d.searchURL, page)
		d.logger.Printf("fetching page=%d url=%s", page, pageURL)

		var articles []string
		hasMore := false

		c := colly.NewCollector()
		c.UserAgent = d.userAgent
		c.OnHTML(articleAnchor, func(h *colly.HTMLElement) {
			articles = append(articles, h.Attr("href"))
		})
		c.OnResponse(func(r *colly.Response) {
			d.logger.Printf("%d bytes", len(r.Body))
			hasMore = strings.Contains(string(r.Body), pageMarker)
		})

		if err := c.Visit(pageURL); err != nil {
			return fmt.Errorf("fetch listing page %d: %w", page, err)
		}

		for _, u := range articles {
			if err := each(u); err != nil {
				return err
			}
		}

		if !hasMore {
			return nil
		}
	}
}

func listingPageURL(searchURL string, page int) string {
	sep := "?"
	if strings.Contains(searchURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d", searchURL, sep, page)
}
