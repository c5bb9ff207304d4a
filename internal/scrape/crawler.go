package scrape

import (
	"context"
	"fmt"
	"log"

	"github.com/meermanr/whathifi/internal/review"
)

// Crawler wires discovery, extraction and the store together. One fetch
// at a time, no retries: any fetch or parse failure aborts the pass, and
// the next run resumes by skipping URLs already stored.
type Crawler struct {
	discoverer *Discoverer
	extractor  *Extractor
	store      review.Store
	logger     *log.Logger
}

func NewCrawler(discoverer *Discoverer, extractor *Extractor, store review.Store, logger *log.Logger) *Crawler {
	return &Crawler{
		discoverer: discoverer,
		extractor:  extractor,
		store:      store,
		logger:     logger,
	}
}

// Build populates the corpus, but only when it is empty. A populated
// store permanently skips rebuilding.
func (c *Crawler) Build(ctx context.Context) error {
	n, err := c.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	if n > 0 {
		c.logger.Printf("corpus already built: %d records", n)
		return nil
	}
	c.logger.Printf("building corpus")
	return c.Crawl(ctx)
}

// Crawl runs one discovery pass, extracting and inserting every article
// not yet present.
func (c *Crawler) Crawl(ctx context.Context) error {
	return c.discoverer.Discover(ctx, func(articleURL string) error {
		ok, err := c.store.Exists(ctx, articleURL)
		if err != nil {
			return fmt.Errorf("existence check %s: %w", articleURL, err)
		}
		if ok {
			c.logger.Printf("already in corpus: %s", articleURL)
			return nil
		}

		rec, err := c.extractor.Extract(ctx, articleURL)
		if err != nil {
			return err
		}
		if err := c.store.Insert(ctx, rec); err != nil {
			return err
		}
		c.logger.Printf("stored %s (name=%q price=%d rating=%d specs=%d)",
			rec.URL, rec.Name, rec.Price, rec.Rating, len(rec.Spec))
		return nil
	})
}
