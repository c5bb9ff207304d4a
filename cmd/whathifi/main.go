package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meermanr/whathifi/internal/config"
	"github.com/meermanr/whathifi/internal/review"
	"github.com/meermanr/whathifi/internal/scrape"
	"github.com/meermanr/whathifi/internal/stats"
	"github.com/meermanr/whathifi/internal/store"
)

func main() {
	logger := log.New(os.Stderr, "[whathifi] ", log.LstdFlags|log.Lmsgprefix)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st review.Store
	switch cfg.StoreKind {
	case "memory":
		st = store.NewMemory()
	default:
		ms, err := store.NewMongo(ctx, cfg.MongoURI, cfg.DBName, cfg.Collection, logger)
		if err != nil {
			logger.Fatalf("store: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := ms.Close(ctx); err != nil {
				logger.Printf("error disconnecting mongo: %v", err)
			}
		}()
		st = ms
	}

	fetcher := scrape.NewHTTPFetcher(cfg.UserAgent)
	discoverer := scrape.NewDiscoverer(cfg.SearchURL, cfg.UserAgent, logger)
	extractor := scrape.NewExtractor(fetcher, review.NewInferrer(cfg.RawSpecKeys), logger)
	crawler := scrape.NewCrawler(discoverer, extractor, st, logger)

	if err := crawler.Build(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Print("crawl interrupted")
			return
		}
		logger.Fatalf("build corpus: %v", err)
	}

	if err := report(ctx, os.Stdout, stats.New(st), cfg.BucketWidth); err != nil {
		logger.Fatalf("report: %v", err)
	}
}

func report(ctx context.Context, w io.Writer, agg *stats.Aggregator, bucketWidth int) error {
	min, max, err := agg.PriceRange(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "price range: %d - %d\n\n", min, max)

	rows, err := agg.PriceStatsByRating(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "rating   mean    min    max  stddev")
	for _, r := range rows {
		fmt.Fprintf(w, "%6d  %5.0f  %5d  %5d  %6.0f\n", r.Rating, r.Mean, r.Min, r.Max, r.StdDev)
	}

	keys, err := agg.DistinctSpecKeys(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d distinct spec keys:\n", len(keys))
	for _, key := range keys {
		fmt.Fprintf(w, "  %s\n", key)
	}

	hist, err := agg.RatingPriceHistogram(ctx, bucketWidth)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nrating/price histogram (bucket width %d):\n", bucketWidth)
	for _, h := range hist {
		fmt.Fprintf(w, "  rating=%d price<=%d count=%d\n", h.Rating, h.Bucket, h.Count)
	}
	return nil
}
