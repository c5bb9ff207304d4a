package stats

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/meermanr/whathifi/internal/review"
)

// DefaultBucketWidth is the histogram price resolution, in currency units,
// used when no width is configured.
const DefaultBucketWidth = 500

// RatingStats is the price distribution of one rating group.
type RatingStats struct {
	Rating int
	Mean   float64
	Min    int
	Max    int
	// StdDev is the population standard deviation: the summed squared
	// residuals from the mean are divided by the group size N, not N-1.
	StdDev float64
}

// PriceBucket is one cell of the rating x price-bucket histogram. Derived
// on demand, never persisted.
type PriceBucket struct {
	Rating int
	Bucket int
	Count  int
}

// Aggregator computes read-only statistics over a full scan of the
// corpus. Every operation takes its own snapshot at call time and fails
// with ErrEmptyCorpus when there are no records.
type Aggregator struct {
	store review.Store
}

func New(store review.Store) *Aggregator {
	return &Aggregator{store: store}
}

func (a *Aggregator) snapshot(ctx context.Context) ([]review.Record, error) {
	records, err := a.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	if len(records) == 0 {
		return nil, review.ErrEmptyCorpus
	}
	return records, nil
}

// PriceRange returns the lowest and highest price in the corpus.
func (a *Aggregator) PriceRange(ctx context.Context) (int, int, error) {
	records, err := a.snapshot(ctx)
	if err != nil {
		return 0, 0, err
	}

	min, max := records[0].Price, records[0].Price
	for _, rec := range records[1:] {
		if rec.Price < min {
			min = rec.Price
		}
		if rec.Price > max {
			max = rec.Price
		}
	}
	return min, max, nil
}

// PriceStatsByRating groups prices by rating and returns mean, min, max
// and population standard deviation per group, ordered by rating.
func (a *Aggregator) PriceStatsByRating(ctx context.Context) ([]RatingStats, error) {
	records, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	groups := make(map[int][]int)
	for _, rec := range records {
		groups[rec.Rating] = append(groups[rec.Rating], rec.Price)
	}

	out := make([]RatingStats, 0, len(groups))
	for rating, prices := range groups {
		sum := 0
		min, max := prices[0], prices[0]
		for _, p := range prices {
			sum += p
			if p < min {
				min = p
			}
			if p > max {
				max = p
			}
		}
		mean := float64(sum) / float64(len(prices))

		residuals := 0.0
		for _, p := range prices {
			d := float64(p) - mean
			residuals += d * d
		}
		stddev := math.Sqrt(residuals / float64(len(prices)))

		out = append(out, RatingStats{
			Rating: rating,
			Mean:   mean,
			Min:    min,
			Max:    max,
			StdDev: stddev,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Rating < out[j].Rating })
	return out, nil
}

// DistinctSpecKeys returns every spec key observed across the corpus,
// unescaped back to its literal form and sorted.
func (a *Aggregator) DistinctSpecKeys(ctx context.Context) ([]string, error) {
	records, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, rec := range records {
		for key := range rec.Spec {
			seen[review.UnescapeKey(key)] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// RatingPriceHistogram counts records grouped by (rating, price bucket),
// where a price lands in the bucket at the next multiple of bucketWidth
// at or above it. A non-positive width selects DefaultBucketWidth. The
// result is ordered by rating, then bucket.
func (a *Aggregator) RatingPriceHistogram(ctx context.Context, bucketWidth int) ([]PriceBucket, error) {
	if bucketWidth <= 0 {
		bucketWidth = DefaultBucketWidth
	}

	records, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	type cell struct{ rating, bucket int }
	counts := make(map[cell]int)
	for _, rec := range records {
		bucket := (rec.Price + bucketWidth - 1) / bucketWidth * bucketWidth
		counts[cell{rec.Rating, bucket}]++
	}

	out := make([]PriceBucket, 0, len(counts))
	for c, n := range counts {
		out = append(out, PriceBucket{Rating: c.rating, Bucket: c.bucket, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating < out[j].Rating
		}
		return out[i].Bucket < out[j].Bucket
	})
	return out, nil
}
