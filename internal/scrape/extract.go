package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/meermanr/whathifi/internal/review"
)

// specsSuffix is appended to an article URL to reach the page carrying
// the specification table.
const specsSuffix = "/specs"

var testedAtRe = regexp.MustCompile(`Tested at \D*(\d+)`)

// Extractor turns one article URL into a review.Record. Every required
// field is located by a single first-match pattern; a missing field is a
// fatal ParseError, never a skip.
type Extractor struct {
	fetcher  Fetcher
	inferrer *review.Inferrer
	logger   *log.Logger
}

func NewExtractor(fetcher Fetcher, inferrer *review.Inferrer, logger *log.Logger) *Extractor {
	return &Extractor{
		fetcher:  fetcher,
		inferrer: inferrer,
		logger:   logger,
	}
}

func (e *Extractor) Extract(ctx context.Context, articleURL string) (*review.Record, error) {
	pageURL := articleURL + specsSuffix
	e.logger.Printf("fetching %s", pageURL)

	body, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	e.logger.Printf("%d bytes", len(body))

	return e.Parse(articleURL, body)
}

// Parse extracts a record from raw detail-document bytes. Split out from
// Extract so document shapes can be tested against fixtures without a
// live fetch.
func (e *Extractor) Parse(articleURL string, body []byte) (*review.Record, error) {
	utf8body, err := decodeToUTF8(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", articleURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", articleURL, err)
	}

	name := strings.TrimSpace(doc.Find("h1 span.item span.fn").First().Text())
	if name == "" {
		return nil, &review.ParseError{URL: articleURL, Field: "name"}
	}

	m := testedAtRe.FindStringSubmatch(doc.Find("div.tested_at_price").First().Text())
	if m == nil {
		return nil, &review.ParseError{URL: articleURL, Field: "price"}
	}
	price, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, &review.ParseError{URL: articleURL, Field: "price"}
	}

	rating, err := strconv.Atoi(strings.TrimSpace(doc.Find("span.value").First().Text()))
	if err != nil {
		return nil, &review.ParseError{URL: articleURL, Field: "rating"}
	}

	spec := make(map[string]review.SpecValue)
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		specName := strings.TrimSpace(cells.Eq(0).Text())
		if specName == "" {
			return
		}
		rawValue := strings.TrimSpace(cells.Eq(1).Text())
		spec[review.EscapeKey(specName)] = e.inferrer.Infer(specName, rawValue)
	})

	return &review.Record{
		URL:    articleURL,
		Name:   name,
		Price:  price,
		Rating: rating,
		Spec:   spec,
	}, nil
}

func decodeToUTF8(data []byte) ([]byte, error) {
	enc, _, _ := charset.DetermineEncoding(data, "")
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if utf8.Valid(data) {
			return data, nil
		}
		return nil, err
	}
	return out, nil
}
