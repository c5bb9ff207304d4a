package review

import "context"

// Record is one reviewed product. The URL is the corpus-wide unique key;
// records are inserted once and never updated or deleted.
type Record struct {
	URL    string               `bson:"url"`
	Name   string               `bson:"name"`
	Price  int                  `bson:"price"`
	Rating int                  `bson:"rating"`
	Spec   map[string]SpecValue `bson:"spec"`
}

// Store is the document collection the crawler appends to and the
// aggregator scans. Implementations live in internal/store.
type Store interface {
	Exists(ctx context.Context, url string) (bool, error)
	Insert(ctx context.Context, rec *Record) error
	Count(ctx context.Context) (int64, error)
	ScanAll(ctx context.Context) ([]Record, error)
}
