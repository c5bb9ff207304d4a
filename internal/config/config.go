package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultDBName      = "whathifi"
	DefaultCollection  = "av_receivers"
	DefaultSearchURL   = "http://www.whathifi.com/search/apachesolr_search/?filters=tid%3A379%20type%3Ahcmproduct&solrsort=is_field_star_rating%20desc&retain-filters=1"
	DefaultBucketWidth = 500
	DefaultUserAgent   = "whathifi-crawler/1.0 (+https://github.com/meermanr/whathifi)"
)

// DefaultRawSpecKeys are the spec keys whose values are never type-inferred.
var DefaultRawSpecKeys = []string{"THX", "Video scaling"}

type Config struct {
	MongoURI    string
	DBName      string
	Collection  string
	SearchURL   string
	BucketWidth int
	RawSpecKeys []string
	StoreKind   string // "mongo" or "memory"
	UserAgent   string
}

func Load() (Config, error) {
	// load .env if present but don't error if not present
	_ = godotenv.Load()

	storeKind := os.Getenv("STORE")
	if storeKind == "" {
		storeKind = "mongo"
	}
	if storeKind != "mongo" && storeKind != "memory" {
		return Config{}, fmt.Errorf("STORE must be mongo or memory, got %q", storeKind)
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if storeKind == "mongo" && mongoURI == "" {
		return Config{}, errors.New("MONGODB_URI not set")
	}

	db := os.Getenv("MONGO_DB_NAME")
	if db == "" {
		db = DefaultDBName
	}

	coll := os.Getenv("MONGO_COLLECTION")
	if coll == "" {
		coll = DefaultCollection
	}

	searchURL := os.Getenv("SEARCH_URL")
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}

	bucketWidth := DefaultBucketWidth
	if raw := os.Getenv("BUCKET_WIDTH"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("BUCKET_WIDTH must be a positive integer, got %q", raw)
		}
		bucketWidth = n
	}

	rawKeys := DefaultRawSpecKeys
	if raw := os.Getenv("RAW_SPEC_KEYS"); raw != "" {
		rawKeys = nil
		for _, k := range strings.Split(raw, ",") {
			if t := strings.TrimSpace(k); t != "" {
				rawKeys = append(rawKeys, t)
			}
		}
	}

	ua := os.Getenv("USER_AGENT")
	if ua == "" {
		ua = DefaultUserAgent
	}

	return Config{
		MongoURI:    mongoURI,
		DBName:      db,
		Collection:  coll,
		SearchURL:   searchURL,
		BucketWidth: bucketWidth,
		RawSpecKeys: rawKeys,
		StoreKind:   storeKind,
		UserAgent:   ua,
	}, nil
}
