package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/meermanr/whathifi/internal/review"
)

// Memory is an in-process review.Store. It backs dry runs (STORE=memory)
// and tests; the corpus it holds dies with the process.
type Memory struct {
	mu      sync.RWMutex
	records []review.Record
	byURL   map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{
		byURL: make(map[string]struct{}),
	}
}

func (s *Memory) Exists(_ context.Context, url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byURL[url]
	return ok, nil
}

func (s *Memory) Insert(_ context.Context, rec *review.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byURL[rec.URL]; ok {
		return fmt.Errorf("insert %s: %w", rec.URL, review.ErrDuplicate)
	}
	s.byURL[rec.URL] = struct{}{}
	s.records = append(s.records, *rec)
	return nil
}

func (s *Memory) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

func (s *Memory) ScanAll(_ context.Context) ([]review.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]review.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}
