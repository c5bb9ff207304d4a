package review

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicate is returned by Store.Insert when a record with the same
	// URL is already present. The crawler checks Exists first, so hitting
	// this indicates a race or a logic defect and is surfaced as-is.
	ErrDuplicate = errors.New("record already present for url")

	// ErrEmptyCorpus is returned by aggregation operations when the store
	// holds no records.
	ErrEmptyCorpus = errors.New("corpus is empty")
)

// ParseError reports a required field that is absent or malformed in a
// detail document. No partial record is stored when it occurs.
type ParseError struct {
	URL   string
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: missing or malformed %s", e.URL, e.Field)
}
