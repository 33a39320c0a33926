package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned by the cleaner and extremes stages when the
// dataset they receive has zero rows.
var ErrEmptyInput = errors.New("dataset is empty")

// NoMatchingRecordsError is returned by the ingest stage when no row
// survives the indoor filter. Observed lists the distinct out/in values
// seen in the source, in first-seen order, for diagnosability.
type NoMatchingRecordsError struct {
	Observed []string
}

func (e *NoMatchingRecordsError) Error() string {
	return fmt.Sprintf("no records left after out/in filter; observed values: [%s]",
		strings.Join(e.Observed, ", "))
}

// MissingFactError is returned when a downstream stage requests a forward
// fact that no upstream stage has set.
type MissingFactError struct {
	Key string
}

func (e *MissingFactError) Error() string {
	return fmt.Sprintf("missing forward fact %q", e.Key)
}
