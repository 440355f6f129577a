// Package classified stores the results of classifying unknown samples.
// Each result copies the measurements of the unknown sample it was built
// from; no link back to the source sample is kept.
package classified

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/iris/internal/samples"
)

// Result is a stored classified sample.
type Result struct {
	ID uuid.UUID `json:"id"`
	samples.ClassifiedSample
	ClassifiedAt time.Time `json:"classified_at"`
}

// CreateCommand carries the label assigned to an unknown sample.
type CreateCommand struct {
	Classification string `json:"classification"`
}

// Validate requires a non-empty classification.
func (c *CreateCommand) Validate() error {
	c.Classification = strings.TrimSpace(c.Classification)
	if c.Classification == "" {
		return ErrInvalidClassification
	}
	return nil
}
