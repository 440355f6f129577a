package samples

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is a stored sample. It mirrors the samples table and can be turned
// back into its typed variant with Model.
type Record struct {
	ID uuid.UUID `json:"id"`
	Sample
	Kind           Kind      `json:"kind"`
	Species        *string   `json:"species"`
	Classification *string   `json:"classification"`
	Matches        *bool     `json:"matches,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Model rebuilds the typed sample variant for the record's kind.
func (r Record) Model() (Measured, error) {
	m := r.Sample
	switch r.Kind {
	case KindTraining:
		return NewTrainingKnownSample(m.SepalLength, m.SepalWidth, m.PetalLength, m.PetalWidth, deref(r.Species)), nil
	case KindTesting:
		s := NewTestingKnownSample(m.SepalLength, m.SepalWidth, m.PetalLength, m.PetalWidth, deref(r.Species))
		if r.Classification != nil {
			s = s.WithClassification(*r.Classification)
		}
		return s, nil
	case KindUnknown:
		return NewUnknownSample(m.SepalLength, m.SepalWidth, m.PetalLength, m.PetalWidth), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidKind, r.Kind)
}

// String renders the record as its typed variant.
func (r Record) String() string {
	m, err := r.Model()
	if err != nil {
		return r.Sample.String()
	}
	return m.String()
}

// Unknown returns the record as an UnknownSample, or ErrInvalidKind when the
// record holds a different kind.
func (r Record) Unknown() (UnknownSample, error) {
	if r.Kind != KindUnknown {
		return UnknownSample{}, fmt.Errorf("%w: %s sample cannot be classified", ErrInvalidKind, r.Kind)
	}
	m := r.Sample
	return NewUnknownSample(m.SepalLength, m.SepalWidth, m.PetalLength, m.PetalWidth), nil
}

// CreateCommand carries the data needed to store a new sample.
// Species is required for training and testing samples and must be empty
// for unknown samples. DatasetID is set only by dataset imports.
type CreateCommand struct {
	Kind Kind `json:"kind"`
	Sample
	Species   string     `json:"species"`
	DatasetID *uuid.UUID `json:"-"`
}

// Validate checks the kind, label, and measurement rules.
func (c *CreateCommand) Validate() error {
	c.Species = strings.TrimSpace(c.Species)

	if !c.Kind.Valid() {
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidSample, c.Kind)
	}
	if c.Kind.Known() && c.Species == "" {
		return fmt.Errorf("%w: species required for %s samples", ErrInvalidSample, c.Kind)
	}
	if !c.Kind.Known() && c.Species != "" {
		return fmt.Errorf("%w: %s samples carry no species", ErrInvalidSample, c.Kind)
	}
	return c.Sample.Validate()
}

// ClassifyCommand assigns a classifier's label to a testing sample.
type ClassifyCommand struct {
	Classification string `json:"classification"`
}

// Validate trims the classification and requires it to be non-empty.
func (c *ClassifyCommand) Validate() error {
	c.Classification = strings.TrimSpace(c.Classification)
	if c.Classification == "" {
		return fmt.Errorf("%w: classification required", ErrInvalidSample)
	}
	return nil
}

// Summary reports how classified testing samples compare against their species.
type Summary struct {
	Total      int     `json:"total"`
	Classified int     `json:"classified"`
	Matched    int     `json:"matched"`
	Accuracy   float64 `json:"accuracy"`
}

// NewSummary computes Accuracy as Matched / Classified, or zero when
// nothing has been classified.
func NewSummary(total, classified, matched int) Summary {
	s := Summary{
		Total:      total,
		Classified: classified,
		Matched:    matched,
	}
	if classified > 0 {
		s.Accuracy = float64(matched) / float64(classified)
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
