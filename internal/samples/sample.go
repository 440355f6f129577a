// Package samples implements the iris sample domain.
// It defines the measurement record hierarchy (training, testing, unknown,
// and classified samples), their debug rendering, and the data access and
// HTTP surface for storing samples.
package samples

import (
	"fmt"
	"math"
)

// Kind discriminates the concrete sample variants.
type Kind string

const (
	KindTraining   Kind = "training"
	KindTesting    Kind = "testing"
	KindUnknown    Kind = "unknown"
	KindClassified Kind = "classified"
)

// Valid reports whether k is one of the stored sample kinds.
// KindClassified is not stored in the samples table.
func (k Kind) Valid() bool {
	switch k {
	case KindTraining, KindTesting, KindUnknown:
		return true
	}
	return false
}

// Known reports whether samples of this kind carry a species label.
func (k Kind) Known() bool {
	return k == KindTraining || k == KindTesting
}

// Measured is satisfied by every sample variant.
type Measured interface {
	fmt.Stringer
	Measurements() Sample
}

// Labeled is satisfied by variants whose true species is known.
type Labeled interface {
	Measured
	Label() string
}

// Sample is a single flower measurement.
type Sample struct {
	SepalLength float64 `json:"sepal_length"`
	SepalWidth  float64 `json:"sepal_width"`
	PetalLength float64 `json:"petal_length"`
	PetalWidth  float64 `json:"petal_width"`
}

// NewSample returns a Sample holding exactly the given values.
// No validation is performed.
func NewSample(sepalLength, sepalWidth, petalLength, petalWidth float64) Sample {
	return Sample{
		SepalLength: sepalLength,
		SepalWidth:  sepalWidth,
		PetalLength: petalLength,
		PetalWidth:  petalWidth,
	}
}

// Measurements returns the four measurement fields.
func (s Sample) Measurements() Sample {
	return s
}

// Validate rejects measurements that are NaN, infinite, or negative.
// Constructors never call it; it guards values entering the service.
func (s Sample) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"sepal_length", s.SepalLength},
		{"sepal_width", s.SepalWidth},
		{"petal_length", s.PetalLength},
		{"petal_width", s.PetalWidth},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidSample, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidSample, f.name)
		}
	}
	return nil
}

func (s Sample) String() string {
	return s.render("Sample").String()
}

func (s Sample) render(name string) *repr {
	return newRepr(name).
		Float("sepal_length", s.SepalLength).
		Float("sepal_width", s.SepalWidth).
		Float("petal_length", s.PetalLength).
		Float("petal_width", s.PetalWidth)
}

// KnownSample is a sample whose true species is known.
type KnownSample struct {
	Sample
	Species string `json:"species"`
}

// NewKnownSample returns a KnownSample with the given measurements and species.
func NewKnownSample(sepalLength, sepalWidth, petalLength, petalWidth float64, species string) KnownSample {
	return KnownSample{
		Sample:  NewSample(sepalLength, sepalWidth, petalLength, petalWidth),
		Species: species,
	}
}

// Label returns the species.
func (s KnownSample) Label() string {
	return s.Species
}

func (s KnownSample) String() string {
	return s.render("KnownSample").String()
}

func (s KnownSample) render(name string) *repr {
	return s.Sample.render(name).Text("species", s.Species)
}

// TrainingKnownSample is a known sample used for training.
type TrainingKnownSample struct {
	KnownSample
}

// NewTrainingKnownSample returns a training sample.
func NewTrainingKnownSample(sepalLength, sepalWidth, petalLength, petalWidth float64, species string) TrainingKnownSample {
	return TrainingKnownSample{
		KnownSample: NewKnownSample(sepalLength, sepalWidth, petalLength, petalWidth, species),
	}
}

func (s TrainingKnownSample) String() string {
	return s.render("TrainingKnownSample").String()
}

// TestingKnownSample is a known sample used for testing. A classifier may
// assign it a classification, which may or may not match the species.
type TestingKnownSample struct {
	KnownSample
	Classification *string `json:"classification"`
}

// NewTestingKnownSample returns a testing sample with no classification.
func NewTestingKnownSample(sepalLength, sepalWidth, petalLength, petalWidth float64, species string) TestingKnownSample {
	return TestingKnownSample{
		KnownSample: NewKnownSample(sepalLength, sepalWidth, petalLength, petalWidth, species),
	}
}

// WithClassification returns a copy of s carrying the given classification.
// The receiver is left unchanged.
func (s TestingKnownSample) WithClassification(label string) TestingKnownSample {
	s.Classification = &label
	return s
}

// Classified reports the classification and whether one is set.
func (s TestingKnownSample) Classified() (string, bool) {
	if s.Classification == nil {
		return "", false
	}
	return *s.Classification, true
}

// Matches reports whether the classification equals the species.
// An absent classification never matches.
func (s TestingKnownSample) Matches() bool {
	label, ok := s.Classified()
	return ok && label == s.Species
}

func (s TestingKnownSample) String() string {
	return s.render("TestingKnownSample").
		OptionalText("classification", s.Classification).
		String()
}

// UnknownSample is a user-submitted sample that has not been classified.
type UnknownSample struct {
	Sample
}

// NewUnknownSample returns an unlabeled sample.
func NewUnknownSample(sepalLength, sepalWidth, petalLength, petalWidth float64) UnknownSample {
	return UnknownSample{
		Sample: NewSample(sepalLength, sepalWidth, petalLength, petalWidth),
	}
}

func (s UnknownSample) String() string {
	return s.render("UnknownSample").String()
}

// ClassifiedSample pairs a copy of an unknown sample's measurements with
// the classification assigned to it.
type ClassifiedSample struct {
	Sample
	Classification string `json:"classification"`
}

// NewClassifiedSample copies the measurements of sample.
// The result shares nothing with sample.
func NewClassifiedSample(classification string, sample UnknownSample) ClassifiedSample {
	return ClassifiedSample{
		Sample:         sample.Measurements(),
		Classification: classification,
	}
}

func (s ClassifiedSample) String() string {
	return s.render("ClassifiedSample").
		Text("classification", s.Classification).
		String()
}

// KindOf reports the discriminant of a sample variant.
// Plain Sample and KnownSample values have no kind and return "".
func KindOf(m Measured) Kind {
	switch m.(type) {
	case TrainingKnownSample, *TrainingKnownSample:
		return KindTraining
	case TestingKnownSample, *TestingKnownSample:
		return KindTesting
	case UnknownSample, *UnknownSample:
		return KindUnknown
	case ClassifiedSample, *ClassifiedSample:
		return KindClassified
	}
	return ""
}
