// Package metrics defines the Prometheus collectors recorded by the iris domains.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	samplesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iris_samples_created_total",
		Help: "Samples stored by kind",
	}, []string{"kind"}) // kind=training|testing|unknown

	testingClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iris_testing_classified_total",
		Help: "Classifications recorded on testing samples by outcome",
	}, []string{"outcome"}) // outcome=match|mismatch

	classifiedSamples = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iris_classified_samples_total",
		Help: "Classified samples created from unknown samples",
	})

	datasetRowsImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iris_dataset_rows_imported_total",
		Help: "Dataset rows imported as samples by purpose",
	}, []string{"purpose"})
)

// RecordSampleCreated counts one stored sample of the given kind.
func RecordSampleCreated(kind string) {
	samplesCreated.WithLabelValues(kind).Inc()
}

// RecordTestingClassified counts a testing classification by whether it matched the species.
func RecordTestingClassified(matched bool) {
	outcome := "mismatch"
	if matched {
		outcome = "match"
	}
	testingClassified.WithLabelValues(outcome).Inc()
}

// RecordClassifiedSample counts one classified sample.
func RecordClassifiedSample() {
	classifiedSamples.Inc()
}

// RecordDatasetRows counts rows imported from a dataset.
func RecordDatasetRows(purpose string, rows int) {
	datasetRowsImported.WithLabelValues(purpose).Add(float64(rows))
}
