package prediction

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sourceCache = "cache"
	sourceModel = "model"
)

var (
	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iris_predictions_total",
			Help: "Total number of predictions served, by class label and source",
		},
		[]string{"class", "source"},
	)

	ledgerFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "iris_ledger_failures_total",
			Help: "Total number of prediction ledger writes that failed and were discarded",
		},
	)
)
