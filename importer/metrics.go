package importer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "finboard",
		Name:      "imports_total",
		Help:      "Quarter imports from the market-data API, by outcome.",
	}, []string{"outcome"})

	importDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "finboard",
		Name:      "import_duration_seconds",
		Help:      "Duration of the quarter import pipeline.",
		Buckets:   prometheus.DefBuckets,
	})
)
