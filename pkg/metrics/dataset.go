package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Loads of the dataset file, by result (success|error)
	DatasetLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engagement_dataset_loads_total",
		Help: "Number of dataset reads from the source file",
	}, []string{"result"})

	DatasetLoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "engagement_dataset_load_duration_seconds",
		Help:    "Duration of dataset reads including feature derivation",
		Buckets: prometheus.DefBuckets,
	})

	// Calls served from the in-memory table without touching the file
	DatasetCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "engagement_dataset_cache_hits_total",
		Help: "Number of dataset requests served from cache",
	})

	DatasetInvalidations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "engagement_dataset_invalidations_total",
		Help: "Number of times the cached dataset was dropped",
	})

	DatasetRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "engagement_dataset_rows",
		Help: "Rows in the currently cached dataset",
	})
)

func Init() {
	prometheus.MustRegister(
		DatasetLoadsTotal,
		DatasetLoadDuration,
		DatasetCacheHits,
		DatasetInvalidations,
		DatasetRows,
	)
}
