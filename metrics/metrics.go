package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var EvaluationsSubmittedCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "peerscore_evaluations_submitted_total",
		Help: "Number of evaluations accepted, first submissions and resubmissions alike",
	},
)

var ReportCacheHitsCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "peerscore_report_cache_hits_total",
		Help: "Number of aggregate report requests served from the memo",
	},
)

var ReportBuildsCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "peerscore_report_builds_total",
		Help: "Number of aggregate report builds from raw evaluations",
	},
)

var AuditPublishErrorsCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "peerscore_audit_publish_errors_total",
		Help: "Number of audit entries that could not be published to the feed",
	},
)

var ReportBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "peerscore_report_build_duration_s",
	Help: "Duration of one aggregate report build",
	Buckets: []float64{
		0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10,
	},
})
