package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ptm-api/evidence"
)

var (
	eventsAggregatedCounter  *prometheus.CounterVec
	integrityWarningsCounter prometheus.Counter
	statisticsReloadsCounter *prometheus.CounterVec
)

func init() {
	eventsAggregatedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptm_events_aggregated_total",
			Help: "Total number of aggregated PTM events returned, by aggregation path.",
		},
		[]string{"path"},
	)
	integrityWarningsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ptm_data_integrity_warnings_total",
			Help: "Total number of PMIDs scored without a substrate count.",
		},
	)
	statisticsReloadsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptm_statistics_reloads_total",
			Help: "Total number of statistics reloads, by result.",
		},
		[]string{"result"},
	)
	prometheus.MustRegister(eventsAggregatedCounter, integrityWarningsCounter, statisticsReloadsCounter)
}

// reportDiagnostics loggt die nicht-fatalen Befunde eines Aggregationslaufs.
func reportDiagnostics(log *zap.Logger, diag evidence.Diagnostics) {
	if diag.MalformedCounts > 0 {
		log.Debug("Non-numeric substrate counts decoded as 0", zap.Int("segments", diag.MalformedCounts))
	}
	if len(diag.MissingPMIDs) > 0 {
		log.Warn("PMIDs without substrate count, scored as small-scale",
			zap.Strings("pmids", diag.MissingPMIDs))
		integrityWarningsCounter.Add(float64(len(diag.MissingPMIDs)))
	}
}
