package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsCreated counts sessions opened through the API.
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matrix_sessions_created_total",
		Help: "Total matrix sessions created",
	})

	// SessionsExpired counts sessions removed by the idle sweeper.
	SessionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matrix_sessions_expired_total",
		Help: "Total matrix sessions expired after being idle",
	})

	// ActiveSessions tracks live sessions by stage.
	ActiveSessions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "matrix_active_sessions",
		Help: "Live matrix sessions by workflow stage",
	}, []string{"stage"})

	// StageTransitions counts accepted transitions.
	StageTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matrix_stage_transitions_total",
		Help: "Accepted workflow transitions by direction and target stage",
	}, []string{"direction", "to"})

	// AdvanceRejections counts forward requests refused by a stage gate.
	AdvanceRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matrix_advance_rejections_total",
		Help: "Forward transitions rejected by stage",
	}, []string{"stage"})

	// ConstraintRejections counts mutations that were silently not applied.
	ConstraintRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matrix_constraint_rejections_total",
		Help: "Mutations not applied by kind",
	}, []string{"kind"})

	// RankingDuration tracks ranking computation latency.
	RankingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matrix_ranking_duration_seconds",
		Help:    "Ranking computation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs to ~160ms
	})
)

// SetActiveSessions overwrites the per-stage gauge from a fresh count.
func SetActiveSessions(byStage map[string]int) {
	for stage, n := range byStage {
		ActiveSessions.WithLabelValues(stage).Set(float64(n))
	}
}
