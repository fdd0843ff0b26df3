package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/ilyaedelshtein/kornit-chat/pkg/config"
)

// Metric definitions
// Ensure that this follows best practices for naming: https://prometheus.io/docs/practices/naming/
var (
	metricNamePrefix = "kornit_chat"

	// LoginAttempts counts login attempts by outcome.
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamePrefix,
			Name:      "login_attempts_total",
			Help:      "Number of login attempts partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	// MessagesPosted counts messages appended to conversations by role.
	MessagesPosted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamePrefix,
			Name:      "messages_total",
			Help:      "Number of messages posted partitioned by role.",
		},
		[]string{"role"},
	)

	// Exports counts result set downloads by format.
	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamePrefix,
			Name:      "exports_total",
			Help:      "Number of result set exports partitioned by format.",
		},
		[]string{"format"},
	)
)

// Register registers all application metrics with the default registry.
func Register() {
	for _, c := range []prometheus.Collector{LoginAttempts, MessagesPosted, Exports} {
		if err := prometheus.Register(c); err != nil {
			log.Error().Err(err).Msg("Error registering metric")
		}
	}
}

// AddBuildInfoMetric adds a static metric with the build information
func AddBuildInfoMetric() {
	err := prometheus.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: metricNamePrefix,
			Name:      "build_info",
			Help:      "A metric with a constant '1' value labeled by version, branch, commit, build date, and goversion.",
			ConstLabels: prometheus.Labels{
				"version":   config.Version,
				"branch":    config.Branch,
				"commit":    config.Commit,
				"goversion": config.GoVersion,
			},
		},
		func() float64 { return 1 },
	))
	if err != nil {
		log.Error().Err(err).Msg("Error registering build info metric")
	}
}
