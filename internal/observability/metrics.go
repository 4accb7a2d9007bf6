package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SessionsStarted counts training sessions created, per scenario.
	SessionsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shushrusha_sessions_started_total",
			Help: "Number of training sessions started.",
		},
		[]string{"scenario"},
	)

	// TurnsEvaluated counts evaluated turns, per scenario.
	TurnsEvaluated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shushrusha_turns_evaluated_total",
			Help: "Number of turns evaluated against a checklist.",
		},
		[]string{"scenario"},
	)

	// ReportsGenerated counts completed session reports.
	ReportsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shushrusha_reports_generated_total",
			Help: "Number of end-of-session reports generated.",
		},
	)
)

func init() {
	prometheus.MustRegister(SessionsStarted, TurnsEvaluated, ReportsGenerated)
}

// Handler exposes the registered metrics in Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
