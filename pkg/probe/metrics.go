package probe

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics contains the metric collectors of the probe runner
type metrics struct {
	up       *prometheus.GaugeVec
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// newMetrics initializes the metric collectors of the probe runner
func newMetrics() metrics {
	return metrics{
		up: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "barry_smoke_probe_up",
				Help: "1 if the last run of the probe passed, 0 otherwise",
			},
			[]string{"probe"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "barry_smoke_probe_runs_total",
				Help: "Probe runs by verdict",
			},
			[]string{"probe", "verdict"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "barry_smoke_probe_duration_seconds",
				Help: "Duration of probe requests",
			},
			[]string{"probe"},
		),
	}
}

// record updates the collectors with the outcome of one probe run.
// Skipped probes do not touch the up gauge, since nothing was measured.
func (m metrics) record(res Result) {
	m.runs.WithLabelValues(res.Name, string(res.Verdict)).Inc()
	if res.Verdict == VerdictSkip {
		return
	}

	state := 0.0
	if res.Verdict == VerdictPass {
		state = 1.0
	}
	m.up.WithLabelValues(res.Name).Set(state)
	m.duration.WithLabelValues(res.Name).Observe(res.Duration.Seconds())
}

func (m metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.up, m.runs, m.duration}
}
