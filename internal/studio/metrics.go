package studio

import "github.com/prometheus/client_golang/prometheus"

var (
	sessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "studio_sessions_active",
		Help: "Open theme editor sessions.",
	})
	sessionsReaped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studio_sessions_reaped_total",
		Help: "Editor sessions closed for inactivity.",
	})
	saveResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_saves_total",
			Help: "Theme save attempts by result.",
		},
		[]string{"result"},
	)
	previewFrames = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "studio_preview_frames",
		Help: "Connected preview frames across all sessions.",
	})
)

func init() {
	prometheus.MustRegister(sessionsActive, sessionsReaped, saveResults, previewFrames)
}
