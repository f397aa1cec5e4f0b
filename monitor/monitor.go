// monitor/monitor.go
package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	OnlineSessions prometheus.Gauge
	ActiveGames    prometheus.Gauge
	ActionsTotal   *prometheus.CounterVec
	ActionLatency  prometheus.Histogram
	Bankruptcies   prometheus.Counter
	GamesFinished  prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		OnlineSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_sessions",
			Help:      "Number of connected websocket sessions",
		}),
		ActiveGames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_games",
			Help:      "Number of games held in memory",
		}),
		ActionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Total number of game actions applied",
		}, []string{"action"}),
		ActionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_latency_seconds",
			Help:      "Time to apply and persist one action",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		Bankruptcies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bankruptcies_total",
			Help:      "Total number of players gone bankrupt",
		}),
		GamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Total number of games that reached a winner",
		}),
	}
}

// Monitor owns a private registry so several instances can coexist in one
// process.
type Monitor struct {
	metrics   *Metrics
	registry  *prometheus.Registry
	startTime time.Time
}

func NewMonitor(namespace string) *Monitor {
	m := &Monitor{
		metrics:   NewMetrics(namespace),
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
	}

	m.registry.MustRegister(
		m.metrics.OnlineSessions,
		m.metrics.ActiveGames,
		m.metrics.ActionsTotal,
		m.metrics.ActionLatency,
		m.metrics.Bankruptcies,
		m.metrics.GamesFinished,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Seconds since the server started",
		}, func() float64 {
			return time.Since(m.startTime).Seconds()
		}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Monitor) IncOnlineSessions() {
	m.metrics.OnlineSessions.Inc()
}

func (m *Monitor) DecOnlineSessions() {
	m.metrics.OnlineSessions.Dec()
}

func (m *Monitor) SetActiveGames(count int) {
	m.metrics.ActiveGames.Set(float64(count))
}

func (m *Monitor) ObserveAction(action string, duration time.Duration) {
	m.metrics.ActionsTotal.WithLabelValues(action).Inc()
	m.metrics.ActionLatency.Observe(duration.Seconds())
}

func (m *Monitor) AddBankruptcies(n int) {
	if n > 0 {
		m.metrics.Bankruptcies.Add(float64(n))
	}
}

func (m *Monitor) IncGamesFinished() {
	m.metrics.GamesFinished.Inc()
}
