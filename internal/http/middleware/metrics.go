package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — счётчики HTTP-слоя для Prometheus.
// Метка route — шаблон маршрута chi, а не сырой путь, чтобы не раздувать кардинальность.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	guard    *prometheus.CounterVec
}

// NewMetrics создаёт и регистрирует метрики в reg.
// Повторная регистрация в том же реестре паникует.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrilearn",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agrilearn",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		guard: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrilearn",
			Subsystem: "guard",
			Name:      "decisions_total",
			Help:      "Route guard outcomes.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.requests, m.duration, m.guard)

	return m
}

// HTTP считает запросы и их длительность.
// Должен стоять внутри chi-роутера: шаблон маршрута известен только после маршрутизации.
func (m *Metrics) HTTP() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			m.requests.WithLabelValues(r.Method, route, strconv.Itoa(sw.Status())).Inc()
			m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

func (m *Metrics) guardOutcome(outcome string) {
	if m == nil {
		return
	}
	m.guard.WithLabelValues(outcome).Inc()
}
