package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "globelingual", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "code"})
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "globelingual", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	PaymentIntents = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "globelingual", Name: "payment_intents_total", Help: "Payment intents created at the provider",
	})
	Enrollments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "globelingual", Name: "enrollments_total", Help: "Finalized payments by outcome",
	}, []string{"outcome"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "globelingual", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(Requests, RequestDuration, PaymentIntents, Enrollments, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveRequest(method, route string, code int, d time.Duration) {
	Requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
