package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "autorfp",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "autorfp",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	aiCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "autorfp",
		Name:      "ai_calls_total",
		Help:      "Generative AI calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	aiDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "autorfp",
		Name:      "ai_call_duration_seconds",
		Help:      "Generative AI call latency by operation.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 120},
	}, []string{"operation"})

	rateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "autorfp",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter by rule.",
	}, []string{"rule"})

	mailsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "autorfp",
		Name:      "mails_total",
		Help:      "Outbound mails by template and outcome.",
	}, []string{"template", "outcome"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		aiCalls,
		aiDuration,
		rateLimited,
		mailsSent,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func ObserveAICall(operation string, elapsed time.Duration, err error) {
	aiCalls.WithLabelValues(operation, outcome(err)).Inc()
	aiDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func IncRateLimited(rule string) {
	rateLimited.WithLabelValues(rule).Inc()
}

func ObserveMail(template string, err error) {
	mailsSent.WithLabelValues(template, outcome(err)).Inc()
}
