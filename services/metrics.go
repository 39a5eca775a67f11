package services

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barbershop",
		Name:      "backend_requests_total",
		Help:      "Requests sent to the barbershop backend by endpoint and status code.",
	}, []string{"endpoint", "method", "code"})

	backendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "barbershop",
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of backend requests by endpoint.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method"})
)

func observe(endpoint, method string, status int, started time.Time) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	backendRequests.WithLabelValues(endpoint, method, code).Inc()
	backendDuration.WithLabelValues(endpoint, method).Observe(time.Since(started).Seconds())
}

// statusText keeps the label set bounded when the status is unknown.
func statusText(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
