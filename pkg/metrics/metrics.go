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
	// Registry 应用专属的 Prometheus 注册表
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "semi_portal",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semi_portal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "semi_portal",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms ~ 5s
		},
		[]string{"method", "path"},
	)

	documentUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semi_portal",
			Subsystem: "documents",
			Name:      "uploads_total",
			Help:      "Total number of document uploads.",
		},
		[]string{"status"},
	)

	applicationTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semi_portal",
			Subsystem: "applications",
			Name:      "status_transitions_total",
			Help:      "Total number of application status transitions.",
		},
		[]string{"to_status"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		documentUploads,
		applicationTransitions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler 返回 /metrics 的 HTTP 处理器
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveHTTPStart 记录请求进入
func ObserveHTTPStart() {
	httpInFlight.Inc()
}

// ObserveHTTPEnd 记录请求完成
func ObserveHTTPEnd(method, path string, status int, elapsed time.Duration) {
	httpInFlight.Dec()
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// CountDocumentUpload 记录一次附件上传
func CountDocumentUpload(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	documentUploads.WithLabelValues(status).Inc()
}

// CountApplicationTransition 记录一次申请状态流转
func CountApplicationTransition(toStatus string) {
	applicationTransitions.WithLabelValues(toStatus).Inc()
}
