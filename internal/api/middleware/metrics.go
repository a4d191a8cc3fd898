// metrics.go — Prometheus HTTP метрики админ-бэкенда.
// Регистрирует метрики: ab_http_requests_total, ab_http_request_duration_seconds.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_http_requests_total",
			Help: "Общее количество HTTP-запросов к админ-бэкенду",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ab_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к админ-бэкенду в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Записывает количество запросов и длительность для каждого endpoint.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Нормализуем путь для лейблов метрик
			// (заменяем идентификатор заявки на {request_id} для предотвращения кардинальности)
			normalizedPath := normalizePath(r.URL.Path)

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rec.status)

			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(duration)
		})
	}
}

// normalizePath заменяет идентификатор заявки в пути на {request_id}
// для предотвращения взрывного роста кардинальности метрик.
// /poa-requests/POA-A1B2C3D4 → /poa-requests/{request_id}
func normalizePath(path string) string {
	// Статические пути — возвращаем как есть
	switch path {
	case "/", "/health/live", "/health/ready", "/metrics",
		"/dashboard", "/dashboard/monthly-activity", "/dashboard/quick-actions",
		"/poa-requests", "/external-doc-verification":
		return path
	}

	// Динамические пути с идентификатором заявки
	prefixes := []struct {
		prefix string
		result string
	}{
		{"/poa-requests/", "/poa-requests/{request_id}"},
		{"/external-doc-verification/", "/external-doc-verification/{request_id}"},
	}

	for _, p := range prefixes {
		if strings.HasPrefix(path, p.prefix) && len(path) > len(p.prefix) {
			return p.result
		}
	}

	return path
}
