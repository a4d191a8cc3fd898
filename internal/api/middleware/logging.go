// logging.go — slog-логирование запросов к API заявок.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// RequestLogger возвращает middleware, пишущий запись на каждый запрос
// к админ-бэкенду. Помимо сырого пути логируется нормализованный маршрут
// (тот же, что идёт в лейблы метрик) и, для операций над конкретной
// заявкой, её идентификатор. Записи с ответом 4xx идут уровнем WARN,
// с 5xx — уровнем ERROR.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			level := slog.LevelInfo
			switch {
			case rec.status >= 500:
				level = slog.LevelError
			case rec.status >= 400:
				level = slog.LevelWarn
			}

			route := normalizePath(r.URL.Path)
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("route", route),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", rec.bytes),
				slog.String("remote_addr", r.RemoteAddr),
			}
			if id := requestIDFromPath(route, r.URL.Path); id != "" {
				attrs = append(attrs, slog.String("request_id", id))
			}

			logger.LogAttrs(r.Context(), level, "Запрос обработан", attrs...)
		})
	}
}

// requestIDFromPath возвращает идентификатор заявки из пути,
// если нормализованный маршрут содержит сегмент {request_id}.
func requestIDFromPath(route, path string) string {
	if !strings.HasSuffix(route, "/{request_id}") {
		return ""
	}
	return path[strings.LastIndexByte(path, '/')+1:]
}
