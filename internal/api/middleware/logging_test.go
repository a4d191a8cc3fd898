package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// logRecord — поля записи, которые проверяют тесты.
type logRecord struct {
	Level     string `json:"level"`
	Msg       string `json:"msg"`
	Method    string `json:"method"`
	Route     string `json:"route"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Bytes     int64  `json:"bytes"`
	RequestID string `json:"request_id"`
}

func captureLog(t *testing.T, handler http.HandlerFunc, method, path string) logRecord {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	mw := RequestLogger(logger)(handler)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	var entry logRecord
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("декодирование записи лога: %v\nзапись: %s", err, buf.String())
	}
	return entry
}

func TestRequestLoggerRouteAndRequestID(t *testing.T) {
	entry := captureLog(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}, http.MethodGet, "/poa-requests/POA-A1B2C3D4")

	if entry.Msg != "Запрос обработан" {
		t.Errorf("msg = %q", entry.Msg)
	}
	if entry.Route != "/poa-requests/{request_id}" {
		t.Errorf("route = %q, ожидался /poa-requests/{request_id}", entry.Route)
	}
	if entry.Path != "/poa-requests/POA-A1B2C3D4" {
		t.Errorf("path = %q", entry.Path)
	}
	if entry.RequestID != "POA-A1B2C3D4" {
		t.Errorf("request_id = %q, ожидался POA-A1B2C3D4", entry.RequestID)
	}
	if entry.Bytes != int64(len(`{"message":"ok"}`)) {
		t.Errorf("bytes = %d", entry.Bytes)
	}
	if entry.Level != "INFO" {
		t.Errorf("level = %q, ожидался INFO", entry.Level)
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"успех", http.StatusOK, "INFO"},
		{"не найдено", http.StatusNotFound, "WARN"},
		{"внутренняя ошибка", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := captureLog(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}, http.MethodGet, "/poa-requests")

			if entry.Status != tt.status {
				t.Errorf("status = %d, ожидалось %d", entry.Status, tt.status)
			}
			if entry.Level != tt.level {
				t.Errorf("level = %q, ожидался %q", entry.Level, tt.level)
			}
		})
	}
}

func TestRequestLoggerNoRequestIDOnCollections(t *testing.T) {
	entry := captureLog(t, func(w http.ResponseWriter, r *http.Request) {}, http.MethodGet, "/external-doc-verification")

	if entry.Route != "/external-doc-verification" {
		t.Errorf("route = %q", entry.Route)
	}
	if entry.RequestID != "" {
		t.Errorf("request_id = %q, атрибут не ожидался", entry.RequestID)
	}
}
