// handler.go — основной обработчик HTTP API админ-бэкенда.
// Объединяет доменные обработчики и делегирует запросы в сервисный слой.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/legatora/admin-backend/internal/service"
)

// dateLayout — формат дат заявок в API (дата без времени).
const dateLayout = "2006-01-02"

// APIHandler — основной обработчик API админ-бэкенда.
type APIHandler struct {
	health       *HealthHandler
	poaRequests  *service.POARequestService
	externalDocs *service.ExternalDocService
	dashboard    *service.DashboardService
	logger       *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	poaRequests *service.POARequestService,
	externalDocs *service.ExternalDocService,
	dashboard *service.DashboardService,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:       health,
		poaRequests:  poaRequests,
		externalDocs: externalDocs,
		dashboard:    dashboard,
		logger:       logger.With(slog.String("component", "api_handler")),
	}
}

// HealthLive — liveness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики (делегируется в HealthHandler).
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// Root — приветственный ответ корневого пути.
func (h *APIHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the LEGATORA Admin API.",
	})
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// dateString форматирует дату заявки для API.
func dateString(t time.Time) string {
	return t.Format(dateLayout)
}

// optionalDateString форматирует опциональную дату, nil остаётся nil.
func optionalDateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// queryParam возвращает указатель на значение query-параметра
// или nil, если параметр не передан.
func queryParam(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	v := r.URL.Query().Get(name)
	return &v
}
