// dashboard.go — обработчики дашборда админ-портала.
// Сводка показателей, помесячная активность, быстрые действия.
package handlers

import (
	"net/http"
	"strconv"

	apierrors "github.com/legatora/admin-backend/internal/api/errors"
	"github.com/legatora/admin-backend/internal/domain/model"
)

// dashboardMetricJSON — сводный показатель за текущий месяц.
type dashboardMetricJSON struct {
	CurrentMonth      int    `json:"current_month"`
	ComparisonPercent string `json:"comparison_percent"`
}

// monthlyActivityJSON — точка графика активности.
type monthlyActivityJSON struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// dashboardJSON — ответ GET /dashboard.
type dashboardJSON struct {
	TotalPOARequests   dashboardMetricJSON   `json:"total_poa_requests"`
	PendingApprovals   dashboardMetricJSON   `json:"pending_approvals"`
	VerifiedAgents     dashboardMetricJSON   `json:"verified_agents"`
	RejectedKYCIssues  dashboardMetricJSON   `json:"rejected_kyc_issues"`
	MonthlyActivity    []monthlyActivityJSON `json:"monthly_activity"`
	AnnualTotal        int                   `json:"annual_total"`
	Last6MonthIncrease string                `json:"last_6_month_increase"`
}

// monthlyActivityReportJSON — ответ GET /dashboard/monthly-activity.
type monthlyActivityReportJSON struct {
	Total  int                   `json:"total"`
	Points []monthlyActivityJSON `json:"points"`
}

// quickActionJSON — быстрое действие дашборда.
type quickActionJSON struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// quickActionsJSON — ответ GET /dashboard/quick-actions.
type quickActionsJSON struct {
	Actions []quickActionJSON `json:"actions"`
}

func toMetricJSON(m model.DashboardMetric) dashboardMetricJSON {
	return dashboardMetricJSON{CurrentMonth: m.CurrentMonth, ComparisonPercent: m.ComparisonPercent}
}

func toActivityJSON(points []model.MonthlyActivity) []monthlyActivityJSON {
	out := make([]monthlyActivityJSON, 0, len(points))
	for _, p := range points {
		out = append(out, monthlyActivityJSON{Month: p.Month, Count: p.Count})
	}
	return out
}

// GetDashboard — GET /dashboard. Сводка показателей и годовая активность.
func (h *APIHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	s := h.dashboard.Summary()

	writeJSON(w, http.StatusOK, dashboardJSON{
		TotalPOARequests:   toMetricJSON(s.TotalPOARequests),
		PendingApprovals:   toMetricJSON(s.PendingApprovals),
		VerifiedAgents:     toMetricJSON(s.VerifiedAgents),
		RejectedKYCIssues:  toMetricJSON(s.RejectedKYCIssues),
		MonthlyActivity:    toActivityJSON(s.MonthlyActivity),
		AnnualTotal:        s.AnnualTotal,
		Last6MonthIncrease: s.Last6MonthIncrease,
	})
}

// GetMonthlyActivity — GET /dashboard/monthly-activity.
// Query-параметр months (1-12, по умолчанию 12).
func (h *APIHandler) GetMonthlyActivity(w http.ResponseWriter, r *http.Request) {
	months := 12
	if raw := r.URL.Query().Get("months"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.ValidationError(w, "months: ожидается целое число")
			return
		}
		months = v
	}

	report := h.dashboard.MonthlyActivity(months)
	writeJSON(w, http.StatusOK, monthlyActivityReportJSON{
		Total:  report.Total,
		Points: toActivityJSON(report.Points),
	})
}

// GetQuickActions — GET /dashboard/quick-actions.
func (h *APIHandler) GetQuickActions(w http.ResponseWriter, r *http.Request) {
	actions := h.dashboard.QuickActions()

	out := quickActionsJSON{Actions: make([]quickActionJSON, 0, len(actions))}
	for _, a := range actions {
		out.Actions = append(out.Actions, quickActionJSON{
			ID: a.ID, Label: a.Label, Description: a.Description,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
