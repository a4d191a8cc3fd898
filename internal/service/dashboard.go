// dashboard.go — сервис сводки дашборда.
// Возвращает детерминированные демонстрационные данные: реальная
// агрегация по заявкам появится после подключения отчётного хранилища.
package service

import (
	"log/slog"

	"github.com/legatora/admin-backend/internal/domain/model"
)

// DashboardService — сервис данных для главной страницы админ-портала.
type DashboardService struct {
	logger *slog.Logger
}

// NewDashboardService создаёт сервис дашборда.
func NewDashboardService(logger *slog.Logger) *DashboardService {
	return &DashboardService{
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// monthLabels — подписи месяцев для графиков активности.
var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Summary возвращает сводку показателей и годовую активность.
func (s *DashboardService) Summary() *model.DashboardSummary {
	counts := []int{25, 60, 10, 150, 2000, 500, 1800, 100, 50, 150, 100, 10}
	activity := make([]model.MonthlyActivity, len(counts))
	for i, c := range counts {
		activity[i] = model.MonthlyActivity{Month: monthLabels[i], Count: c}
	}

	return &model.DashboardSummary{
		TotalPOARequests:   model.DashboardMetric{CurrentMonth: 240, ComparisonPercent: "+5.2% vs last month"},
		PendingApprovals:   model.DashboardMetric{CurrentMonth: 12, ComparisonPercent: "+12.0% vs last month"},
		VerifiedAgents:     model.DashboardMetric{CurrentMonth: 12, ComparisonPercent: "+1.5% vs last month"},
		RejectedKYCIssues:  model.DashboardMetric{CurrentMonth: 5, ComparisonPercent: "-3.1% vs last month"},
		MonthlyActivity:    activity,
		AnnualTotal:        1482,
		Last6MonthIncrease: "+15.8% Last 6 Months",
	}
}

// MonthlyActivityReport — помесячная активность и итог за период.
type MonthlyActivityReport struct {
	Total  int
	Points []model.MonthlyActivity
}

// MonthlyActivity возвращает помесячные точки активности
// за первые months месяцев года (не более 12).
func (s *DashboardService) MonthlyActivity(months int) *MonthlyActivityReport {
	base := []int{20, 40, 110, 60, 180, 250, 200, 150, 90, 60, 70, 120}
	if months < 0 {
		months = 0
	}
	if months > len(base) {
		months = len(base)
	}

	report := &MonthlyActivityReport{Points: make([]model.MonthlyActivity, 0, months)}
	for i := 0; i < months; i++ {
		report.Points = append(report.Points, model.MonthlyActivity{Month: monthLabels[i], Count: base[i]})
		report.Total += base[i]
	}
	return report
}

// QuickActions возвращает список быстрых действий для дашборда.
func (s *DashboardService) QuickActions() []model.QuickAction {
	return []model.QuickAction{
		{ID: "review_urgent", Label: "Review Urgent Approvals", Description: "Review items flagged as urgent"},
		{ID: "assign_flagged", Label: "Assign Flagged Requests", Description: "Assign requests that need manual review"},
		{ID: "view_suspicious", Label: "View Suspicious Accounts", Description: "Open the suspicious accounts queue"},
	}
}
