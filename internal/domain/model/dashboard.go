package model

// DashboardMetric — сводный показатель дашборда за текущий месяц.
type DashboardMetric struct {
	// CurrentMonth — значение за текущий месяц
	CurrentMonth int
	// ComparisonPercent — сравнение с прошлым месяцем, например "+5.2% vs last month"
	ComparisonPercent string
}

// MonthlyActivity — количество заявок за один месяц (для графика).
type MonthlyActivity struct {
	Month string
	Count int
}

// DashboardSummary — сводка для главной страницы админ-портала.
type DashboardSummary struct {
	TotalPOARequests   DashboardMetric
	PendingApprovals   DashboardMetric
	VerifiedAgents     DashboardMetric
	RejectedKYCIssues  DashboardMetric
	MonthlyActivity    []MonthlyActivity
	AnnualTotal        int
	Last6MonthIncrease string
}

// QuickAction — быстрое действие на дашборде.
type QuickAction struct {
	ID          string
	Label       string
	Description string
}
