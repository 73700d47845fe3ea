package reports

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategorySpend is one top-category entry: how many distinct requests touched
// the category, and the summed actual cost of those requests.
type CategorySpend struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	Name         string          `json:"name"`
	RequestCount int64           `json:"request_count"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
}

// MonthlyTrend is one calendar-month bucket, keyed YYYY-MM.
type MonthlyTrend struct {
	Month        string          `json:"month"`
	RequestCount int64           `json:"request_count"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
}

// Report is the snapshot returned by getReports, computed fresh per call.
type Report struct {
	TotalRequests     int64           `json:"total_requests"`
	PendingRequests   int64           `json:"pending_requests"`
	ApprovedRequests  int64           `json:"approved_requests"`
	RejectedRequests  int64           `json:"rejected_requests"`
	CompletedRequests int64           `json:"completed_requests"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	// AverageProcessingDays is fractional days from creation to receipt,
	// averaged over received requests.
	AverageProcessingDays float64         `json:"average_processing_days"`
	TopCategories         []CategorySpend `json:"top_categories"`
	MonthlyTrends         []MonthlyTrend  `json:"monthly_trends"`
}
