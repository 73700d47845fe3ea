package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub-backend/pkg/enums"
)

// statusCount is one GROUP BY status row.
type statusCount struct {
	Status enums.RequestStatus
	Count  int64
}

// processingWindow is the creation/receipt pair of one received request.
type processingWindow struct {
	CreatedAt    time.Time
	ReceivedDate *time.Time
}

// categoryRow links one request line to its category, carrying the parent
// request's id and actual cost so the service can aggregate per category with
// distinct-request semantics.
type categoryRow struct {
	RequestID    uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	ActualCost   *decimal.Decimal
}

// monthlyRow is one request inside the trailing-twelve-month window.
type monthlyRow struct {
	CreatedAt  time.Time
	ActualCost *decimal.Decimal
}

// Repository reads the raw aggregates the snapshot is computed from.
type Repository interface {
	CountByStatus(ctx context.Context) ([]statusCount, error)
	SumSpentOnReceived(ctx context.Context) (decimal.Decimal, error)
	ReceivedProcessingWindows(ctx context.Context) ([]processingWindow, error)
	CategoryRows(ctx context.Context) ([]categoryRow, error)
	MonthlyRows(ctx context.Context, since time.Time) ([]monthlyRow, error)
}

// Service produces the procurement report snapshot.
type Service interface {
	Snapshot(ctx context.Context) (*Report, error)
}
