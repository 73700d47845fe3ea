package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub-backend/pkg/enums"
	pkgerrors "github.com/procurehub/procurehub-backend/pkg/errors"
)

const topCategoryLimit = 5

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the reporting service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Snapshot computes the full report from live data on every call.
func (s *service) Snapshot(ctx context.Context) (*Report, error) {
	report := &Report{
		TotalSpent:    decimal.Zero,
		TopCategories: []CategorySpend{},
		MonthlyTrends: []MonthlyTrend{},
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count requests by status")
	}
	for _, row := range counts {
		report.TotalRequests += row.Count
		switch row.Status {
		case enums.RequestStatusPending:
			report.PendingRequests += row.Count
		case enums.RequestStatusManagerApproved, enums.RequestStatusAdminProcessing, enums.RequestStatusPurchased:
			report.ApprovedRequests += row.Count
		case enums.RequestStatusManagerRejected, enums.RequestStatusCancelled:
			report.RejectedRequests += row.Count
		case enums.RequestStatusReceived:
			report.CompletedRequests += row.Count
		}
	}

	spent, err := s.repo.SumSpentOnReceived(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum received spend")
	}
	report.TotalSpent = spent

	windows, err := s.repo.ReceivedProcessingWindows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load processing windows")
	}
	report.AverageProcessingDays = averageProcessingDays(windows)

	categories, err := s.repo.CategoryRows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category rows")
	}
	report.TopCategories = topCategories(categories)

	since := monthStart(s.now().UTC()).AddDate(0, -11, 0)
	monthly, err := s.repo.MonthlyRows(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load monthly rows")
	}
	report.MonthlyTrends = monthlyTrends(monthly)

	return report, nil
}

func averageProcessingDays(windows []processingWindow) float64 {
	if len(windows) == 0 {
		return 0
	}
	var totalDays float64
	var counted int
	for _, w := range windows {
		if w.ReceivedDate == nil {
			continue
		}
		totalDays += w.ReceivedDate.Sub(w.CreatedAt).Hours() / 24
		counted++
	}
	if counted == 0 {
		return 0
	}
	return totalDays / float64(counted)
}

// topCategories aggregates line rows with distinct-request semantics: a
// request touching a category through several lines counts once, and its
// actual cost is summed once.
func topCategories(rows []categoryRow) []CategorySpend {
	type bucket struct {
		spend CategorySpend
		seen  map[uuid.UUID]struct{}
	}

	buckets := make(map[uuid.UUID]*bucket)
	order := make([]uuid.UUID, 0)
	for _, row := range rows {
		b, ok := buckets[row.CategoryID]
		if !ok {
			b = &bucket{
				spend: CategorySpend{CategoryID: row.CategoryID, Name: row.CategoryName, TotalSpent: decimal.Zero},
				seen:  make(map[uuid.UUID]struct{}),
			}
			buckets[row.CategoryID] = b
			order = append(order, row.CategoryID)
		}
		if _, dup := b.seen[row.RequestID]; dup {
			continue
		}
		b.seen[row.RequestID] = struct{}{}
		b.spend.RequestCount++
		if row.ActualCost != nil {
			b.spend.TotalSpent = b.spend.TotalSpent.Add(*row.ActualCost)
		}
	}

	out := make([]CategorySpend, 0, len(buckets))
	for _, id := range order {
		out = append(out, buckets[id].spend)
	}
	// Stable sort keeps first-seen order between equal counts.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RequestCount > out[j].RequestCount
	})
	if len(out) > topCategoryLimit {
		out = out[:topCategoryLimit]
	}
	return out
}

func monthlyTrends(rows []monthlyRow) []MonthlyTrend {
	buckets := make(map[string]*MonthlyTrend)
	for _, row := range rows {
		key := row.CreatedAt.UTC().Format("2006-01")
		trend, ok := buckets[key]
		if !ok {
			trend = &MonthlyTrend{Month: key, TotalSpent: decimal.Zero}
			buckets[key] = trend
		}
		trend.RequestCount++
		if row.ActualCost != nil {
			trend.TotalSpent = trend.TotalSpent.Add(*row.ActualCost)
		}
	}

	out := make([]MonthlyTrend, 0, len(buckets))
	for _, trend := range buckets {
		out = append(out, *trend)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month > out[j].Month
	})
	return out
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
