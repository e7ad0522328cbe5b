package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/crazypanel/lookupbot/internal/domain"
	"github.com/crazypanel/lookupbot/internal/ports"
)

type Summary struct {
	TotalUsers   int
	TotalRevenue int
	CountByPlan  map[domain.PlanID]int
	Recent       []domain.SubscriptionRecord
}

// Reporter derives admin-facing statistics from the store. Read-only; the
// data volumes are small enough to recompute on every call.
type Reporter struct {
	repo ports.SubscriptionRepository
}

func NewReporter(repo ports.SubscriptionRepository) *Reporter {
	return &Reporter{repo: repo}
}

// Summarize folds over all records: revenue is the sum of recorded payment
// amounts, and Recent holds the recentN newest records by creation time.
func (r *Reporter) Summarize(ctx context.Context, recentN int) (Summary, error) {
	records, err := r.repo.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list subscriptions: %w", err)
	}

	summary := Summary{
		TotalUsers:  len(records),
		CountByPlan: make(map[domain.PlanID]int, len(records)),
	}
	for _, record := range records {
		summary.TotalRevenue += record.PaymentAmount
		summary.CountByPlan[record.Plan]++
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if recentN >= 0 && recentN < len(records) {
		records = records[:recentN]
	}
	summary.Recent = records

	return summary, nil
}
