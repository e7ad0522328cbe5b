package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crazypanel/lookupbot/internal/application"
	"github.com/crazypanel/lookupbot/internal/domain"
)

func TestRenderSummary(t *testing.T) {
	now := time.Date(2026, 3, 5, 11, 0, 0, 0, time.UTC)

	output, err := Render(application.Summary{
		TotalUsers:   4,
		TotalRevenue: 8350,
		CountByPlan: map[domain.PlanID]int{
			domain.PlanFree:     2,
			domain.PlanSingle:   1,
			domain.PlanLifetime: 1,
		},
		Recent: []domain.SubscriptionRecord{
			{
				UserID:    "1004",
				FirstName: "Dana",
				Plan:      domain.PlanLifetime,
				CreatedAt: now.Add(-3 * time.Hour),
			},
			{
				UserID:    "1003",
				FirstName: "Carol",
				Plan:      domain.PlanSingle,
				CreatedAt: now.Add(-2 * 24 * time.Hour),
			},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "users: 4")
	assert.Contains(t, output, "revenue: ₹8350")
	assert.Contains(t, output, "free")
	assert.Contains(t, output, "lifetime")
	assert.Contains(t, output, "2 users")
	assert.Contains(t, output, "1 user")
	assert.Contains(t, output, "recent signups")
	assert.Contains(t, output, "Dana")
	assert.Contains(t, output, "joined 3 hours ago")
	assert.Contains(t, output, "joined 2 days ago")
	assert.Contains(t, output, "[")
	assert.Contains(t, output, "]")
	assert.NotContains(t, output, "premium")
}

func TestRenderEmptySummary(t *testing.T) {
	output, err := Render(application.Summary{
		CountByPlan: map[domain.PlanID]int{},
	}, RenderOptions{Now: time.Now()})

	require.NoError(t, err)
	assert.Contains(t, output, "users: 0")
	assert.Contains(t, output, "No subscribers yet.")
}
