package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidityExpiryFrom(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, start.Add(24*time.Hour), ExpiresAfterHours(24).ExpiryFrom(start))
	assert.Equal(t, start.Add(30*24*time.Hour), ExpiresAfterDays(30).ExpiryFrom(start))
	assert.True(t, NeverExpires().ExpiryFrom(start).IsZero())
}

func TestCatalogLookup(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name      string
		id        PlanID
		wantQuota int
		wantPrice int
	}{
		{name: "free", id: PlanFree, wantQuota: 0, wantPrice: 0},
		{name: "single", id: PlanSingle, wantQuota: 1, wantPrice: 50},
		{name: "premium", id: PlanPremium, wantQuota: 50, wantPrice: 300},
		{name: "pro", id: PlanPro, wantQuota: 200, wantPrice: 500},
		{name: "lifetime", id: PlanLifetime, wantQuota: QuotaUnlimited, wantPrice: 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := catalog.Lookup(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuota, plan.DailyQuota)
			assert.Equal(t, tt.wantPrice, plan.Price)
		})
	}
}

func TestCatalogLookupUnknownPlan(t *testing.T) {
	catalog := DefaultCatalog()

	_, err := catalog.Lookup(PlanID("bogus"))
	require.ErrorIs(t, err, ErrUnknownPlan)
	assert.Contains(t, err.Error(), "bogus")
}

func TestCatalogPlansKeepDeclarationOrder(t *testing.T) {
	catalog := DefaultCatalog()

	ids := make([]PlanID, 0, 5)
	for _, plan := range catalog.Plans() {
		ids = append(ids, plan.ID)
	}

	assert.Equal(t, []PlanID{PlanFree, PlanSingle, PlanPremium, PlanPro, PlanLifetime}, ids)
}

func TestSubscriptionRecordExpiredAt(t *testing.T) {
	expires := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	record := SubscriptionRecord{Expires: expires}

	assert.False(t, record.ExpiredAt(expires.Add(-time.Minute)))
	assert.True(t, record.ExpiredAt(expires))
	assert.True(t, record.ExpiredAt(expires.Add(time.Minute)))

	assert.False(t, SubscriptionRecord{}.ExpiredAt(expires.Add(time.Hour)))
}

func TestSubscriptionRecordNeedsReset(t *testing.T) {
	record := SubscriptionRecord{LastReset: DateOnly(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))}

	assert.False(t, record.NeedsReset(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)))
	assert.True(t, record.NeedsReset(time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)))
}

func TestNewSubscriptionRecordDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)

	record := NewSubscriptionRecord("42", "handle", "First", now)

	assert.Equal(t, PlanFree, record.Plan)
	assert.Equal(t, StatusExpired, record.Status)
	assert.True(t, record.Expires.IsZero())
	assert.Zero(t, record.SearchesUsed)
	assert.Zero(t, record.TotalSearches)
	assert.Equal(t, DateOnly(now), record.LastReset)
}
