package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	tomlrepo "github.com/crazypanel/lookupbot/internal/adapters/repo/toml"
	"github.com/crazypanel/lookupbot/internal/domain"
	"github.com/crazypanel/lookupbot/internal/ports"
	"github.com/crazypanel/lookupbot/internal/ports/mocks"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time {
	return c.now
}

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func newFileBackedService(t *testing.T, clock *stubClock) *SubscriptionService {
	t.Helper()

	config := viper.New()
	config.Set("subscriptions.path", filepath.Join(t.TempDir(), "subscriptions.toml"))
	repo, err := tomlrepo.NewRepository(config, zerolog.Nop())
	require.NoError(t, err)

	return NewSubscriptionService(repo, domain.DefaultCatalog(), clock, zerolog.Nop())
}

func TestTryConsumeSearchFreePlanDenied(t *testing.T) {
	t.Parallel()

	clock := &stubClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	service := newFileBackedService(t, clock)

	result, err := service.TryConsumeSearch(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	assert.Equal(t, domain.DenyReasonNoEntitlement, result.Reason)

	record, err := service.EnsureRecord(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.Zero(t, record.SearchesUsed)
	assert.Zero(t, record.TotalSearches)
	assert.Equal(t, domain.PlanFree, record.Plan)
}

func TestTryConsumeSearchIncrementsCountersExactlyOnce(t *testing.T) {
	t.Parallel()

	clock := &stubClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	service := newFileBackedService(t, clock)

	_, err := service.GrantSubscription(context.Background(), "1001", "alice", "Alice", domain.PlanSingle, 50)
	require.NoError(t, err)

	result, err := service.TryConsumeSearch(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Zero(t, result.Remaining)

	record, err := service.EnsureRecord(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 1, record.SearchesUsed)
	assert.Equal(t, 1, record.TotalSearches)

	// Quota spent: the denial must not move either counter.
	result, err = service.TryConsumeSearch(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, domain.DenyReasonQuotaExceeded, result.Reason)

	record, err = service.EnsureRecord(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 1, record.SearchesUsed)
	assert.Equal(t, 1, record.TotalSearches)
}

func TestTryConsumeSearchSinglePlanExpiryWindow(t *testing.T) {
	t.Parallel()

	grantedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := &stubClock{now: grantedAt}
	service := newFileBackedService(t, clock)

	record, err := service.GrantSubscription(context.Background(), "1001", "alice", "Alice", domain.PlanSingle, 50)
	require.NoError(t, err)
	assert.Equal(t, grantedAt.Add(24*time.Hour), record.Expires)

	clock.now = grantedAt.Add(23 * time.Hour)
	result, err := service.TryConsumeSearch(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	clock.now = grantedAt.Add(25 * time.Hour)
	result, err = service.TryConsumeSearch(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, domain.DenyReasonExpired, result.Reason)

	record, err = service.EnsureRecord(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, record.Status)
}

func TestTryConsumeSearchPremiumDayRollover(t *testing.T) {
	t.Parallel()

	grantedAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	clock := &stubClock{now: grantedAt}
	service := newFileBackedService(t, clock)

	_, err := service.GrantSubscription(context.Background(), "1001", "alice", "Alice", domain.PlanPremium, 300)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		result, err := service.TryConsumeSearch(context.Background(), "1001", "alice", "Alice")
		require.NoError(t, err)
		require.True(t, result.Allowed)
		assert.Equal(t, 49-i, result.Remaining)
	}

	result, err := service.TryConsumeSearch(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, domain.DenyReasonQuotaExceeded, result.Reason)

	clock.now = time.Date(2026, 3, 2, 0, 5, 0, 0, time.UTC)
	result, err = service.TryConsumeSearch(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 49, result.Remaining)

	record, err := service.EnsureRecord(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 1, record.SearchesUsed)
	assert.Equal(t, 51, record.TotalSearches)
}

func TestTryConsumeSearchPersistFailureSurfacesError(t *testing.T) {
	repo := mocks.NewMockSubscriptionRepository(t)
	clock := mocks.NewMockClock(t)
	service := NewSubscriptionService(repo, domain.DefaultCatalog(), clock, zerolog.Nop())

	grantedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	record := domain.SubscriptionRecord{
		UserID:    "1001",
		Username:  "alice",
		FirstName: "Alice",
		Plan:      domain.PlanPremium,
		CreatedAt: grantedAt,
		Expires:   grantedAt.Add(30 * 24 * time.Hour),
		LastReset: domain.DateOnly(grantedAt),
		Status:    domain.StatusActive,
	}

	persistErr := errors.New("disk full")
	clock.EXPECT().Now().Return(grantedAt.Add(time.Hour))
	repo.EXPECT().GetByUserID(mockAnyContext(), domain.UserID("1001")).Return(record, nil)

	incremented := record
	incremented.SearchesUsed = 1
	incremented.TotalSearches = 1
	repo.EXPECT().Save(mockAnyContext(), incremented).Return(persistErr)

	result, err := service.TryConsumeSearch(context.Background(), "1001", "alice", "Alice")
	require.ErrorIs(t, err, persistErr)
	assert.Equal(t, domain.EntitlementResult{}, result)
}

func TestGrantSubscriptionUnknownPlanMutatesNothing(t *testing.T) {
	repo := mocks.NewMockSubscriptionRepository(t)
	service := NewSubscriptionService(repo, domain.DefaultCatalog(), ports.SystemClock{}, zerolog.Nop())

	_, err := service.GrantSubscription(context.Background(), "1001", "alice", "Alice", "bogus", 100)
	require.ErrorIs(t, err, domain.ErrUnknownPlan)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGrantSubscriptionResetsCycleAndKeepsLifetimeCounter(t *testing.T) {
	t.Parallel()

	grantedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := &stubClock{now: grantedAt}
	service := newFileBackedService(t, clock)

	_, err := service.GrantSubscription(context.Background(), "1001", "alice", "Alice", domain.PlanSingle, 50)
	require.NoError(t, err)
	_, err = service.TryConsumeSearch(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)

	clock.now = grantedAt.Add(48 * time.Hour)
	record, err := service.GrantSubscription(context.Background(), "1001", "", "", domain.PlanPremium, 300)
	require.NoError(t, err)

	assert.Equal(t, domain.PlanPremium, record.Plan)
	assert.Equal(t, 300, record.PaymentAmount)
	assert.Equal(t, clock.now, record.CreatedAt)
	assert.Equal(t, clock.now.Add(30*24*time.Hour), record.Expires)
	assert.Zero(t, record.SearchesUsed)
	assert.Equal(t, 1, record.TotalSearches)
	assert.Equal(t, domain.StatusActive, record.Status)
	assert.Equal(t, "alice", record.Username)
	assert.Equal(t, "Alice", record.FirstName)
}

func TestStatsForAppliesPendingResetWithoutPersisting(t *testing.T) {
	t.Parallel()

	grantedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := &stubClock{now: grantedAt}
	service := newFileBackedService(t, clock)

	_, err := service.GrantSubscription(context.Background(), "1001", "alice", "Alice", domain.PlanPremium, 300)
	require.NoError(t, err)
	_, err = service.TryConsumeSearch(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)

	clock.now = time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)

	record, err := service.StatsFor(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.Zero(t, record.SearchesUsed)
	assert.Equal(t, 1, record.TotalSearches)
	assert.Equal(t, domain.DateOnly(clock.now), record.LastReset)

	// Display only: the store still carries yesterday's counter until the
	// next consumption commits the reset.
	persisted, err := service.EnsureRecord(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 1, persisted.SearchesUsed)
}

func TestEnsureRecordRefreshesDisplayMetadata(t *testing.T) {
	t.Parallel()

	clock := &stubClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	service := newFileBackedService(t, clock)

	_, err := service.EnsureRecord(context.Background(), "1001", "alice", "Alice")
	require.NoError(t, err)

	record, err := service.EnsureRecord(context.Background(), "1001", "alice_new", "Alicia")
	require.NoError(t, err)
	assert.Equal(t, "alice_new", record.Username)
	assert.Equal(t, "Alicia", record.FirstName)

	record, err = service.EnsureRecord(context.Background(), "1001", "", "")
	require.NoError(t, err)
	assert.Equal(t, "alice_new", record.Username)
	assert.Equal(t, "Alicia", record.FirstName)
}
