package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/crazypanel/lookupbot/internal/domain"
	"github.com/crazypanel/lookupbot/internal/ports"
)

// SubscriptionService owns every mutation of subscription records. Each
// mutating operation runs as a read-modify-write critical section under a
// per-user lock, so concurrent webhook deliveries for the same user cannot
// double-spend quota.
type SubscriptionService struct {
	repo       ports.SubscriptionRepository
	accountant *Accountant
	catalog    *domain.Catalog
	clock      ports.Clock
	logger     zerolog.Logger

	locksMu sync.Mutex
	locks   map[domain.UserID]*sync.Mutex
}

func NewSubscriptionService(repo ports.SubscriptionRepository, catalog *domain.Catalog, clock ports.Clock, logger zerolog.Logger) *SubscriptionService {
	if catalog == nil {
		catalog = domain.DefaultCatalog()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SubscriptionService{
		repo:       repo,
		accountant: NewAccountant(catalog),
		catalog:    catalog,
		clock:      clock,
		logger:     logger,
		locks:      map[domain.UserID]*sync.Mutex{},
	}
}

func (s *SubscriptionService) lockFor(id domain.UserID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	if mu, ok := s.locks[id]; ok {
		return mu
	}

	mu := &sync.Mutex{}
	s.locks[id] = mu
	return mu
}

// EnsureRecord fetches the user's record, creating it with free-plan defaults
// on first contact. Display metadata is refreshed opportunistically.
func (s *SubscriptionService) EnsureRecord(ctx context.Context, id domain.UserID, username, firstName string) (domain.SubscriptionRecord, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	return s.ensureRecordLocked(ctx, id, username, firstName)
}

func (s *SubscriptionService) ensureRecordLocked(ctx context.Context, id domain.UserID, username, firstName string) (domain.SubscriptionRecord, error) {
	record, err := s.repo.GetByUserID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSubscriptionNotFound) {
			return domain.SubscriptionRecord{}, fmt.Errorf("get subscription: %w", err)
		}

		record = domain.NewSubscriptionRecord(id, username, firstName, s.clock.Now())
		if err := s.repo.Save(ctx, record); err != nil {
			return domain.SubscriptionRecord{}, fmt.Errorf("save new subscription: %w", err)
		}

		s.logger.Info().Str("user_id", string(id)).Msg("created free subscription record")
		return record, nil
	}

	if (username != "" && username != record.Username) || (firstName != "" && firstName != record.FirstName) {
		if username != "" {
			record.Username = username
		}
		if firstName != "" {
			record.FirstName = firstName
		}
		if err := s.repo.Save(ctx, record); err != nil {
			return domain.SubscriptionRecord{}, fmt.Errorf("save subscription metadata: %w", err)
		}
	}

	return record, nil
}

// TryConsumeSearch is the single entry point that spends quota: ensure the
// record exists, apply pending reset and expiry rules, and when allowed
// increment both usage counters and persist before reporting success. The
// reported Remaining is the post-consumption value.
func (s *SubscriptionService) TryConsumeSearch(ctx context.Context, id domain.UserID, username, firstName string) (domain.EntitlementResult, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	record, err := s.ensureRecordLocked(ctx, id, username, firstName)
	if err != nil {
		return domain.EntitlementResult{}, err
	}

	result, updated := s.accountant.Evaluate(record, s.clock.Now())

	if result.Allowed {
		updated.SearchesUsed++
		updated.TotalSearches++
		if !result.Unlimited() {
			result.Remaining--
		}

		if err := s.repo.Save(ctx, updated); err != nil {
			// Nothing was promoted: the increment lives only in this copy,
			// so a retry cannot double-count.
			return domain.EntitlementResult{}, fmt.Errorf("persist consumed search: %w", err)
		}

		s.logger.Debug().
			Str("user_id", string(id)).
			Str("plan", string(updated.Plan)).
			Int("searches_used", updated.SearchesUsed).
			Msg("search credit consumed")
		return result, nil
	}

	if updated != record {
		// Reset or status flip discovered during a denied evaluation. The
		// mutation is idempotent, so on failure we log and still deny.
		if err := s.repo.Save(ctx, updated); err != nil {
			s.logger.Error().Err(err).Str("user_id", string(id)).Msg("persist subscription housekeeping failed")
		}
	}

	return result, nil
}

// GrantSubscription applies an admin-confirmed payment: the plan cycle
// restarts at now with fresh usage, while the lifetime counter carries over.
// An unknown plan mutates nothing.
func (s *SubscriptionService) GrantSubscription(ctx context.Context, id domain.UserID, username, firstName string, planID domain.PlanID, paymentAmount int) (domain.SubscriptionRecord, error) {
	plan, err := s.catalog.Lookup(planID)
	if err != nil {
		return domain.SubscriptionRecord{}, err
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	now := s.clock.Now()

	totalSearches := 0
	existing, err := s.repo.GetByUserID(ctx, id)
	switch {
	case err == nil:
		totalSearches = existing.TotalSearches
		if username == "" {
			username = existing.Username
		}
		if firstName == "" {
			firstName = existing.FirstName
		}
	case errors.Is(err, domain.ErrSubscriptionNotFound):
	default:
		return domain.SubscriptionRecord{}, fmt.Errorf("get subscription: %w", err)
	}

	record := domain.SubscriptionRecord{
		UserID:        id,
		Username:      username,
		FirstName:     firstName,
		Plan:          planID,
		PaymentAmount: paymentAmount,
		CreatedAt:     now,
		Expires:       plan.Validity.ExpiryFrom(now),
		SearchesUsed:  0,
		LastReset:     domain.DateOnly(now),
		TotalSearches: totalSearches,
	}
	record.Status = statusFor(plan, record, now)

	if err := s.repo.Save(ctx, record); err != nil {
		return domain.SubscriptionRecord{}, fmt.Errorf("save granted subscription: %w", err)
	}

	s.logger.Info().
		Str("user_id", string(id)).
		Str("plan", string(planID)).
		Int("payment_amount", paymentAmount).
		Msg("subscription granted")

	return record, nil
}

// StatsFor returns the user's record as it stands right now, with any
// pending daily reset and status maintenance applied to the returned copy.
// Nothing is persisted; the next consumption commits the same mutations.
func (s *SubscriptionService) StatsFor(ctx context.Context, id domain.UserID, username, firstName string) (domain.SubscriptionRecord, error) {
	record, err := s.EnsureRecord(ctx, id, username, firstName)
	if err != nil {
		return domain.SubscriptionRecord{}, err
	}

	_, updated := s.accountant.Evaluate(record, s.clock.Now())
	return updated, nil
}

// Catalog exposes the immutable plan table for presentation layers.
func (s *SubscriptionService) Catalog() *domain.Catalog {
	return s.catalog
}
