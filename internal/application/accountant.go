package application

import (
	"time"

	"github.com/crazypanel/lookupbot/internal/domain"
)

// Accountant computes entitlement for a record at a point in time. It is
// pure: required record mutations (daily reset, status maintenance) are
// returned as an updated copy, and persisting that copy is the
// SubscriptionService's job.
type Accountant struct {
	catalog *domain.Catalog
}

func NewAccountant(catalog *domain.Catalog) *Accountant {
	if catalog == nil {
		catalog = domain.DefaultCatalog()
	}

	return &Accountant{catalog: catalog}
}

// Evaluate applies expiry and day-rollover rules to record at now and reports
// whether one more search is allowed. Expiry is checked strictly before
// quota, so an expired record under quota is denied as expired. Remaining is
// the pre-consumption count.
func (a *Accountant) Evaluate(record domain.SubscriptionRecord, now time.Time) (domain.EntitlementResult, domain.SubscriptionRecord) {
	plan, err := a.catalog.Lookup(record.Plan)
	if err != nil {
		// A persisted record referencing a plan outside the catalog grants
		// nothing until an admin re-grants a known plan.
		record.Status = domain.StatusExpired
		return domain.EntitlementResult{Reason: domain.DenyReasonNoEntitlement}, record
	}

	if plan.Validity.Expires() && record.ExpiredAt(now) {
		record.Status = domain.StatusExpired
		return domain.EntitlementResult{Reason: domain.DenyReasonExpired}, record
	}

	if record.NeedsReset(now) {
		record.SearchesUsed = 0
		record.LastReset = domain.DateOnly(now)
	}

	record.Status = statusFor(plan, record, now)

	if plan.Unlimited() {
		return domain.EntitlementResult{Allowed: true, Remaining: domain.RemainingUnlimited}, record
	}

	if plan.DailyQuota == 0 {
		return domain.EntitlementResult{Reason: domain.DenyReasonNoEntitlement}, record
	}

	remaining := plan.DailyQuota - record.SearchesUsed
	if remaining <= 0 {
		return domain.EntitlementResult{Reason: domain.DenyReasonQuotaExceeded}, record
	}

	return domain.EntitlementResult{Allowed: true, Remaining: remaining}, record
}

// statusFor maintains the derived status field: expired when the plan grants
// no entitlement at all (free) or its validity lapsed, active otherwise.
func statusFor(plan domain.PlanDefinition, record domain.SubscriptionRecord, now time.Time) domain.SubscriptionStatus {
	if plan.ID == domain.PlanFree {
		return domain.StatusExpired
	}
	if plan.Validity.Expires() && record.ExpiredAt(now) {
		return domain.StatusExpired
	}

	return domain.StatusActive
}
