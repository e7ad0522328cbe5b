package domain

import (
	"fmt"
	"time"
)

type PlanID string

const (
	PlanFree     PlanID = "free"
	PlanSingle   PlanID = "single"
	PlanPremium  PlanID = "premium"
	PlanPro      PlanID = "pro"
	PlanLifetime PlanID = "lifetime"
)

// QuotaUnlimited marks a plan without a daily search cap.
const QuotaUnlimited = -1

// Validity describes how long a plan stays active after it is granted.
// A zero Duration means the plan never expires.
type Validity struct {
	Duration time.Duration
}

func ExpiresAfterHours(n int) Validity {
	return Validity{Duration: time.Duration(n) * time.Hour}
}

func ExpiresAfterDays(n int) Validity {
	return Validity{Duration: time.Duration(n) * 24 * time.Hour}
}

func NeverExpires() Validity {
	return Validity{}
}

func (v Validity) Expires() bool {
	return v.Duration > 0
}

// ExpiryFrom returns the expiry timestamp for a plan granted at start,
// or the zero time for plans that never expire.
func (v Validity) ExpiryFrom(start time.Time) time.Time {
	if !v.Expires() {
		return time.Time{}
	}

	return start.Add(v.Duration)
}

type PlanDefinition struct {
	ID         PlanID
	Price      int
	DailyQuota int
	Validity   Validity
}

func (p PlanDefinition) Unlimited() bool {
	return p.DailyQuota == QuotaUnlimited
}

// Catalog is the immutable plan table. Prices and quotas are fixed for the
// process lifetime; changing them is a deployment, not a runtime operation.
type Catalog struct {
	plans map[PlanID]PlanDefinition
	order []PlanID
}

// DefaultCatalog returns the production plan table. The single plan is priced
// at 50 per the updated pricing sheet.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		PlanDefinition{ID: PlanFree, Price: 0, DailyQuota: 0, Validity: NeverExpires()},
		PlanDefinition{ID: PlanSingle, Price: 50, DailyQuota: 1, Validity: ExpiresAfterHours(24)},
		PlanDefinition{ID: PlanPremium, Price: 300, DailyQuota: 50, Validity: ExpiresAfterDays(30)},
		PlanDefinition{ID: PlanPro, Price: 500, DailyQuota: 200, Validity: ExpiresAfterDays(30)},
		PlanDefinition{ID: PlanLifetime, Price: 8000, DailyQuota: QuotaUnlimited, Validity: NeverExpires()},
	)
}

func NewCatalog(plans ...PlanDefinition) *Catalog {
	byID := make(map[PlanID]PlanDefinition, len(plans))
	order := make([]PlanID, 0, len(plans))
	for _, plan := range plans {
		if _, ok := byID[plan.ID]; !ok {
			order = append(order, plan.ID)
		}
		byID[plan.ID] = plan
	}

	return &Catalog{plans: byID, order: order}
}

func (c *Catalog) Lookup(id PlanID) (PlanDefinition, error) {
	plan, ok := c.plans[id]
	if !ok {
		return PlanDefinition{}, fmt.Errorf("%w: %q", ErrUnknownPlan, id)
	}

	return plan, nil
}

// Plans returns the definitions in declaration order.
func (c *Catalog) Plans() []PlanDefinition {
	plans := make([]PlanDefinition, 0, len(c.order))
	for _, id := range c.order {
		plans = append(plans, c.plans[id])
	}

	return plans
}
