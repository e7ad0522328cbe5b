package domain

import "time"

type UserID string

type SubscriptionStatus string

const (
	StatusActive  SubscriptionStatus = "active"
	StatusExpired SubscriptionStatus = "expired"
)

// SubscriptionRecord is the sole source of truth for a user's entitlement.
// Exactly one record exists per user; records are superseded in place and
// never deleted.
type SubscriptionRecord struct {
	UserID        UserID
	Username      string
	FirstName     string
	Plan          PlanID
	PaymentAmount int
	CreatedAt     time.Time
	// Expires is the zero time for plans that never expire.
	Expires       time.Time
	SearchesUsed  int
	LastReset     time.Time
	TotalSearches int
	Status        SubscriptionStatus
}

// NewSubscriptionRecord returns the record created on a user's first
// interaction: free plan, zero usage, no expiry.
func NewSubscriptionRecord(id UserID, username, firstName string, now time.Time) SubscriptionRecord {
	return SubscriptionRecord{
		UserID:    id,
		Username:  username,
		FirstName: firstName,
		Plan:      PlanFree,
		CreatedAt: now,
		LastReset: DateOnly(now),
		Status:    StatusExpired,
	}
}

// ExpiredAt reports whether the record's plan validity has lapsed at now.
// Records without an expiry never lapse.
func (r SubscriptionRecord) ExpiredAt(now time.Time) bool {
	return !r.Expires.IsZero() && !now.Before(r.Expires)
}

// NeedsReset reports whether the daily usage counter belongs to an earlier
// calendar day than now.
func (r SubscriptionRecord) NeedsReset(now time.Time) bool {
	return r.LastReset.Before(DateOnly(now))
}

// DateOnly truncates a timestamp to its UTC calendar day. Day rollover is
// evaluated in UTC so the reset boundary does not move with the server's
// local zone.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
