package domain

// RemainingUnlimited is reported for plans without a daily cap.
const RemainingUnlimited = -1

type DenyReason string

const (
	DenyReasonNone          DenyReason = ""
	DenyReasonNoEntitlement DenyReason = "no_entitlement"
	DenyReasonExpired       DenyReason = "expired"
	DenyReasonQuotaExceeded DenyReason = "quota_exceeded"
)

// EntitlementResult is the outcome of asking whether a user may search now.
// Denials are values, not errors; the transport layer owns the user-facing
// wording.
type EntitlementResult struct {
	Allowed   bool
	Remaining int
	Reason    DenyReason
}

func (r EntitlementResult) Unlimited() bool {
	return r.Remaining == RemainingUnlimited
}
