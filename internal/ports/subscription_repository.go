package ports

import (
	"context"

	"github.com/crazypanel/lookupbot/internal/domain"
)

// SubscriptionRepository is the durable record collection keyed by user
// identity. Save replaces the whole record and must be atomic with respect
// to process interruption.
type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, id domain.UserID) (domain.SubscriptionRecord, error)
	List(ctx context.Context) ([]domain.SubscriptionRecord, error)
	Save(ctx context.Context, record domain.SubscriptionRecord) error
}
