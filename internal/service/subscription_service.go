package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/haroonchishty/sca-backend/internal/billing"
	"github.com/haroonchishty/sca-backend/internal/domain"
	"github.com/haroonchishty/sca-backend/internal/persistence"
	apperrors "github.com/haroonchishty/sca-backend/pkg/util"
)

// productTiers maps processor product identifiers to access tiers.
var productTiers = map[string]int{
	"prod_SkhilOrwy7RyNo": 1,
	"prod_SkhjXhWsnmTsat": 2,
	"prod_SkhjCPy9UV5sbQ": 3,
}

// PaymentGateway is the processor-side collaborator the reconciler and the
// cancel operation depend on.
type PaymentGateway interface {
	CustomerEmail(ctx context.Context, customerID string) (string, bool, error)
	FindCustomerByEmail(ctx context.Context, email string) (string, error)
	CancelActiveSubscriptions(ctx context.Context, customerID string) (int, error)
}

// UserUpdater is the internal entry point into the update-user operation.
// The reconciler writes derived state through it rather than through the
// public transport.
type UserUpdater interface {
	ApplyPatch(ctx context.Context, userID string, patch persistence.Patch) error
}

// SubscriptionService reconciles payment processor lifecycle events into
// canonical user subscription state.
type SubscriptionService struct {
	payments PaymentGateway
	users    UserUpdater
	logger   *zap.Logger
	now      func() time.Time
}

// NewSubscriptionService constructs the reconciler.
func NewSubscriptionService(payments PaymentGateway, users UserUpdater, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{payments: payments, users: users, logger: logger, now: time.Now}
}

// Apply reconciles one normalized lifecycle event. Events for deleted
// customers or customers without an email are dropped silently; every event
// kind is independently idempotent, so replays recompute the same fields.
func (s *SubscriptionService) Apply(ctx context.Context, ev *domain.SubscriptionEvent) error {
	email, ok, err := s.payments.CustomerEmail(ctx, ev.CustomerID)
	if err != nil {
		return apperrors.NewUpstreamFailure("failed to resolve customer", err)
	}
	if !ok {
		s.logger.Info("dropping event for unresolvable customer",
			zap.String("customer_id", ev.CustomerID),
			zap.String("event_type", string(ev.Type)))
		return nil
	}

	var patch persistence.Patch
	switch ev.Type {
	case domain.SubscriptionCreated, domain.SubscriptionUpdated:
		patch = persistence.Patch{
			"status":             string(domain.SubscriptionActive),
			"tier":               s.tierForProduct(ev.ProductID),
			"customerId":         ev.CustomerID,
			"subscriptionExpiry": s.effectiveExpiry(ev).Format(time.RFC3339),
		}
	case domain.SubscriptionDeleted:
		// Grace period: expiry stays as-is until it lapses naturally.
		patch = persistence.Patch{
			"status": string(domain.SubscriptionCancelled),
		}
	default:
		s.logger.Info("ignoring event kind", zap.String("event_type", string(ev.Type)))
		return nil
	}

	if err := s.users.ApplyPatch(ctx, email, patch); err != nil {
		return err
	}
	s.logger.Info("reconciled subscription state",
		zap.String("user_id", email),
		zap.String("event_type", string(ev.Type)))
	return nil
}

// CancelForUser cancels every active subscription of the processor customer
// registered under the user's email.
func (s *SubscriptionService) CancelForUser(ctx context.Context, userID string) error {
	customerID, err := s.payments.FindCustomerByEmail(ctx, userID)
	if err != nil {
		if errors.Is(err, billing.ErrCustomerNotFound) {
			return apperrors.NewNotFound("user " + userID + " not found")
		}
		return apperrors.NewUpstreamFailure("failed to fetch stripe customer", err)
	}

	if _, err := s.payments.CancelActiveSubscriptions(ctx, customerID); err != nil {
		return apperrors.NewUpstreamFailure("failed to cancel subscriptions", err)
	}
	return nil
}

// tierForProduct maps a product id to an access tier. Unknown products are
// an anomaly, not an error; they fall back to tier 1.
func (s *SubscriptionService) tierForProduct(productID string) int {
	if tier, ok := productTiers[productID]; ok {
		return tier
	}
	s.logger.Warn("unknown product id, defaulting to tier 1", zap.String("product_id", productID))
	return 1
}

// effectiveExpiry derives the subscription end timestamp. When the event
// carries a multi-phase schedule, the matching phase's end is authoritative
// and the direct period end is never consulted; an unmatched or open-ended
// phase means one calendar month from now. Without a schedule, the period
// end applies, then the same one-month fallback.
func (s *SubscriptionService) effectiveExpiry(ev *domain.SubscriptionEvent) time.Time {
	now := s.now().UTC()

	if len(ev.Phases) > 0 {
		for _, phase := range ev.Phases {
			if phase.Start <= now.Unix() && (phase.End == 0 || phase.End > now.Unix()) {
				if phase.End > 0 {
					return time.Unix(phase.End, 0).UTC()
				}
				break
			}
		}
		return now.AddDate(0, 1, 0)
	}

	if ev.PeriodEnd > 0 {
		return time.Unix(ev.PeriodEnd, 0).UTC()
	}
	return now.AddDate(0, 1, 0)
}
