package billing

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"

	"github.com/haroonchishty/sca-backend/internal/domain"
)

// subscriptionPayload is the subset of a subscription (or subscription
// schedule) object the reconciler cares about. The customer reference in
// webhook payloads is the bare id string.
type subscriptionPayload struct {
	ID               string                 `json:"id"`
	Customer         string                 `json:"customer"`
	CurrentPeriodEnd int64                  `json:"current_period_end"`
	Phases           []domain.SchedulePhase `json:"phases"`
	Items            struct {
		Data []struct {
			Plan struct {
				Product string `json:"product"`
			} `json:"plan"`
		} `json:"data"`
	} `json:"items"`
}

// eventTypes maps processor event type strings to the reconciler's
// normalized event kinds. Types absent from the map are acknowledged and
// ignored.
var eventTypes = map[stripe.EventType]domain.SubscriptionEventType{
	"customer.subscription.created": domain.SubscriptionCreated,
	"customer.subscription.updated": domain.SubscriptionUpdated,
	"customer.subscription.deleted": domain.SubscriptionDeleted,
}

// NormalizeEvent converts a verified processor event into the reconciler's
// normalized view. ok is false for event types the platform ignores.
func NormalizeEvent(event stripe.Event) (*domain.SubscriptionEvent, bool, error) {
	kind, ok := eventTypes[event.Type]
	if !ok {
		return nil, false, nil
	}

	var payload subscriptionPayload
	if err := json.Unmarshal(event.Data.Raw, &payload); err != nil {
		return nil, false, fmt.Errorf("unmarshal %s payload: %w", event.Type, err)
	}

	normalized := &domain.SubscriptionEvent{
		Type:       kind,
		CustomerID: payload.Customer,
		PeriodEnd:  payload.CurrentPeriodEnd,
		Phases:     payload.Phases,
	}
	if len(payload.Items.Data) > 0 {
		normalized.ProductID = payload.Items.Data[0].Plan.Product
	}
	return normalized, true, nil
}
