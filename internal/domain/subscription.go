package domain

// SubscriptionEventType identifies a payment processor lifecycle event.
type SubscriptionEventType string

const (
	SubscriptionCreated SubscriptionEventType = "created"
	SubscriptionUpdated SubscriptionEventType = "updated"
	SubscriptionDeleted SubscriptionEventType = "deleted"
)

// SchedulePhase is one phase of a multi-phase subscription schedule.
// Timestamps are Unix seconds; End of zero means open-ended.
type SchedulePhase struct {
	Start int64 `json:"start_date"`
	End   int64 `json:"end_date"`
}

// SubscriptionEvent is the normalized view of a processor notification.
// It is derived per event and discarded after reconciliation; nothing
// persists it.
type SubscriptionEvent struct {
	Type       SubscriptionEventType
	CustomerID string
	ProductID  string
	// PeriodEnd is the direct period-end timestamp (Unix seconds), zero
	// when the event carries none.
	PeriodEnd int64
	Phases    []SchedulePhase
}
