package studio

import (
	"context"
	"time"
)

type EventType string

const (
	EventCartItemAdded     EventType = "cart_item_added"
	EventCartItemRemoved   EventType = "cart_item_removed"
	EventCheckoutStarted   EventType = "checkout_started"
	EventPaymentConfirmed  EventType = "payment_confirmed"
	EventOrderAcknowledged EventType = "order_acknowledged"
)

// Event is a journal entry describing a cart or order change of one client.
type Event struct {
	Type     EventType
	ClientID string
	Data     map[string]interface{}
	At       time.Time
}

// EventSink receives storefront events. Failures are logged and dropped.
type EventSink interface {
	RecordEvent(ctx context.Context, e Event) error
}

type NopSink struct{}

func (NopSink) RecordEvent(context.Context, Event) error { return nil }
