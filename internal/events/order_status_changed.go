package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/shop-admin-backend/internal/order"
)

const (
	orderStatusChangedEventName    = "OrderStatusChanged"
	orderStatusChangedEventVersion = 1
)

// OrderStatusChangedPayload represents the v1 payload schema.
type OrderStatusChangedPayload struct {
	OrderID    string       `json:"orderId"`
	CustomerID string       `json:"customerId"`
	OldStatus  order.Status `json:"oldStatus"`
	NewStatus  order.Status `json:"newStatus"`
	Timestamp  time.Time    `json:"timestamp"`
}

// OrderStatusChangedEnvelope is the enveloped event structure.
type OrderStatusChangedEnvelope = EventEnvelope[OrderStatusChangedPayload]

// BuildOrderStatusChangedEnvelope builds an enveloped OrderStatusChanged event.
func BuildOrderStatusChangedEnvelope(o *order.Order, old order.Status, seq int64, meta EnvelopeMetadata) OrderStatusChangedEnvelope {
	if meta.CorrelationID == "" {
		meta.CorrelationID = uuid.NewString()
	}

	return OrderStatusChangedEnvelope{
		EventName:     orderStatusChangedEventName,
		EventVersion:  orderStatusChangedEventVersion,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producerName,
		PartitionKey:  o.ID,
		Sequence:      &seq,
		OccurredAt:    time.Now().UTC(),
		Payload: OrderStatusChangedPayload{
			OrderID:    o.ID,
			CustomerID: o.CustomerID,
			OldStatus:  old,
			NewStatus:  o.Status,
			Timestamp:  time.Now().UTC(),
		},
	}
}
