package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haianhng/shop-admin-backend/internal/order"
)

const (
	orderCreatedEventName    = "OrderCreated"
	orderCreatedEventVersion = 1
)

type OrderItemPayload struct {
	ProductID string          `json:"productId"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
}

// OrderCreatedPayload represents the v1 payload schema.
type OrderCreatedPayload struct {
	OrderID    string             `json:"orderId"`
	CartID     string             `json:"cartId"`
	CustomerID string             `json:"customerId"`
	Items      []OrderItemPayload `json:"items"`
	TotalItem  int                `json:"totalItem"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
	TypeOrder  string             `json:"typeOrder"`
	Timestamp  time.Time          `json:"timestamp"`
}

// OrderCreatedEnvelope is the enveloped event structure.
type OrderCreatedEnvelope = EventEnvelope[OrderCreatedPayload]

// BuildOrderCreatedEnvelope builds an enveloped OrderCreated event.
func BuildOrderCreatedEnvelope(o *order.Order, seq int64, meta EnvelopeMetadata) OrderCreatedEnvelope {
	if meta.CorrelationID == "" {
		meta.CorrelationID = uuid.NewString()
	}

	items := make([]OrderItemPayload, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemPayload{
			ProductID: it.ProductID,
			Qty:       it.Qty,
			Price:     it.Price,
		})
	}

	return OrderCreatedEnvelope{
		EventName:     orderCreatedEventName,
		EventVersion:  orderCreatedEventVersion,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producerName,
		PartitionKey:  o.ID,
		Sequence:      &seq,
		OccurredAt:    time.Now().UTC(),
		Payload: OrderCreatedPayload{
			OrderID:    o.ID,
			CartID:     o.CartID,
			CustomerID: o.CustomerID,
			Items:      items,
			TotalItem:  o.TotalItem,
			TotalPrice: o.TotalPrice,
			TypeOrder:  o.TypeOrder,
			Timestamp:  o.CreatedAt,
		},
	}
}
