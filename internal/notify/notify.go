// Package notify pushes live order updates to connected sessions.
// Delivery is best-effort: a missing or unreachable listener is a no-op,
// never an error the caller has to care about.
package notify

import "context"

type EventKind string

const (
	// KindOrderStatus carries a single changed order to its customer.
	KindOrderStatus EventKind = "order.status"
	// KindOrderList carries the full order list to an admin session.
	KindOrderList EventKind = "order.list"
)

type Publisher interface {
	Publish(ctx context.Context, addr string, kind EventKind, payload any) error
}
