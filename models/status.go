package models

import "errors"

// OrderStatus is the fulfillment state of an order. Orders only move forward
// along the fixed chain processing → baking → out_for_delivery → delivered.
type OrderStatus string

const (
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusBaking         OrderStatus = "baking"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// StatusTransition pairs the next status with the push message shown to the
// customer when the order reaches it.
type StatusTransition struct {
	Next    OrderStatus
	Message string
}

// statusTransitions is the complete forward chain. delivered has no entry:
// it is terminal.
var statusTransitions = map[OrderStatus]StatusTransition{
	OrderStatusProcessing:     {Next: OrderStatusBaking, Message: "Your order is now being baked!"},
	OrderStatusBaking:         {Next: OrderStatusOutForDelivery, Message: "Your order is out for delivery!"},
	OrderStatusOutForDelivery: {Next: OrderStatusDelivered, Message: "Your order has been delivered!"},
}

var (
	// ErrOrderDelivered is returned when advancing a terminal order.
	ErrOrderDelivered = errors.New("order is already delivered and cannot progress further")
	// ErrUnknownStatus is returned for a stored status outside the chain.
	ErrUnknownStatus = errors.New("invalid order status")
)

// NextStatus computes the transition out of current. It is pure: it never
// touches storage, so concurrent calls for different orders are safe and
// repeated calls for the same input always agree.
func NextStatus(current OrderStatus) (StatusTransition, error) {
	if current == OrderStatusDelivered {
		return StatusTransition{}, ErrOrderDelivered
	}
	t, ok := statusTransitions[current]
	if !ok {
		return StatusTransition{}, ErrUnknownStatus
	}
	return t, nil
}

// IsTerminal reports whether no transition exists out of s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}
