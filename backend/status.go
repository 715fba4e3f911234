package backend

import "fmt"

// OrderStatus is the lifecycle state of an order as the platform spells it.
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "Placed"
	StatusConfirmed      OrderStatus = "Confirmed"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// Statuses lists every status in display order, Cancelled last.
func Statuses() []OrderStatus {
	return []OrderStatus{
		StatusPlaced,
		StatusConfirmed,
		StatusPreparing,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
	}
}

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, status := range Statuses() {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown order status: %q", s)
}

// IsTerminal reports whether no further transition can leave this status.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// transitions is the allow-table for status changes. An order moves forward
// one step at a time, and any non-terminal order can be cancelled.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPlaced:         {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      nil,
	StatusCancelled:      nil,
}

// Allowed reports whether the lifecycle permits moving from one status to
// another. Regressions and self-transitions are rejected.
func Allowed(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from the given one, in the
// order the transition table declares them.
func NextStatuses(from OrderStatus) []OrderStatus {
	next := transitions[from]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}
