package trade

// OrderStatus is the fulfilment state of an order.
// The stored values are part of the public API and keep their historical spelling.
type OrderStatus string

const (
	OrderStatusNotProcess OrderStatus = "Not Process"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "deliverd"
	OrderStatusCancelled  OrderStatus = "cancel"
)

// AllOrderStatuses lists statuses in fulfilment order
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusNotProcess,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// IsValid checks if the status is a known OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNotProcess, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo allows any move between non-terminal statuses and
// into a terminal one; terminal statuses only accept themselves.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !target.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return s == target
	}
	return true
}

func (s OrderStatus) String() string {
	return string(s)
}
