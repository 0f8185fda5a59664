package orders

import "tavolo/models"

// forward is the only legal progression of an order. There is no skip-ahead
// and no back-transition; cancelled is terminal and reachable from any
// non-terminal status.
var forward = map[models.OrderStatus]models.OrderStatus{
	models.StatusNew:       models.StatusConfirmed,
	models.StatusConfirmed: models.StatusPreparing,
	models.StatusPreparing: models.StatusReady,
	models.StatusReady:     models.StatusDelivered,
}

// NextStatus returns the single successor in the forward chain, or false when
// the status is terminal.
func NextStatus(s models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := forward[s]
	return next, ok
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(s models.OrderStatus) bool {
	return s == models.StatusDelivered || s == models.StatusCancelled
}

// CanCancel reports whether the order may still be cancelled.
func CanCancel(s models.OrderStatus) bool {
	return !IsTerminal(s)
}

// ValidStatus reports whether s is one of the known statuses. The store
// rejects writes of anything else, so the chain is enforced by the
// authoritative store and not just by dashboard convention.
func ValidStatus(s models.OrderStatus) bool {
	switch s {
	case models.StatusNew, models.StatusConfirmed, models.StatusPreparing,
		models.StatusReady, models.StatusDelivered, models.StatusCancelled:
		return true
	}
	return false
}
