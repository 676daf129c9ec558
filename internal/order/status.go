// Package order renders order progress and the status changes a store
// owner may request. The backend decides whether a change is legal.
package order

import "github.com/dukerupert/dukanam/internal/model"

// Flow is the fixed stepper order.
var Flow = []model.OrderStatus{
	model.OrderPending,
	model.OrderAccepted,
	model.OrderPacked,
	model.OrderShipped,
	model.OrderDelivered,
}

type Step struct {
	Status    model.OrderStatus
	Completed bool
	Current   bool
}

// Index is the position of status in Flow, or -1 for CANCELLED and
// unknown statuses.
func Index(status model.OrderStatus) int {
	for i, s := range Flow {
		if s == status {
			return i
		}
	}
	return -1
}

// Steps marks every step up to and including status as completed and
// status itself as current. A cancelled order highlights nothing.
func Steps(status model.OrderStatus) []Step {
	cur := Index(status)
	steps := make([]Step, len(Flow))
	for i, s := range Flow {
		steps[i] = Step{
			Status:    s,
			Completed: i <= cur,
			Current:   i == cur,
		}
	}
	return steps
}

// Progress is how far along the bar is, from 0 to 1.
func Progress(status model.OrderStatus) float64 {
	i := Index(status)
	if i < 0 {
		return 0
	}
	return float64(i) / float64(len(Flow)-1)
}

// Action is a status change offered to the store owner.
type Action struct {
	Label string
	To    model.OrderStatus
}

// Actions lists the changes offered for an order in status. Delivered and
// cancelled orders offer none.
func Actions(status model.OrderStatus) []Action {
	switch status {
	case model.OrderPending:
		return []Action{
			{Label: "Accept Order", To: model.OrderAccepted},
			{Label: "Decline", To: model.OrderCancelled},
		}
	case model.OrderAccepted:
		return []Action{{Label: "Mark Packed", To: model.OrderPacked}}
	case model.OrderPacked:
		return []Action{{Label: "Mark Shipped", To: model.OrderShipped}}
	case model.OrderShipped:
		return []Action{{Label: "Mark Delivered", To: model.OrderDelivered}}
	default:
		return nil
	}
}

// Terminal reports whether no further action is offered.
func Terminal(status model.OrderStatus) bool {
	return status == model.OrderDelivered || status == model.OrderCancelled
}
