// Package workflow owns the pickup request state machine. Services apply
// events through it rather than writing statuses directly, so an illegal
// jump (e.g. paying out an uncollected pickup) is impossible to express.
package workflow

import (
	"errors"
	"fmt"

	"github.com/recycletrack/recycletrack-backend/internal/models"
)

// Event is a named transition on a pickup request.
type Event string

const (
	EventAssign  Event = "assign"
	EventCollect Event = "collect"
	EventVerify  Event = "verify"
	EventReject  Event = "reject"
)

var ErrIllegalTransition = errors.New("illegal status transition")

var transitions = map[models.PickupStatus]map[Event]models.PickupStatus{
	models.PickupPending: {
		EventAssign: models.PickupAssigned,
		EventReject: models.PickupRejected,
	},
	models.PickupAssigned: {
		EventCollect: models.PickupCollected,
		EventReject:  models.PickupRejected,
	},
	models.PickupCollected: {
		EventVerify: models.PickupVerified,
		EventReject: models.PickupRejected,
	},
}

// Apply returns the status that results from firing event in the current
// status, or ErrIllegalTransition if the state machine forbids it.
func Apply(current models.PickupStatus, event Event) (models.PickupStatus, error) {
	next, ok := transitions[current][event]
	if !ok {
		return current, fmt.Errorf("%w: cannot %s a %s pickup", ErrIllegalTransition, event, current)
	}
	return next, nil
}

// CanApply reports whether event is legal in the current status.
func CanApply(current models.PickupStatus, event Event) bool {
	_, ok := transitions[current][event]
	return ok
}

// Terminal reports whether no further transitions exist from status.
func Terminal(status models.PickupStatus) bool {
	return len(transitions[status]) == 0
}
