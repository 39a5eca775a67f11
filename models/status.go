package models

// Status is the lifecycle state of an appointment as reported by the backend.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCancelled}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Upcoming reports whether the appointment still lies ahead of the customer.
func (s Status) Upcoming() bool {
	return s == StatusPending || s == StatusApproved
}

// Action is a state-changing request a view can issue for an appointment.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionDelete   Action = "delete"
)

// ActionSet is the set of actions offered for one status.
type ActionSet map[Action]struct{}

// Has reports whether a is in the set.
func (s ActionSet) Has(a Action) bool {
	_, ok := s[a]
	return ok
}

func newActionSet(actions ...Action) ActionSet {
	set := make(ActionSet, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

// AllowedActions returns the actions a view may offer for status.
//
// Pending can be approved, rejected or cancelled; Approved can be completed
// or cancelled. Delete is always offered so history can be cleaned up.
// Unknown statuses only allow delete.
func AllowedActions(status Status) ActionSet {
	switch status {
	case StatusPending:
		return newActionSet(ActionApprove, ActionReject, ActionCancel, ActionDelete)
	case StatusApproved:
		return newActionSet(ActionComplete, ActionCancel, ActionDelete)
	default:
		return newActionSet(ActionDelete)
	}
}

// RequiresConfirmation reports whether the action must be confirmed in a dialog first.
func RequiresConfirmation(a Action) bool {
	switch a {
	case ActionReject, ActionCancel, ActionDelete:
		return true
	}
	return false
}

// Destructive reports whether the confirmation dialog is rendered as dangerous.
func Destructive(a Action) bool {
	return RequiresConfirmation(a)
}

// ResultStatus is the local status applied after a successful action.
// Cancel and delete drop the row instead.
func ResultStatus(a Action) (Status, bool) {
	switch a {
	case ActionApprove:
		return StatusApproved, true
	case ActionReject:
		return StatusRejected, true
	case ActionComplete:
		return StatusCompleted, true
	}
	return "", false
}
