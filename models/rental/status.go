package rental

// Status is the rental order lifecycle state.
type Status string

const (
	StatusPendingPayment      Status = "PENDING_PAYMENT"
	StatusWaitingConfirmation Status = "WAITING_CONFIRMATION"
	StatusApproved            Status = "APPROVED"
	StatusWaitingDelivery     Status = "WAITING_DELIVERY"
	StatusInUse               Status = "IN_USE"
	StatusReturned            Status = "RETURNED"
	StatusCancelled           Status = "CANCELLED"
	StatusRejected            Status = "REJECTED"
)

// transitions is the legal move table. The happy path advances one step at
// a time; CANCELLED and REJECTED are failure exits from any non-terminal
// state. RETURNED, CANCELLED and REJECTED accept no further transitions.
var transitions = map[Status][]Status{
	StatusPendingPayment:      {StatusWaitingConfirmation, StatusCancelled, StatusRejected},
	StatusWaitingConfirmation: {StatusApproved, StatusCancelled, StatusRejected},
	StatusApproved:            {StatusWaitingDelivery, StatusCancelled, StatusRejected},
	StatusWaitingDelivery:     {StatusInUse, StatusCancelled, StatusRejected},
	StatusInUse:               {StatusReturned, StatusCancelled, StatusRejected},
	StatusReturned:            {},
	StatusCancelled:           {},
	StatusRejected:            {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether moving from s to next is a legal step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BookedStatuses are the statuses that hold a product's calendar and block
// availability. PENDING_PAYMENT and WAITING_CONFIRMATION are soft holds
// and do not block.
func BookedStatuses() []Status {
	return []Status{StatusApproved, StatusWaitingDelivery, StatusInUse}
}

// ActiveStatuses are all statuses except the failure exits. Used for the
// calendar listing, which shows RETURNED history alongside live bookings.
func ActiveStatuses() []Status {
	return []Status{
		StatusPendingPayment,
		StatusWaitingConfirmation,
		StatusApproved,
		StatusWaitingDelivery,
		StatusInUse,
		StatusReturned,
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPendingPayment,
		StatusWaitingConfirmation,
		StatusApproved,
		StatusWaitingDelivery,
		StatusInUse,
		StatusReturned,
		StatusCancelled,
		StatusRejected,
	}
}
