package rental

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}
	assert.False(t, Status("SHIPPED").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestHappyPathAdvancesOneStepAtATime(t *testing.T) {
	path := []Status{
		StatusPendingPayment,
		StatusWaitingConfirmation,
		StatusApproved,
		StatusWaitingDelivery,
		StatusInUse,
		StatusReturned,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, path[i].CanTransitionTo(path[i+1]),
			"expected %s -> %s to be legal", path[i], path[i+1])
	}

	// Skipping a step is never legal.
	assert.False(t, StatusPendingPayment.CanTransitionTo(StatusApproved))
	assert.False(t, StatusWaitingConfirmation.CanTransitionTo(StatusInUse))
	assert.False(t, StatusApproved.CanTransitionTo(StatusReturned))

	// Moving backwards is never legal.
	assert.False(t, StatusApproved.CanTransitionTo(StatusWaitingConfirmation))
	assert.False(t, StatusInUse.CanTransitionTo(StatusWaitingDelivery))
}

func TestFailureExitsFromAnyNonTerminalState(t *testing.T) {
	nonTerminal := []Status{
		StatusPendingPayment,
		StatusWaitingConfirmation,
		StatusApproved,
		StatusWaitingDelivery,
		StatusInUse,
	}
	for _, s := range nonTerminal {
		assert.True(t, s.CanTransitionTo(StatusCancelled), "expected %s -> CANCELLED", s)
		assert.True(t, s.CanTransitionTo(StatusRejected), "expected %s -> REJECTED", s)
	}
}

func TestTerminalStatesAcceptNothing(t *testing.T) {
	for _, terminal := range []Status{StatusReturned, StatusCancelled, StatusRejected} {
		assert.True(t, terminal.IsTerminal())
		for _, next := range AllStatuses() {
			assert.False(t, terminal.CanTransitionTo(next),
				"expected %s -> %s to be illegal", terminal, next)
		}
	}
	assert.False(t, StatusInUse.IsTerminal())
}

func TestBookedStatusesExcludeSoftHolds(t *testing.T) {
	booked := BookedStatuses()
	assert.ElementsMatch(t, []Status{StatusApproved, StatusWaitingDelivery, StatusInUse}, booked)
	assert.NotContains(t, booked, StatusPendingPayment)
	assert.NotContains(t, booked, StatusWaitingConfirmation)
	assert.NotContains(t, booked, StatusCancelled)
	assert.NotContains(t, booked, StatusRejected)
}

func TestActiveStatusesExcludeFailureExits(t *testing.T) {
	active := ActiveStatuses()
	assert.Contains(t, active, StatusReturned)
	assert.NotContains(t, active, StatusCancelled)
	assert.NotContains(t, active, StatusRejected)
}
