package flights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range []FlightStatus{StatusScheduled, StatusBoarding, StatusDeparted, StatusArrived, StatusDelayed, StatusCancelled} {
		assert.True(t, s.IsValid(), "%s should be valid", s)
	}
	assert.False(t, FlightStatus("LANDED").IsValid())
	assert.False(t, FlightStatus("").IsValid())
}

func TestCancelledIsSticky(t *testing.T) {
	for _, target := range []FlightStatus{StatusScheduled, StatusBoarding, StatusDeparted, StatusArrived, StatusDelayed} {
		assert.False(t, StatusCancelled.CanTransitionTo(target),
			"CANCELLED must not transition to %s", target)
	}
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestArrivedIsTerminal(t *testing.T) {
	for _, target := range []FlightStatus{StatusScheduled, StatusBoarding, StatusDeparted, StatusDelayed, StatusCancelled} {
		assert.False(t, StatusArrived.CanTransitionTo(target))
	}
	assert.True(t, StatusArrived.IsTerminal())
}

func TestAdminTransitions(t *testing.T) {
	assert.True(t, StatusScheduled.CanTransitionTo(StatusDelayed))
	assert.True(t, StatusScheduled.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusBoarding.CanTransitionTo(StatusDeparted))
	assert.True(t, StatusDelayed.CanTransitionTo(StatusScheduled))
	assert.True(t, StatusDeparted.CanTransitionTo(StatusArrived))

	assert.False(t, StatusDeparted.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusDeparted.CanTransitionTo(StatusScheduled))
	assert.False(t, StatusScheduled.CanTransitionTo(StatusArrived))
	assert.False(t, StatusScheduled.CanTransitionTo(StatusScheduled))
}

func TestIsBookable(t *testing.T) {
	assert.True(t, StatusScheduled.IsBookable())
	assert.True(t, StatusBoarding.IsBookable())
	assert.True(t, StatusDelayed.IsBookable())
	assert.False(t, StatusDeparted.IsBookable())
	assert.False(t, StatusArrived.IsBookable())
	assert.False(t, StatusCancelled.IsBookable())
}
