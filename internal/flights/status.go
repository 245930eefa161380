package flights

// FlightStatus tracks a flight through its operational lifecycle.
type FlightStatus string

const (
	StatusScheduled FlightStatus = "SCHEDULED"
	StatusBoarding  FlightStatus = "BOARDING"
	StatusDeparted  FlightStatus = "DEPARTED"
	StatusArrived   FlightStatus = "ARRIVED"
	StatusDelayed   FlightStatus = "DELAYED"
	StatusCancelled FlightStatus = "CANCELLED"
)

// timeOrder ranks the time-driven statuses. The scheduler only ever moves a
// flight forward along this order. DELAYED and CANCELLED sit outside it and
// are admin-set.
var timeOrder = map[FlightStatus]int{
	StatusScheduled: 0,
	StatusBoarding:  1,
	StatusDeparted:  2,
	StatusArrived:   3,
}

func (s FlightStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusBoarding, StatusDeparted, StatusArrived, StatusDelayed, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s FlightStatus) IsTerminal() bool {
	return s == StatusArrived || s == StatusCancelled
}

// IsBookable reports whether seats on the flight can still be held.
func (s FlightStatus) IsBookable() bool {
	return s == StatusScheduled || s == StatusBoarding || s == StatusDelayed
}

// CanTransitionTo validates admin-initiated status changes.
func (s FlightStatus) CanTransitionTo(target FlightStatus) bool {
	if s == target {
		return false
	}
	switch s {
	case StatusScheduled:
		return target == StatusBoarding || target == StatusDeparted ||
			target == StatusDelayed || target == StatusCancelled
	case StatusBoarding:
		return target == StatusDeparted || target == StatusDelayed || target == StatusCancelled
	case StatusDelayed:
		return target == StatusScheduled || target == StatusBoarding ||
			target == StatusDeparted || target == StatusCancelled
	case StatusDeparted:
		return target == StatusArrived
	default:
		// ARRIVED and CANCELLED are terminal
		return false
	}
}
