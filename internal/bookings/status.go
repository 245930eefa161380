package bookings

// BookingStatus is the booking lifecycle state. CREATED drafts back live
// holds; CONFIRMED bookings occupy seats; CANCELLED is terminal.
type BookingStatus string

const (
	StatusCreated   BookingStatus = "CREATED"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusCreated, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case StatusCreated:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCancelled
	default:
		return false
	}
}
