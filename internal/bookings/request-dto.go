package bookings

import "github.com/google/uuid"

type PassengerAssignment struct {
	SeatNumber     string `json:"seat_number" binding:"required"`
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	PassportNumber string `json:"passport_number"`
	DateOfBirth    string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
}

type ConfirmBookingRequest struct {
	FlightID      uuid.UUID             `json:"flight_id" binding:"required"`
	PaymentMethod string                `json:"payment_method" binding:"required"`
	CardNumber    string                `json:"card_number"`
	Passengers    []PassengerAssignment `json:"passengers" binding:"required,min=1,dive"`
}

type ReassignSeatRequest struct {
	SeatNumber string `json:"seat_number" binding:"required"`
}

type BlockSeatRequest struct {
	SeatNumber string `json:"seat_number" binding:"required"`
}
