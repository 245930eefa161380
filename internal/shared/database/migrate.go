package database

import (
	"skybook/internal/aircraft"
	"skybook/internal/announcements"
	"skybook/internal/bookings"
	"skybook/internal/flights"
	"skybook/internal/payments"
	"skybook/internal/seats"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&flights.Airport{},
		&aircraft.SeatTemplate{},
		&aircraft.Aircraft{},
		&flights.Flight{},
		&seats.SeatHold{},
		&bookings.Booking{},
		&bookings.Ticket{},
		&payments.Payment{},
		&announcements.Announcement{},
	)
}
