package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database constraints the seat exclusivity
// invariant depends on. AutoMigrate cannot express partial indexes.
func MigrateConstraints(db *gorm.DB) error {
	// At most one CONFIRMED booking per seat per flight. The row lock in
	// HoldSeats/Confirm prevents the race; this index is the backstop.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_confirmed_flight_seat
		ON bookings (flight_id, seat_number)
		WHERE status = 'CONFIRMED';
	`).Error
	if err != nil {
		return err
	}

	// A seat can only carry one live hold.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_hold_flight_seat
		ON seat_holds (flight_id, seat_number);
	`).Error
	if err != nil {
		return err
	}

	// Sweep scans by expiry.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seat_holds_expires_at
		ON seat_holds (expires_at);
	`).Error
	if err != nil {
		return err
	}

	// Seat map derivation filters by flight and status.
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_flight_status
		ON bookings (flight_id, status);
	`).Error
}
