package seats

import (
	"time"

	"github.com/google/uuid"

	"skybook/internal/aircraft"
)

// SeatHold reserves a seat while the passenger completes payment. The row is
// the source of truth; ExpiresAt is advisory and enforced by the
// reconciliation sweep, never by a background expiry in the store itself.
type SeatHold struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FlightID   uuid.UUID `gorm:"type:uuid;not null;index" json:"flight_id"`
	SeatNumber string    `gorm:"not null" json:"seat_number"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	BookingID  uuid.UUID `gorm:"type:uuid;not null" json:"booking_id"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the table name for SeatHold
func (SeatHold) TableName() string {
	return "seat_holds"
}

// SeatStatus is the derived per-seat state shown on the seat map.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatHeld      SeatStatus = "held"
	SeatOccupied  SeatStatus = "occupied"
)

// SeatAvailability is the derived inventory view for one flight.
type SeatAvailability struct {
	FlightID uuid.UUID `json:"flight_id"`
	Occupied []string  `json:"occupied"`
	Held     []string  `json:"held"`
}

// SeatMapEntry is one seat on the public seat map.
type SeatMapEntry struct {
	SeatNumber string             `json:"seat_number"`
	Row        int                `json:"row"`
	Letter     string             `json:"letter"`
	Class      aircraft.SeatClass `json:"class"`
	Status     SeatStatus         `json:"status"`
	Price      float64            `json:"price"`
}

type SeatMapTotals struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Held      int `json:"held"`
	Occupied  int `json:"occupied"`
}

type SeatMap struct {
	FlightID uuid.UUID      `json:"flight_id"`
	Seats    []SeatMapEntry `json:"seats"`
	Totals   SeatMapTotals  `json:"totals"`
}

// StaffSeatMapEntry extends the public entry with who is sitting there.
type StaffSeatMapEntry struct {
	SeatMapEntry
	PassengerName string     `json:"passenger_name,omitempty"`
	BookingID     *uuid.UUID `json:"booking_id,omitempty"`
	PNR           string     `json:"pnr,omitempty"`
	HeldByUserID  *uuid.UUID `json:"held_by_user_id,omitempty"`
}

type StaffSeatMap struct {
	FlightID uuid.UUID           `json:"flight_id"`
	Seats    []StaffSeatMapEntry `json:"seats"`
	Totals   SeatMapTotals       `json:"totals"`
}

// HeldSeats is the result of a successful hold request.
type HeldSeats struct {
	FlightID  uuid.UUID  `json:"flight_id"`
	PNR       string     `json:"pnr"`
	ExpiresAt time.Time  `json:"expires_at"`
	Seats     []HeldSeat `json:"seats"`
	Total     float64    `json:"total"`
}

type HeldSeat struct {
	SeatNumber string             `json:"seat_number"`
	Class      aircraft.SeatClass `json:"class"`
	Price      float64            `json:"price"`
	BookingID  uuid.UUID          `json:"booking_id"`
}
