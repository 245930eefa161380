package bookings

import (
	"time"

	"github.com/google/uuid"

	"skybook/internal/aircraft"
)

// Booking tracks one seat on one flight for one passenger. A booking starts
// as a CREATED draft when the seat is held and only counts against seat
// availability once CONFIRMED.
type Booking struct {
	ID         uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PNR        string             `gorm:"not null;size:6;index" json:"pnr"`
	UserID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	FlightID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"flight_id"`
	SeatNumber string             `gorm:"not null" json:"seat_number"`
	SeatClass  aircraft.SeatClass `gorm:"not null" json:"seat_class"`
	Price      float64            `gorm:"not null" json:"price"`
	Status     BookingStatus      `gorm:"not null;default:'CREATED'" json:"status"`

	PassengerFirstName string     `json:"passenger_first_name"`
	PassengerLastName  string     `json:"passenger_last_name"`
	PassportNumber     string     `gorm:"index" json:"passport_number,omitempty"`
	DateOfBirth        *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`

	// Relationships
	Ticket *Ticket `json:"ticket,omitempty" gorm:"foreignKey:BookingID"`
}

// Ticket is minted when a booking is confirmed. The boarding pass token is
// set at check-in.
type Ticket struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`
	TicketNumber string     `gorm:"not null;unique" json:"ticket_number"`
	BoardingPass string     `json:"boarding_pass,omitempty"`
	CheckedIn    bool       `gorm:"not null;default:false" json:"checked_in"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}

// System bookings mark seats blocked by staff. They are CONFIRMED rows with
// a zero price so they occupy the seat through the normal exclusivity rule.
const (
	SystemPNR           = "SYSTEM"
	SystemPassengerName = "SYSTEM"
	SystemPassengerLast = "BLOCK"
)

// IsSystemBlock reports whether the booking is a staff seat block.
func (b *Booking) IsSystemBlock() bool {
	return b.PNR == SystemPNR
}
