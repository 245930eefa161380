package flights

import (
	"time"

	"github.com/google/uuid"

	"skybook/internal/aircraft"
)

// Airport is a search endpoint keyed by its IATA code.
type Airport struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code      string    `gorm:"unique;not null;size:3" json:"code"`
	Name      string    `gorm:"not null" json:"name"`
	City      string    `gorm:"not null" json:"city"`
	Country   string    `gorm:"not null" json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

// Flight is a scheduled leg between two airports on a specific aircraft.
type Flight struct {
	ID                   uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FlightNumber         string       `gorm:"unique;not null" json:"flight_number"`
	OriginAirportID      uuid.UUID    `gorm:"type:uuid;not null" json:"origin_airport_id"`
	DestinationAirportID uuid.UUID    `gorm:"type:uuid;not null" json:"destination_airport_id"`
	AircraftID           uuid.UUID    `gorm:"type:uuid;not null" json:"aircraft_id"`
	DepartureTime        time.Time    `gorm:"not null;index" json:"departure_time"`
	ArrivalTime          time.Time    `gorm:"not null" json:"arrival_time"`
	BasePrice            float64      `gorm:"not null" json:"base_price"`
	Status               FlightStatus `gorm:"not null;default:'SCHEDULED'" json:"status"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`

	// Relationships
	Origin      *Airport           `json:"origin,omitempty" gorm:"foreignKey:OriginAirportID"`
	Destination *Airport           `json:"destination,omitempty" gorm:"foreignKey:DestinationAirportID"`
	Aircraft    *aircraft.Aircraft `json:"aircraft,omitempty" gorm:"foreignKey:AircraftID"`
}

// TableName sets the table name for Airport
func (Airport) TableName() string {
	return "airports"
}

// TableName sets the table name for Flight
func (Flight) TableName() string {
	return "flights"
}
