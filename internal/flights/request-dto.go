package flights

import (
	"time"

	"github.com/google/uuid"
)

type CreateFlightRequest struct {
	FlightNumber         string    `json:"flight_number" binding:"required"`
	OriginAirportID      uuid.UUID `json:"origin_airport_id" binding:"required"`
	DestinationAirportID uuid.UUID `json:"destination_airport_id" binding:"required"`
	AircraftID           uuid.UUID `json:"aircraft_id" binding:"required"`
	DepartureTime        time.Time `json:"departure_time" binding:"required"`
	ArrivalTime          time.Time `json:"arrival_time" binding:"required"`
	BasePrice            float64   `json:"base_price" binding:"required,gt=0"`
}

type UpdateFlightRequest struct {
	DepartureTime *time.Time    `json:"departure_time"`
	ArrivalTime   *time.Time    `json:"arrival_time"`
	BasePrice     *float64      `json:"base_price"`
	Status        *FlightStatus `json:"status"`
}

type SearchFlightsQuery struct {
	Origin      string `form:"origin" binding:"required,len=3"`
	Destination string `form:"destination" binding:"required,len=3"`
	Date        string `form:"date" binding:"required"` // YYYY-MM-DD
}

type CreateAirportRequest struct {
	Code    string `json:"code" binding:"required,len=3"`
	Name    string `json:"name" binding:"required"`
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required"`
}
