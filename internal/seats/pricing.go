package seats

import (
	"strconv"

	"skybook/internal/aircraft"
)

// DefaultBusinessMultiplier scales the base price for business class seats.
const DefaultBusinessMultiplier = 2.5

// defaultBusinessRowMax marks rows 1..3 as business when the aircraft has no
// seat template to say otherwise.
const defaultBusinessRowMax = 3

// PriceFor prices a seat from the flight's base price using the row-number
// fallback rule. Pure and deterministic.
func PriceFor(basePrice float64, seatNumber string) float64 {
	if row := seatRow(seatNumber); row >= 1 && row <= defaultBusinessRowMax {
		return basePrice * DefaultBusinessMultiplier
	}
	return basePrice
}

// PriceForClass prices a seat whose class is known from the seat template.
func PriceForClass(basePrice float64, class aircraft.SeatClass, multiplier float64) float64 {
	if multiplier <= 0 {
		multiplier = DefaultBusinessMultiplier
	}
	if class == aircraft.SeatClassBusiness {
		return basePrice * multiplier
	}
	return basePrice
}

// seatRow parses the leading digits of a seat number like "12C". Malformed
// seat numbers report row 0 and price at base.
func seatRow(seatNumber string) int {
	i := 0
	for i < len(seatNumber) && seatNumber[i] >= '0' && seatNumber[i] <= '9' {
		i++
	}
	row, err := strconv.Atoi(seatNumber[:i])
	if err != nil {
		return 0
	}
	return row
}
