package seats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"skybook/internal/aircraft"
)

func TestPriceForBusinessRows(t *testing.T) {
	assert.Equal(t, 2500.0, PriceFor(1000, "1A"))
	assert.Equal(t, 2500.0, PriceFor(1000, "2A"))
	assert.Equal(t, 2500.0, PriceFor(1000, "3F"))
	assert.Equal(t, 1000.0, PriceFor(1000, "4A"))
	assert.Equal(t, 1000.0, PriceFor(1000, "10A"))
	assert.Equal(t, 1000.0, PriceFor(1000, "30C"))
}

func TestPriceForMalformedSeat(t *testing.T) {
	assert.Equal(t, 1000.0, PriceFor(1000, "A"))
	assert.Equal(t, 1000.0, PriceFor(1000, ""))
}

func TestPriceForDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, 2500.0, PriceFor(1000, "2A"))
	}
}

func TestPriceForClass(t *testing.T) {
	assert.Equal(t, 2500.0, PriceForClass(1000, aircraft.SeatClassBusiness, 2.5))
	assert.Equal(t, 1000.0, PriceForClass(1000, aircraft.SeatClassEconomy, 2.5))
	assert.Equal(t, 3000.0, PriceForClass(1000, aircraft.SeatClassBusiness, 3.0))

	// Zero multiplier falls back to the default
	assert.Equal(t, 2500.0, PriceForClass(1000, aircraft.SeatClassBusiness, 0))
}
