package cache

import "fmt"

// Cache key builders. All flight-derived keys share the "flights:" prefix so
// a single pattern delete invalidates them together on flight mutations.

func FlightListKey() string {
	return "flights:all"
}

func FlightSearchKey(origin, destination, date string) string {
	return fmt.Sprintf("flights:search:%s:%s:%s", origin, destination, date)
}

func FlightKeyPattern() string {
	return "flights:*"
}
