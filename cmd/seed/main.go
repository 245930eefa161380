package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"skybook/internal/aircraft"
	"skybook/internal/bookings"
	"skybook/internal/flights"
	"skybook/internal/payments"
	"skybook/internal/seats"
	"skybook/internal/shared/config"
	"skybook/internal/shared/database"
)

type Seeder struct {
	db *database.DB

	airports  map[string]uuid.UUID
	aircrafts []aircraft.Aircraft
}

func main() {
	fmt.Println("🌱 Starting Skybook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, airports: make(map[string]uuid.UUID)}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []interface{}{
		&payments.Payment{},
		&bookings.Ticket{},
		&seats.SeatHold{},
		&bookings.Booking{},
		&flights.Flight{},
		&aircraft.Aircraft{},
		&aircraft.SeatTemplate{},
		&flights.Airport{},
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clean table %T: %w", table, err)
		}
	}
	return nil
}

// SeedAll seeds airports, the fleet and a week of flights
func (s *Seeder) SeedAll() error {
	if err := s.seedAirports(); err != nil {
		return fmt.Errorf("airports: %w", err)
	}
	if err := s.seedFleet(); err != nil {
		return fmt.Errorf("fleet: %w", err)
	}
	if err := s.seedFlights(); err != nil {
		return fmt.Errorf("flights: %w", err)
	}
	return nil
}

func (s *Seeder) seedAirports() error {
	airports := []flights.Airport{
		{Code: "DEL", Name: "Indira Gandhi International", City: "New Delhi", Country: "India"},
		{Code: "BOM", Name: "Chhatrapati Shivaji Maharaj International", City: "Mumbai", Country: "India"},
		{Code: "BLR", Name: "Kempegowda International", City: "Bengaluru", Country: "India"},
		{Code: "LHR", Name: "Heathrow", City: "London", Country: "United Kingdom"},
		{Code: "JFK", Name: "John F. Kennedy International", City: "New York", Country: "United States"},
		{Code: "SIN", Name: "Changi", City: "Singapore", Country: "Singapore"},
	}

	pg := s.db.GetPostgreSQL()
	for i := range airports {
		if err := pg.Create(&airports[i]).Error; err != nil {
			return err
		}
		s.airports[airports[i].Code] = airports[i].ID
	}

	fmt.Printf("  ✈️  Seeded %d airports\n", len(airports))
	return nil
}

func (s *Seeder) seedFleet() error {
	templates := []aircraft.SeatTemplate{
		{Name: "A320 single aisle", RowCount: 30, SeatLetters: "ABC DEF", BusinessRows: "1-3"},
		{Name: "B777 twin aisle", RowCount: 40, SeatLetters: "ABC DEFG HJK", BusinessRows: "1-5"},
	}

	pg := s.db.GetPostgreSQL()
	for i := range templates {
		if err := pg.Create(&templates[i]).Error; err != nil {
			return err
		}
	}

	fleet := []aircraft.Aircraft{
		{Model: "Airbus A320", RegistrationNumber: "VT-SKA", SeatTemplateID: templates[0].ID},
		{Model: "Airbus A320", RegistrationNumber: "VT-SKB", SeatTemplateID: templates[0].ID},
		{Model: "Boeing 777-300ER", RegistrationNumber: "VT-SKW", SeatTemplateID: templates[1].ID},
	}
	for i := range fleet {
		template := templates[0]
		if fleet[i].SeatTemplateID == templates[1].ID {
			template = templates[1]
		}
		fleet[i].Capacity = len(aircraft.ExpandTemplate(&template))
		if err := pg.Create(&fleet[i]).Error; err != nil {
			return err
		}
	}
	s.aircrafts = fleet

	fmt.Printf("  🛩️  Seeded %d seat templates, %d aircraft\n", len(templates), len(fleet))
	return nil
}

func (s *Seeder) seedFlights() error {
	type leg struct {
		number      string
		origin      string
		destination string
		duration    time.Duration
		basePrice   float64
		airframe    int
	}

	legs := []leg{
		{"SB101", "DEL", "BOM", 2 * time.Hour, 4500, 0},
		{"SB102", "BOM", "DEL", 2 * time.Hour, 4500, 0},
		{"SB201", "DEL", "BLR", 150 * time.Minute, 5200, 1},
		{"SB301", "BOM", "SIN", 5 * time.Hour, 14000, 2},
		{"SB401", "DEL", "LHR", 9 * time.Hour, 32000, 2},
		{"SB501", "LHR", "JFK", 8 * time.Hour, 28000, 2},
	}

	pg := s.db.GetPostgreSQL()
	count := 0
	base := time.Now().UTC().Truncate(time.Hour)

	// one departure per leg per day for the next 7 days
	for day := 1; day <= 7; day++ {
		for i, l := range legs {
			departure := base.AddDate(0, 0, day).Add(time.Duration(6+2*i) * time.Hour)
			flight := flights.Flight{
				FlightNumber:         fmt.Sprintf("%s-%d", l.number, day),
				OriginAirportID:      s.airports[l.origin],
				DestinationAirportID: s.airports[l.destination],
				AircraftID:           s.aircrafts[l.airframe].ID,
				DepartureTime:        departure,
				ArrivalTime:          departure.Add(l.duration),
				BasePrice:            l.basePrice,
				Status:               flights.StatusScheduled,
			}
			if err := pg.Create(&flight).Error; err != nil {
				return err
			}
			count++
		}
	}

	fmt.Printf("  🗓️  Seeded %d flights over the next week\n", count)
	return nil
}
