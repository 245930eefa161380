package flights

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skybook/internal/aircraft"
	"skybook/internal/shared/clock"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	flights  map[uuid.UUID]*Flight
	airports map[uuid.UUID]*Airport
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		flights:  make(map[uuid.UUID]*Flight),
		airports: make(map[uuid.UUID]*Airport),
	}
}

func (f *fakeRepository) Create(ctx context.Context, flight *Flight) error {
	if flight.ID == uuid.Nil {
		flight.ID = uuid.New()
	}
	f.flights[flight.ID] = flight
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Flight, error) {
	flight, ok := f.flights[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return flight, nil
}

func (f *fakeRepository) GetByFlightNumber(ctx context.Context, flightNumber string) (*Flight, error) {
	for _, flight := range f.flights {
		if flight.FlightNumber == flightNumber {
			return flight, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetAll(ctx context.Context) ([]Flight, error) {
	var list []Flight
	for _, flight := range f.flights {
		list = append(list, *flight)
	}
	return list, nil
}

func (f *fakeRepository) Update(ctx context.Context, flight *Flight) error {
	f.flights[flight.ID] = flight
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.flights, id)
	return nil
}

func (f *fakeRepository) Search(ctx context.Context, originCode, destinationCode string, dayStart, dayEnd, cutoff time.Time) ([]Flight, error) {
	from := dayStart
	if cutoff.After(from) {
		from = cutoff
	}
	var list []Flight
	for _, flight := range f.flights {
		if flight.Status == StatusCancelled {
			continue
		}
		origin := f.airports[flight.OriginAirportID]
		dest := f.airports[flight.DestinationAirportID]
		if origin == nil || dest == nil || origin.Code != originCode || dest.Code != destinationCode {
			continue
		}
		if flight.DepartureTime.Before(from) || !flight.DepartureTime.Before(dayEnd) {
			continue
		}
		list = append(list, *flight)
	}
	return list, nil
}

func (f *fakeRepository) CountAircraftOverlap(ctx context.Context, aircraftID uuid.UUID, departure, arrival time.Time, excludeFlightID uuid.UUID) (int64, error) {
	var count int64
	for _, flight := range f.flights {
		if flight.AircraftID != aircraftID || flight.ID == excludeFlightID || flight.Status == StatusCancelled {
			continue
		}
		if flight.DepartureTime.Before(arrival) && flight.ArrivalTime.After(departure) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) AdvanceStatuses(ctx context.Context, now time.Time, boardingWindow time.Duration) error {
	for _, flight := range f.flights {
		switch flight.Status {
		case StatusScheduled:
			if !flight.ArrivalTime.After(now) {
				flight.Status = StatusArrived
			} else if !flight.DepartureTime.After(now) {
				flight.Status = StatusDeparted
			} else if !flight.DepartureTime.After(now.Add(boardingWindow)) {
				flight.Status = StatusBoarding
			}
		case StatusBoarding:
			if !flight.ArrivalTime.After(now) {
				flight.Status = StatusArrived
			} else if !flight.DepartureTime.After(now) {
				flight.Status = StatusDeparted
			}
		case StatusDeparted:
			if !flight.ArrivalTime.After(now) {
				flight.Status = StatusArrived
			}
		}
	}
	return nil
}

func (f *fakeRepository) CreateAirport(ctx context.Context, airport *Airport) error {
	if airport.ID == uuid.Nil {
		airport.ID = uuid.New()
	}
	f.airports[airport.ID] = airport
	return nil
}

func (f *fakeRepository) GetAirportByID(ctx context.Context, id uuid.UUID) (*Airport, error) {
	airport, ok := f.airports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return airport, nil
}

func (f *fakeRepository) GetAirportByCode(ctx context.Context, code string) (*Airport, error) {
	for _, airport := range f.airports {
		if airport.Code == code {
			return airport, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetAllAirports(ctx context.Context) ([]Airport, error) {
	var list []Airport
	for _, airport := range f.airports {
		list = append(list, *airport)
	}
	return list, nil
}

// fakeAircraftRepo provides a single known aircraft.
type fakeAircraftRepo struct {
	ac *aircraft.Aircraft
}

func (f *fakeAircraftRepo) CreateTemplate(ctx context.Context, t *aircraft.SeatTemplate) error {
	return nil
}

func (f *fakeAircraftRepo) GetTemplateByID(ctx context.Context, id uuid.UUID) (*aircraft.SeatTemplate, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAircraftRepo) GetAllTemplates(ctx context.Context) ([]aircraft.SeatTemplate, error) {
	return nil, nil
}

func (f *fakeAircraftRepo) CreateAircraft(ctx context.Context, ac *aircraft.Aircraft) error {
	return nil
}

func (f *fakeAircraftRepo) GetAircraftByID(ctx context.Context, id uuid.UUID) (*aircraft.Aircraft, error) {
	if f.ac != nil && f.ac.ID == id {
		return f.ac, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAircraftRepo) GetAllAircraft(ctx context.Context) ([]aircraft.Aircraft, error) {
	return nil, nil
}

type fakeAnnouncer struct {
	published []string
}

func (f *fakeAnnouncer) Publish(ctx context.Context, flightID uuid.UUID, title, message, createdBy string) error {
	f.published = append(f.published, title)
	return nil
}

func setupFlightService(t *testing.T, now time.Time) (Service, *fakeRepository, *clock.Fake, uuid.UUID, uuid.UUID, uuid.UUID) {
	t.Helper()

	repo := newFakeRepository()
	clk := clock.NewFake(now)

	origin := &Airport{Code: "DEL", Name: "Indira Gandhi Intl", City: "Delhi", Country: "India"}
	dest := &Airport{Code: "BOM", Name: "Chhatrapati Shivaji Intl", City: "Mumbai", Country: "India"}
	require.NoError(t, repo.CreateAirport(context.Background(), origin))
	require.NoError(t, repo.CreateAirport(context.Background(), dest))

	ac := &aircraft.Aircraft{ID: uuid.New(), Model: "A320", RegistrationNumber: "VT-ABC", Capacity: 120}
	svc := NewService(repo, &fakeAircraftRepo{ac: ac}, clk)

	return svc, repo, clk, origin.ID, dest.ID, ac.ID
}

func TestCreateFlightValidation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, originID, destID, aircraftID := setupFlightService(t, now)
	ctx := context.Background()

	base := CreateFlightRequest{
		FlightNumber:         "SB101",
		OriginAirportID:      originID,
		DestinationAirportID: destID,
		AircraftID:           aircraftID,
		DepartureTime:        now.Add(48 * time.Hour),
		ArrivalTime:          now.Add(50 * time.Hour),
		BasePrice:            1000,
	}

	flight, err := svc.CreateFlight(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, flight.Status)

	// arrival before departure
	bad := base
	bad.FlightNumber = "SB102"
	bad.ArrivalTime = bad.DepartureTime.Add(-time.Hour)
	_, err = svc.CreateFlight(ctx, bad)
	assert.Error(t, err)

	// less than 24h lead time
	bad = base
	bad.FlightNumber = "SB103"
	bad.DepartureTime = now.Add(2 * time.Hour)
	bad.ArrivalTime = now.Add(4 * time.Hour)
	_, err = svc.CreateFlight(ctx, bad)
	assert.Error(t, err)

	// duplicate flight number
	_, err = svc.CreateFlight(ctx, base)
	assert.Error(t, err)

	// aircraft overlap
	overlap := base
	overlap.FlightNumber = "SB104"
	overlap.DepartureTime = base.DepartureTime.Add(time.Hour)
	overlap.ArrivalTime = base.ArrivalTime.Add(time.Hour)
	_, err = svc.CreateFlight(ctx, overlap)
	assert.Error(t, err)

	// same origin and destination
	bad = base
	bad.FlightNumber = "SB105"
	bad.DestinationAirportID = originID
	_, err = svc.CreateFlight(ctx, bad)
	assert.Error(t, err)
}

func TestStatusSchedulerMonotonicity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, clk, originID, destID, aircraftID := setupFlightService(t, now)
	ctx := context.Background()

	flight, err := svc.CreateFlight(ctx, CreateFlightRequest{
		FlightNumber:         "SB201",
		OriginAirportID:      originID,
		DestinationAirportID: destID,
		AircraftID:           aircraftID,
		DepartureTime:        now.Add(48 * time.Hour),
		ArrivalTime:          now.Add(50 * time.Hour),
		BasePrice:            1000,
	})
	require.NoError(t, err)

	// Too early, stays SCHEDULED
	clk.Advance(45 * time.Hour)
	got, err := svc.GetFlight(ctx, flight.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, got.Status)

	// Inside boarding window
	clk.Advance(2 * time.Hour)
	got, err = svc.GetFlight(ctx, flight.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusBoarding, got.Status)

	// Past departure
	clk.Advance(90 * time.Minute)
	got, err = svc.GetFlight(ctx, flight.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDeparted, got.Status)

	// Past arrival
	clk.Advance(2 * time.Hour)
	got, err = svc.GetFlight(ctx, flight.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusArrived, got.Status)

	// Repeated refresh never moves backwards
	require.NoError(t, svc.UpdateStatuses(ctx))
	got, err = svc.GetFlight(ctx, flight.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusArrived, got.Status)

	_ = repo
}

func TestCancelledFlightStaysCancelled(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, clk, originID, destID, aircraftID := setupFlightService(t, now)
	ctx := context.Background()

	flight, err := svc.CreateFlight(ctx, CreateFlightRequest{
		FlightNumber:         "SB301",
		OriginAirportID:      originID,
		DestinationAirportID: destID,
		AircraftID:           aircraftID,
		DepartureTime:        now.Add(48 * time.Hour),
		ArrivalTime:          now.Add(50 * time.Hour),
		BasePrice:            1000,
	})
	require.NoError(t, err)

	cancelled := StatusCancelled
	_, err = svc.UpdateFlight(ctx, flight.ID, UpdateFlightRequest{Status: &cancelled}, "admin-1")
	require.NoError(t, err)

	// The scheduler must not resurrect it, even long past arrival
	clk.Advance(100 * time.Hour)
	got, err := svc.GetFlight(ctx, flight.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	// And no admin transition leaves CANCELLED
	scheduled := StatusScheduled
	_, err = svc.UpdateFlight(ctx, flight.ID, UpdateFlightRequest{Status: &scheduled}, "admin-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateFlightPublishesAnnouncement(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, originID, destID, aircraftID := setupFlightService(t, now)
	ctx := context.Background()

	announcer := &fakeAnnouncer{}
	svc.SetAnnouncer(announcer)

	flight, err := svc.CreateFlight(ctx, CreateFlightRequest{
		FlightNumber:         "SB401",
		OriginAirportID:      originID,
		DestinationAirportID: destID,
		AircraftID:           aircraftID,
		DepartureTime:        now.Add(48 * time.Hour),
		ArrivalTime:          now.Add(50 * time.Hour),
		BasePrice:            1000,
	})
	require.NoError(t, err)

	delayed := StatusDelayed
	_, err = svc.UpdateFlight(ctx, flight.ID, UpdateFlightRequest{Status: &delayed}, "admin-1")
	require.NoError(t, err)
	require.Len(t, announcer.published, 1)
	assert.Contains(t, announcer.published[0], "SB401")
}

func TestSearchFlightsValidation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, _, _, _ := setupFlightService(t, now)
	ctx := context.Background()

	_, err := svc.SearchFlights(ctx, SearchFlightsQuery{Origin: "DEL", Destination: "BOM", Date: "not-a-date"})
	assert.Error(t, err)

	_, err = svc.SearchFlights(ctx, SearchFlightsQuery{Origin: "DEL", Destination: "DEL", Date: "2025-06-03"})
	assert.Error(t, err)
}

func TestSearchFlightsCutoff(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, clk, originID, destID, aircraftID := setupFlightService(t, now)
	ctx := context.Background()

	flight, err := svc.CreateFlight(ctx, CreateFlightRequest{
		FlightNumber:         "SB501",
		OriginAirportID:      originID,
		DestinationAirportID: destID,
		AircraftID:           aircraftID,
		DepartureTime:        now.Add(36 * time.Hour),
		ArrivalTime:          now.Add(38 * time.Hour),
		BasePrice:            1000,
	})
	require.NoError(t, err)

	date := flight.DepartureTime.Format("2006-01-02")

	results, err := svc.SearchFlights(ctx, SearchFlightsQuery{Origin: "DEL", Destination: "BOM", Date: date})
	require.NoError(t, err)
	assert.Len(t, results, 1)

	// Inside the 2h cutoff the flight disappears from search
	clk.Set(flight.DepartureTime.Add(-time.Hour))
	results, err = svc.SearchFlights(ctx, SearchFlightsQuery{Origin: "DEL", Destination: "BOM", Date: date})
	require.NoError(t, err)
	assert.Empty(t, results)

	_ = repo
}
