package seats

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skybook/internal/aircraft"
	"skybook/internal/bookings"
	"skybook/internal/flights"
	"skybook/internal/shared/clock"
	"skybook/internal/shared/config"
)

// fakeSeatRepo mirrors the transactional hold semantics in memory.
type fakeSeatRepo struct {
	mu       sync.Mutex
	holds    map[string]*SeatHold             // flightID|seat
	bookings map[uuid.UUID]*bookings.Booking  // drafts and confirmed rows
}

func newFakeSeatRepo() *fakeSeatRepo {
	return &fakeSeatRepo{
		holds:    make(map[string]*SeatHold),
		bookings: make(map[uuid.UUID]*bookings.Booking),
	}
}

func holdKey(flightID uuid.UUID, seat string) string {
	return flightID.String() + "|" + seat
}

func (f *fakeSeatRepo) AcquireSeats(ctx context.Context, flightID, userID uuid.UUID, assignments []SeatAssignment, expiresAt time.Time) ([]SeatHold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// validate the whole batch before mutating, all-or-nothing
	for _, a := range assignments {
		for _, b := range f.bookings {
			if b.FlightID == flightID && b.SeatNumber == a.SeatNumber && b.Status == bookings.StatusConfirmed {
				return nil, fmt.Errorf("%w: %s", ErrSeatUnavailable, a.SeatNumber)
			}
		}
		if existing, ok := f.holds[holdKey(flightID, a.SeatNumber)]; ok && existing.UserID != userID {
			return nil, fmt.Errorf("%w: %s", ErrSeatUnavailable, a.SeatNumber)
		}
	}

	out := make([]SeatHold, 0, len(assignments))
	for _, a := range assignments {
		key := holdKey(flightID, a.SeatNumber)
		if existing, ok := f.holds[key]; ok {
			// same-user re-hold replaces hold and draft
			delete(f.bookings, existing.BookingID)
			delete(f.holds, key)
		}

		a.Draft.ID = uuid.New()
		f.bookings[a.Draft.ID] = a.Draft

		hold := &SeatHold{
			ID:         uuid.New(),
			FlightID:   flightID,
			SeatNumber: a.SeatNumber,
			UserID:     userID,
			BookingID:  a.Draft.ID,
			ExpiresAt:  expiresAt,
		}
		f.holds[key] = hold
		out = append(out, *hold)
	}
	return out, nil
}

func (f *fakeSeatRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var released int64
	for key, hold := range f.holds {
		if !hold.ExpiresAt.After(now) {
			if draft, ok := f.bookings[hold.BookingID]; ok && draft.Status == bookings.StatusCreated {
				delete(f.bookings, hold.BookingID)
			}
			delete(f.holds, key)
			released++
		}
	}
	return released, nil
}

func (f *fakeSeatRepo) GetHoldsByFlight(ctx context.Context, flightID uuid.UUID) ([]SeatHold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []SeatHold
	for _, hold := range f.holds {
		if hold.FlightID == flightID {
			out = append(out, *hold)
		}
	}
	return out, nil
}

func (f *fakeSeatRepo) GetUserHolds(ctx context.Context, flightID, userID uuid.UUID) ([]SeatHold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []SeatHold
	for _, hold := range f.holds {
		if hold.FlightID == flightID && hold.UserID == userID {
			out = append(out, *hold)
		}
	}
	return out, nil
}

func (f *fakeSeatRepo) GetConfirmedBookings(ctx context.Context, flightID uuid.UUID) ([]bookings.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []bookings.Booking
	for _, b := range f.bookings {
		if b.FlightID == flightID && b.Status == bookings.StatusConfirmed {
			out = append(out, *b)
		}
	}
	return out, nil
}

// confirmSeat marks a seat occupied directly, simulating a completed booking.
func (f *fakeSeatRepo) confirmSeat(flightID uuid.UUID, seat string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b := &bookings.Booking{
		ID:         uuid.New(),
		PNR:        "CNFRMD",
		FlightID:   flightID,
		SeatNumber: seat,
		Status:     bookings.StatusConfirmed,
	}
	f.bookings[b.ID] = b
}

// fakeFlightGetter serves one flight.
type fakeFlightGetter struct {
	flight *flights.Flight
}

func (f *fakeFlightGetter) GetFlight(ctx context.Context, id uuid.UUID) (*flights.Flight, error) {
	if f.flight == nil || f.flight.ID != id {
		return nil, flights.ErrFlightNotFound
	}
	return f.flight, nil
}

// fakePNRSource hands out sequential codes.
type fakePNRSource struct {
	mu sync.Mutex
	n  int
}

func (f *fakePNRSource) Generate(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return fmt.Sprintf("PNR%03d", f.n), nil
}

func bookingConfig() config.BookingConfig {
	return config.BookingConfig{
		HoldTTL:                 10 * time.Minute,
		PNRMaxAttempts:          50,
		ConfirmedRefundRate:     0.8,
		BusinessClassMultiplier: 2.5,
	}
}

func testFlight(now time.Time) *flights.Flight {
	template := &aircraft.SeatTemplate{
		ID:           uuid.New(),
		Name:         "A320 standard",
		RowCount:     30,
		SeatLetters:  "ABC DEF",
		BusinessRows: "1-3",
	}
	ac := &aircraft.Aircraft{
		ID:           uuid.New(),
		Model:        "A320",
		SeatTemplate: template,
	}
	return &flights.Flight{
		ID:            uuid.New(),
		FlightNumber:  "SB101",
		AircraftID:    ac.ID,
		DepartureTime: now.Add(48 * time.Hour),
		ArrivalTime:   now.Add(50 * time.Hour),
		BasePrice:     1000,
		Status:        flights.StatusScheduled,
		Aircraft:      ac,
	}
}

func setupSeatService(t *testing.T, now time.Time) (Service, *fakeSeatRepo, *clock.Fake, *flights.Flight) {
	t.Helper()

	repo := newFakeSeatRepo()
	clk := clock.NewFake(now)
	flight := testFlight(now)
	svc := NewService(repo, &fakeFlightGetter{flight: flight}, &fakePNRSource{}, clk, bookingConfig())
	return svc, repo, clk, flight
}

func TestHoldSeatsLocksPrices(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, flight := setupSeatService(t, now)
	userID := uuid.New()

	held, err := svc.HoldSeats(context.Background(), flight.ID, userID, []string{"1A", "10A"})
	require.NoError(t, err)

	require.Len(t, held.Seats, 2)
	assert.Equal(t, now.Add(10*time.Minute), held.ExpiresAt)
	assert.NotEmpty(t, held.PNR)

	bySeat := make(map[string]HeldSeat)
	for _, s := range held.Seats {
		bySeat[s.SeatNumber] = s
	}
	assert.Equal(t, 2500.0, bySeat["1A"].Price)
	assert.Equal(t, aircraft.SeatClassBusiness, bySeat["1A"].Class)
	assert.Equal(t, 1000.0, bySeat["10A"].Price)
	assert.Equal(t, aircraft.SeatClassEconomy, bySeat["10A"].Class)
	assert.Equal(t, 3500.0, held.Total)
}

func TestHoldSeatsRejectsUnknownSeat(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, _, flight := setupSeatService(t, now)

	_, err := svc.HoldSeats(context.Background(), flight.ID, uuid.New(), []string{"1A", "99Z"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "99Z")

	// nothing was claimed
	holds, _ := repo.GetHoldsByFlight(context.Background(), flight.ID)
	assert.Empty(t, holds)
}

func TestHoldBatchAtomicity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, _, flight := setupSeatService(t, now)

	alice, bob := uuid.New(), uuid.New()

	_, err := svc.HoldSeats(context.Background(), flight.ID, alice, []string{"5C"})
	require.NoError(t, err)

	// Bob wants 5B and 5C. 5C is Alice's, so he gets neither.
	_, err = svc.HoldSeats(context.Background(), flight.ID, bob, []string{"5B", "5C"})
	require.ErrorIs(t, err, ErrSeatUnavailable)
	assert.Contains(t, err.Error(), "5C")

	holds, _ := repo.GetHoldsByFlight(context.Background(), flight.ID)
	require.Len(t, holds, 1)
	assert.Equal(t, "5C", holds[0].SeatNumber)
	assert.Equal(t, alice, holds[0].UserID)
}

func TestHoldOccupiedSeat(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, _, flight := setupSeatService(t, now)

	repo.confirmSeat(flight.ID, "7A")

	_, err := svc.HoldSeats(context.Background(), flight.ID, uuid.New(), []string{"7A"})
	require.ErrorIs(t, err, ErrSeatUnavailable)
}

func TestReHoldRefreshesTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, clk, flight := setupSeatService(t, now)
	userID := uuid.New()

	first, err := svc.HoldSeats(context.Background(), flight.ID, userID, []string{"5C"})
	require.NoError(t, err)

	clk.Advance(5 * time.Minute)

	second, err := svc.HoldSeats(context.Background(), flight.ID, userID, []string{"5C"})
	require.NoError(t, err)
	assert.Equal(t, first.ExpiresAt.Add(5*time.Minute), second.ExpiresAt)

	// still exactly one hold on the seat
	holds, _ := repo.GetHoldsByFlight(context.Background(), flight.ID)
	require.Len(t, holds, 1)
	assert.Equal(t, second.ExpiresAt, holds[0].ExpiresAt)
}

func TestHoldTTLBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, clk, flight := setupSeatService(t, now)
	userID := uuid.New()

	_, err := svc.HoldSeats(context.Background(), flight.ID, userID, []string{"5C"})
	require.NoError(t, err)

	// 9m59s after acquisition the hold is still live
	clk.Advance(9*time.Minute + 59*time.Second)
	held, err := svc.GetUserHolds(context.Background(), flight.ID, userID)
	require.NoError(t, err)
	require.Len(t, held, 1)

	view, err := svc.Availability(context.Background(), flight.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"5C"}, view.Held)

	// 10m01s after acquisition it is gone
	clk.Advance(2 * time.Second)
	held, err = svc.GetUserHolds(context.Background(), flight.ID, userID)
	require.NoError(t, err)
	assert.Empty(t, held)

	view, err = svc.Availability(context.Background(), flight.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Held)
}

func TestExpiredHoldFreesSeatForOthers(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, clk, flight := setupSeatService(t, now)

	alice, bob := uuid.New(), uuid.New()

	_, err := svc.HoldSeats(context.Background(), flight.ID, alice, []string{"5C"})
	require.NoError(t, err)

	clk.Advance(11 * time.Minute)

	held, err := svc.HoldSeats(context.Background(), flight.ID, bob, []string{"5C"})
	require.NoError(t, err)
	require.Len(t, held.Seats, 1)
}

func TestReleaseExpiredIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, clk, flight := setupSeatService(t, now)

	_, err := svc.HoldSeats(context.Background(), flight.ID, uuid.New(), []string{"5C", "5D"})
	require.NoError(t, err)

	clk.Advance(11 * time.Minute)

	released, err := svc.ReleaseExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, released)

	released, err = svc.ReleaseExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, released)
}

func TestHoldOnDepartedFlight(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, flight := setupSeatService(t, now)

	flight.Status = flights.StatusDeparted

	_, err := svc.HoldSeats(context.Background(), flight.ID, uuid.New(), []string{"5C"})
	assert.ErrorIs(t, err, ErrFlightNotBookable)
}

func TestHoldOnUnknownFlight(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, _ := setupSeatService(t, now)

	_, err := svc.HoldSeats(context.Background(), uuid.New(), uuid.New(), []string{"5C"})
	assert.ErrorIs(t, err, flights.ErrFlightNotFound)
}

func TestSeatMap(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, _, flight := setupSeatService(t, now)

	repo.confirmSeat(flight.ID, "4A")
	_, err := svc.HoldSeats(context.Background(), flight.ID, uuid.New(), []string{"5C"})
	require.NoError(t, err)

	seatMap, err := svc.GetSeatMap(context.Background(), flight.ID)
	require.NoError(t, err)

	// 30 rows x 6 letters
	assert.Equal(t, 180, seatMap.Totals.Total)
	assert.Equal(t, 1, seatMap.Totals.Occupied)
	assert.Equal(t, 1, seatMap.Totals.Held)
	assert.Equal(t, 178, seatMap.Totals.Available)

	byNumber := make(map[string]SeatMapEntry)
	for _, e := range seatMap.Seats {
		byNumber[e.SeatNumber] = e
	}
	assert.Equal(t, SeatOccupied, byNumber["4A"].Status)
	assert.Equal(t, SeatHeld, byNumber["5C"].Status)
	assert.Equal(t, SeatAvailable, byNumber["6F"].Status)
	assert.Equal(t, 2500.0, byNumber["2A"].Price)
	assert.Equal(t, 1000.0, byNumber["10A"].Price)
}

func TestStaffSeatMapShowsPassenger(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo, _, flight := setupSeatService(t, now)

	repo.mu.Lock()
	b := &bookings.Booking{
		ID:                 uuid.New(),
		PNR:                "ABC234",
		FlightID:           flight.ID,
		SeatNumber:         "4A",
		Status:             bookings.StatusConfirmed,
		PassengerFirstName: "Ada",
		PassengerLastName:  "Lovelace",
	}
	repo.bookings[b.ID] = b
	repo.mu.Unlock()

	seatMap, err := svc.GetStaffSeatMap(context.Background(), flight.ID)
	require.NoError(t, err)

	var entry *StaffSeatMapEntry
	for i := range seatMap.Seats {
		if seatMap.Seats[i].SeatNumber == "4A" {
			entry = &seatMap.Seats[i]
			break
		}
	}
	require.NotNil(t, entry)
	assert.Equal(t, SeatOccupied, entry.Status)
	assert.Equal(t, "Ada Lovelace", entry.PassengerName)
	assert.Equal(t, "ABC234", entry.PNR)
	require.NotNil(t, entry.BookingID)
	assert.Equal(t, b.ID, *entry.BookingID)
}

func TestHoldDuplicateSeatsInRequest(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, flight := setupSeatService(t, now)

	_, err := svc.HoldSeats(context.Background(), flight.ID, uuid.New(), []string{"5C", "5C"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, gorm.ErrRecordNotFound))
}
