package seats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skybook/internal/aircraft"
	"skybook/internal/bookings"
	"skybook/internal/flights"
	"skybook/internal/shared/clock"
	"skybook/internal/shared/config"
	"skybook/pkg/logger"
)

var ErrFlightNotBookable = errors.New("flight is not open for booking")

// FlightGetter is the slice of the flights service the seat inventory needs.
type FlightGetter interface {
	GetFlight(ctx context.Context, id uuid.UUID) (*flights.Flight, error)
}

// PNRSource mints record locators for hold batches.
type PNRSource interface {
	Generate(ctx context.Context) (string, error)
}

// Announcer publishes a passenger-facing announcement. Implemented by the
// announcements service.
type Announcer interface {
	Publish(ctx context.Context, flightID uuid.UUID, title, message, createdBy string) error
}

type Service interface {
	HoldSeats(ctx context.Context, flightID, userID uuid.UUID, seatNumbers []string) (*HeldSeats, error)
	Availability(ctx context.Context, flightID uuid.UUID) (*SeatAvailability, error)
	GetSeatMap(ctx context.Context, flightID uuid.UUID) (*SeatMap, error)
	GetStaffSeatMap(ctx context.Context, flightID uuid.UUID) (*StaffSeatMap, error)
	ReleaseExpired(ctx context.Context) (int, error)
	GetUserHolds(ctx context.Context, flightID, userID uuid.UUID) ([]bookings.HeldSeat, error)

	SetAnnouncer(announcer Announcer)
}

type service struct {
	repo      Repository
	flightSvc FlightGetter
	pnrs      PNRSource
	clk       clock.Clock
	cfg       config.BookingConfig
	logger    *logger.Logger
	announcer Announcer
}

func NewService(repo Repository, flightSvc FlightGetter, pnrs PNRSource, clk clock.Clock, cfg config.BookingConfig) Service {
	return &service{
		repo:      repo,
		flightSvc: flightSvc,
		pnrs:      pnrs,
		clk:       clk,
		cfg:       cfg,
		logger:    logger.GetDefault(),
	}
}

func (s *service) SetAnnouncer(announcer Announcer) {
	s.announcer = announcer
}

// HoldSeats claims a batch of seats for a user. Expired holds are swept
// first, then the whole batch is acquired atomically with the price locked
// in and a single PNR covering every seat.
func (s *service) HoldSeats(ctx context.Context, flightID, userID uuid.UUID, seatNumbers []string) (*HeldSeats, error) {
	if len(seatNumbers) == 0 {
		return nil, fmt.Errorf("at least one seat is required")
	}

	seen := make(map[string]bool, len(seatNumbers))
	for _, seat := range seatNumbers {
		if seen[seat] {
			return nil, fmt.Errorf("duplicate seat in request: %s", seat)
		}
		seen[seat] = true
	}

	s.sweep(ctx)

	flight, err := s.flightSvc.GetFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if !flight.Status.IsBookable() || !s.clk.Now().Before(flight.DepartureTime) {
		return nil, ErrFlightNotBookable
	}

	classes, err := s.resolveClasses(flight, seatNumbers)
	if err != nil {
		return nil, err
	}

	pnr, err := s.pnrs.Generate(ctx)
	if err != nil {
		return nil, err
	}

	assignments := make([]SeatAssignment, 0, len(seatNumbers))
	for _, seat := range seatNumbers {
		class := classes[seat]
		assignments = append(assignments, SeatAssignment{
			SeatNumber: seat,
			Draft: &bookings.Booking{
				PNR:        pnr,
				UserID:     userID,
				FlightID:   flightID,
				SeatNumber: seat,
				SeatClass:  class,
				Price:      PriceForClass(flight.BasePrice, class, s.cfg.BusinessClassMultiplier),
				Status:     bookings.StatusCreated,
			},
		})
	}

	expiresAt := s.clk.Now().Add(s.cfg.HoldTTL)
	holds, err := s.repo.AcquireSeats(ctx, flightID, userID, assignments, expiresAt)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, flights.ErrFlightNotFound
		}
		return nil, err
	}

	result := &HeldSeats{
		FlightID:  flightID,
		PNR:       pnr,
		ExpiresAt: expiresAt,
		Seats:     make([]HeldSeat, 0, len(holds)),
	}
	for i, a := range assignments {
		result.Seats = append(result.Seats, HeldSeat{
			SeatNumber: a.SeatNumber,
			Class:      a.Draft.SeatClass,
			Price:      a.Draft.Price,
			BookingID:  holds[i].BookingID,
		})
		result.Total += a.Draft.Price
	}

	s.logger.LogSeatsHeld(ctx, flightID.String(), userID.String(), seatNumbers, expiresAt)

	if s.announcer != nil {
		title := fmt.Sprintf("Seats held on %s", flight.FlightNumber)
		message := fmt.Sprintf("Seats %s are held until %s",
			strings.Join(seatNumbers, ", "), expiresAt.Format(time.RFC3339))
		if err := s.announcer.Publish(ctx, flightID, title, message, userID.String()); err != nil {
			s.logger.Warn("failed to publish hold announcement", "flight", flight.FlightNumber, "error", err)
		}
	}

	return result, nil
}

// Availability derives the occupied and held seat sets for a flight.
func (s *service) Availability(ctx context.Context, flightID uuid.UUID) (*SeatAvailability, error) {
	s.sweep(ctx)

	if _, err := s.flightSvc.GetFlight(ctx, flightID); err != nil {
		return nil, err
	}

	confirmed, err := s.repo.GetConfirmedBookings(ctx, flightID)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed bookings: %w", err)
	}
	holds, err := s.repo.GetHoldsByFlight(ctx, flightID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holds: %w", err)
	}

	view := &SeatAvailability{
		FlightID: flightID,
		Occupied: make([]string, 0, len(confirmed)),
		Held:     make([]string, 0, len(holds)),
	}
	for _, b := range confirmed {
		view.Occupied = append(view.Occupied, b.SeatNumber)
	}
	for _, h := range holds {
		view.Held = append(view.Held, h.SeatNumber)
	}
	return view, nil
}

func (s *service) GetSeatMap(ctx context.Context, flightID uuid.UUID) (*SeatMap, error) {
	entries, totals, err := s.buildSeatMap(ctx, flightID)
	if err != nil {
		return nil, err
	}

	seatMap := &SeatMap{FlightID: flightID, Totals: totals}
	seatMap.Seats = make([]SeatMapEntry, 0, len(entries))
	for _, e := range entries {
		seatMap.Seats = append(seatMap.Seats, e.SeatMapEntry)
	}
	return seatMap, nil
}

// GetStaffSeatMap is the crew view: every occupied seat names its passenger
// and booking, every held seat names the holder.
func (s *service) GetStaffSeatMap(ctx context.Context, flightID uuid.UUID) (*StaffSeatMap, error) {
	entries, totals, err := s.buildSeatMap(ctx, flightID)
	if err != nil {
		return nil, err
	}
	return &StaffSeatMap{FlightID: flightID, Seats: entries, Totals: totals}, nil
}

// ReleaseExpired runs one reconciliation sweep and reports how many holds
// were released.
func (s *service) ReleaseExpired(ctx context.Context) (int, error) {
	released, err := s.repo.DeleteExpired(ctx, s.clk.Now())
	s.logger.LogHoldSweep(ctx, int(released), err)
	return int(released), err
}

// GetUserHolds lists a user's live holds on a flight, for confirmation.
func (s *service) GetUserHolds(ctx context.Context, flightID, userID uuid.UUID) ([]bookings.HeldSeat, error) {
	s.sweep(ctx)

	holds, err := s.repo.GetUserHolds(ctx, flightID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holds: %w", err)
	}

	out := make([]bookings.HeldSeat, 0, len(holds))
	for _, h := range holds {
		out = append(out, bookings.HeldSeat{
			SeatNumber: h.SeatNumber,
			BookingID:  h.BookingID,
			ExpiresAt:  h.ExpiresAt,
		})
	}
	return out, nil
}

// sweep runs the reconciliation pass, swallowing errors: a failed sweep must
// never block the read or hold it precedes.
func (s *service) sweep(ctx context.Context) {
	if _, err := s.repo.DeleteExpired(ctx, s.clk.Now()); err != nil {
		s.logger.LogHoldSweep(ctx, 0, err)
	}
}

func (s *service) buildSeatMap(ctx context.Context, flightID uuid.UUID) ([]StaffSeatMapEntry, SeatMapTotals, error) {
	s.sweep(ctx)

	flight, err := s.flightSvc.GetFlight(ctx, flightID)
	if err != nil {
		return nil, SeatMapTotals{}, err
	}
	if flight.Aircraft == nil || flight.Aircraft.SeatTemplate == nil {
		return nil, SeatMapTotals{}, fmt.Errorf("flight %s has no seat template", flight.FlightNumber)
	}

	confirmed, err := s.repo.GetConfirmedBookings(ctx, flightID)
	if err != nil {
		return nil, SeatMapTotals{}, fmt.Errorf("failed to load confirmed bookings: %w", err)
	}
	holds, err := s.repo.GetHoldsByFlight(ctx, flightID)
	if err != nil {
		return nil, SeatMapTotals{}, fmt.Errorf("failed to load holds: %w", err)
	}

	occupiedBy := make(map[string]*bookings.Booking, len(confirmed))
	for i := range confirmed {
		occupiedBy[confirmed[i].SeatNumber] = &confirmed[i]
	}
	heldBy := make(map[string]*SeatHold, len(holds))
	for i := range holds {
		heldBy[holds[i].SeatNumber] = &holds[i]
	}

	template := flight.Aircraft.SeatTemplate
	templateSeats := aircraft.ExpandTemplate(template)

	entries := make([]StaffSeatMapEntry, 0, len(templateSeats))
	totals := SeatMapTotals{Total: len(templateSeats)}
	for _, ts := range templateSeats {
		entry := StaffSeatMapEntry{
			SeatMapEntry: SeatMapEntry{
				SeatNumber: ts.SeatNumber,
				Row:        ts.Row,
				Letter:     ts.Letter,
				Class:      ts.Class,
				Status:     SeatAvailable,
				Price:      PriceForClass(flight.BasePrice, ts.Class, s.cfg.BusinessClassMultiplier),
			},
		}

		if booking, ok := occupiedBy[ts.SeatNumber]; ok {
			entry.Status = SeatOccupied
			entry.PassengerName = strings.TrimSpace(booking.PassengerFirstName + " " + booking.PassengerLastName)
			entry.BookingID = &booking.ID
			entry.PNR = booking.PNR
			totals.Occupied++
		} else if hold, ok := heldBy[ts.SeatNumber]; ok {
			entry.Status = SeatHeld
			entry.HeldByUserID = &hold.UserID
			totals.Held++
		} else {
			totals.Available++
		}
		entries = append(entries, entry)
	}
	return entries, totals, nil
}

// resolveClasses validates each seat against the aircraft's template and
// returns its class. Without a template the row-number fallback applies.
func (s *service) resolveClasses(flight *flights.Flight, seatNumbers []string) (map[string]aircraft.SeatClass, error) {
	classes := make(map[string]aircraft.SeatClass, len(seatNumbers))

	var byNumber map[string]aircraft.TemplateSeat
	if flight.Aircraft != nil && flight.Aircraft.SeatTemplate != nil {
		seats := aircraft.ExpandTemplate(flight.Aircraft.SeatTemplate)
		byNumber = make(map[string]aircraft.TemplateSeat, len(seats))
		for _, ts := range seats {
			byNumber[ts.SeatNumber] = ts
		}
	}

	for _, seat := range seatNumbers {
		if byNumber != nil {
			ts, ok := byNumber[seat]
			if !ok {
				return nil, fmt.Errorf("seat %s does not exist on this aircraft", seat)
			}
			classes[seat] = ts.Class
			continue
		}
		if PriceFor(flight.BasePrice, seat) > flight.BasePrice {
			classes[seat] = aircraft.SeatClassBusiness
		} else {
			classes[seat] = aircraft.SeatClassEconomy
		}
	}
	return classes, nil
}
