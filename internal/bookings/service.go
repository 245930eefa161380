package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"skybook/internal/aircraft"
	"skybook/internal/flights"
	"skybook/internal/payments"
	"skybook/internal/shared/clock"
	"skybook/internal/shared/config"
	"skybook/pkg/logger"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrHoldExpired       = errors.New("seat hold has expired")
	ErrForbidden         = errors.New("booking belongs to another user")
	ErrInvalidTransition = errors.New("invalid booking state for this operation")
	ErrSeatOccupied      = errors.New("seat is already occupied")
	ErrCheckInClosed     = errors.New("check-in window is closed")
)

const (
	checkInOpens  = 24 * time.Hour
	checkInCloses = 1 * time.Hour
)

// HeldSeat is a live hold as seen by the confirmation flow.
type HeldSeat struct {
	SeatNumber string
	BookingID  uuid.UUID
	ExpiresAt  time.Time
}

// HoldStore is the slice of the seat inventory the booking lifecycle needs.
// Implementations sweep expired holds before answering.
type HoldStore interface {
	GetUserHolds(ctx context.Context, flightID, userID uuid.UUID) ([]HeldSeat, error)
}

// FlightGetter resolves flights for confirmation and check-in windows.
type FlightGetter interface {
	GetFlight(ctx context.Context, id uuid.UUID) (*flights.Flight, error)
}

// Announcer publishes a passenger-facing announcement.
type Announcer interface {
	Publish(ctx context.Context, flightID uuid.UUID, title, message, createdBy string) error
}

type Service interface {
	Confirm(ctx context.Context, userID uuid.UUID, req ConfirmBookingRequest) (*ConfirmResult, error)
	Cancel(ctx context.Context, bookingID, userID uuid.UUID) (*CancelResult, error)
	AdminCancel(ctx context.Context, bookingID uuid.UUID, staffID string) (*CancelResult, error)
	AdminReassignSeat(ctx context.Context, bookingID uuid.UUID, newSeat, staffID string) (*Booking, error)
	AdminBlockSeat(ctx context.Context, flightID uuid.UUID, seatNumber string, staffID uuid.UUID) (*Booking, error)
	CheckIn(ctx context.Context, ticketID, userID uuid.UUID) (*Ticket, error)
	GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	GetSeatConflicts(ctx context.Context, flightID uuid.UUID) ([]SeatConflict, error)

	SetAnnouncer(announcer Announcer)
}

type service struct {
	repo      Repository
	holds     HoldStore
	gateway   payments.Gateway
	flightSvc FlightGetter
	clk       clock.Clock
	cfg       config.BookingConfig
	logger    *logger.Logger
	announcer Announcer
}

func NewService(repo Repository, holds HoldStore, gateway payments.Gateway, flightSvc FlightGetter, clk clock.Clock, cfg config.BookingConfig) Service {
	return &service{
		repo:      repo,
		holds:     holds,
		gateway:   gateway,
		flightSvc: flightSvc,
		clk:       clk,
		cfg:       cfg,
		logger:    logger.GetDefault(),
	}
}

func (s *service) SetAnnouncer(announcer Announcer) {
	s.announcer = announcer
}

// Confirm turns a user's held seats into confirmed bookings. Every passenger
// seat must still be backed by a live hold; every charge must succeed. One
// declined card aborts the whole batch and leaves the drafts and holds as
// they were, so the user can retry until the holds expire.
func (s *service) Confirm(ctx context.Context, userID uuid.UUID, req ConfirmBookingRequest) (*ConfirmResult, error) {
	method := payments.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return nil, fmt.Errorf("unsupported payment method: %s", req.PaymentMethod)
	}

	seen := make(map[string]bool, len(req.Passengers))
	for _, p := range req.Passengers {
		if seen[p.SeatNumber] {
			return nil, fmt.Errorf("duplicate seat in request: %s", p.SeatNumber)
		}
		seen[p.SeatNumber] = true
	}

	held, err := s.holds.GetUserHolds(ctx, req.FlightID, userID)
	if err != nil {
		return nil, err
	}
	holdBySeat := make(map[string]HeldSeat, len(held))
	for _, h := range held {
		holdBySeat[h.SeatNumber] = h
	}

	now := s.clk.Now()
	drafts := make([]*Booking, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		hold, ok := holdBySeat[p.SeatNumber]
		if !ok || !hold.ExpiresAt.After(now) {
			return nil, fmt.Errorf("%w: %s", ErrHoldExpired, p.SeatNumber)
		}

		draft, err := s.repo.GetByID(ctx, hold.BookingID)
		if err != nil {
			return nil, fmt.Errorf("failed to load draft booking: %w", err)
		}
		if draft.UserID != userID || draft.Status != StatusCreated {
			return nil, fmt.Errorf("%w: %s", ErrHoldExpired, p.SeatNumber)
		}

		draft.PassengerFirstName = strings.TrimSpace(p.FirstName)
		draft.PassengerLastName = strings.TrimSpace(p.LastName)
		draft.PassportNumber = strings.TrimSpace(p.PassportNumber)
		if p.DateOfBirth != "" {
			dob, err := time.Parse("2006-01-02", p.DateOfBirth)
			if err != nil {
				return nil, fmt.Errorf("invalid date_of_birth for seat %s: expected YYYY-MM-DD", p.SeatNumber)
			}
			draft.DateOfBirth = &dob
		}
		drafts = append(drafts, draft)
	}

	// One transaction id covers the batch so payment history shows a single
	// purchase. Charges run sequentially; the mock gateway is deterministic,
	// so a bad card fails on the first seat before anything is captured.
	transactionID := payments.NewTransactionID()
	charged := make([]*Booking, 0, len(drafts))
	for _, draft := range drafts {
		_, err := s.gateway.Charge(ctx, payments.ChargeRequest{
			BookingID:     draft.ID,
			UserID:        userID,
			Amount:        draft.Price,
			Method:        method,
			CardNumber:    req.CardNumber,
			TransactionID: transactionID,
		})
		if err != nil {
			if errors.Is(err, payments.ErrPaymentDeclined) {
				s.logger.LogPaymentDeclined(ctx, draft.ID.String(), req.PaymentMethod)
				s.refundBestEffort(ctx, charged)
			}
			return nil, err
		}
		charged = append(charged, draft)
	}

	confirmedAt := s.clk.Now()
	tickets := make([]*Ticket, 0, len(drafts))
	seatNumbers := make([]string, 0, len(drafts))
	var total float64
	for _, draft := range drafts {
		draft.Status = StatusConfirmed
		draft.ConfirmedAt = &confirmedAt
		tickets = append(tickets, &Ticket{
			BookingID:    draft.ID,
			TicketNumber: newTicketNumber(),
		})
		seatNumbers = append(seatNumbers, draft.SeatNumber)
		total += draft.Price
	}

	if err := s.repo.ConfirmBatch(ctx, drafts, tickets, req.FlightID, userID, confirmedAt); err != nil {
		// Charges were captured but the seats could not be committed: a lost
		// race on the exclusivity index, or a hold that expired while the
		// payment was in flight. Put the money back either way.
		s.refundBestEffort(ctx, drafts)
		if errors.Is(err, ErrHoldExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to confirm bookings: %w", err)
	}

	pnr := drafts[0].PNR
	s.logger.LogBookingConfirmed(ctx, pnr, req.FlightID.String(), userID.String(), seatNumbers)
	s.announce(ctx, req.FlightID, "Booking confirmed",
		fmt.Sprintf("PNR %s confirmed for seats %s", pnr, strings.Join(seatNumbers, ", ")),
		userID.String())

	result := &ConfirmResult{
		PNR:           pnr,
		TransactionID: transactionID,
		Total:         total,
	}
	for _, draft := range drafts {
		result.Bookings = append(result.Bookings, *draft)
	}
	return result, nil
}

// Cancel applies the refund policy and releases the seat. A CREATED draft
// refunds the full locked-in price (nothing was captured yet); a CONFIRMED
// booking refunds at the configured rate and flips its payment to REFUNDED.
func (s *service) Cancel(ctx context.Context, bookingID, userID uuid.UUID) (*CancelResult, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	return s.cancel(ctx, booking, userID.String())
}

// AdminCancel is the staff variant: same policy, no ownership check.
func (s *service) AdminCancel(ctx context.Context, bookingID uuid.UUID, staffID string) (*CancelResult, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, booking, staffID)
}

func (s *service) cancel(ctx context.Context, booking *Booking, actor string) (*CancelResult, error) {
	result := &CancelResult{BookingID: booking.ID.String()}

	switch booking.Status {
	case StatusCreated:
		result.RefundAmount = booking.Price
	case StatusConfirmed:
		result.RefundAmount = booking.Price * s.cfg.ConfirmedRefundRate
		refunded, err := s.gateway.Refund(ctx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to refund payment: %w", err)
		}
		result.RefundIssued = refunded
	default:
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, booking.Status)
	}

	booking.Status = StatusCancelled
	if err := s.repo.CancelBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.logger.LogBookingCancelled(ctx, booking.ID.String(), actor, result.RefundAmount)
	s.announce(ctx, booking.FlightID, "Booking cancelled",
		fmt.Sprintf("Booking for seat %s was cancelled", booking.SeatNumber), actor)
	return result, nil
}

// AdminReassignSeat moves a confirmed passenger to another seat on the same
// flight. The target must exist on the aircraft and be free of confirmed
// bookings. Booking, ticket and boarding pass move together.
func (s *service) AdminReassignSeat(ctx context.Context, bookingID uuid.UUID, newSeat, staffID string) (*Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != StatusConfirmed {
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, booking.Status)
	}
	if newSeat == booking.SeatNumber {
		return nil, fmt.Errorf("booking already holds seat %s", newSeat)
	}

	flight, err := s.flightSvc.GetFlight(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}

	class := booking.SeatClass
	if flight.Aircraft != nil && flight.Aircraft.SeatTemplate != nil {
		template := flight.Aircraft.SeatTemplate
		if !aircraft.HasSeat(template, newSeat) {
			return nil, fmt.Errorf("seat %s does not exist on this aircraft", newSeat)
		}
		for _, ts := range aircraft.ExpandTemplate(template) {
			if ts.SeatNumber == newSeat {
				class = ts.Class
				break
			}
		}
	}

	occupied, err := s.repo.CountConfirmedBySeat(ctx, booking.FlightID, newSeat)
	if err != nil {
		return nil, fmt.Errorf("failed to check target seat: %w", err)
	}
	if occupied > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSeatOccupied, newSeat)
	}

	oldSeat := booking.SeatNumber
	booking.SeatNumber = newSeat
	booking.SeatClass = class

	ticket := booking.Ticket
	if ticket != nil && ticket.BoardingPass != "" {
		ticket.BoardingPass = boardingPassToken(flight.FlightNumber, newSeat, ticket.ID, booking.PassengerLastName)
	}
	if err := s.repo.ReassignSeat(ctx, booking, ticket); err != nil {
		return nil, fmt.Errorf("failed to reassign seat: %w", err)
	}

	s.announce(ctx, booking.FlightID, "Seat change",
		fmt.Sprintf("Your seat on %s changed from %s to %s", flight.FlightNumber, oldSeat, newSeat),
		staffID)
	s.announce(ctx, booking.FlightID, "Seat reassignment",
		fmt.Sprintf("Booking %s moved from %s to %s by staff", booking.PNR, oldSeat, newSeat),
		staffID)
	return booking, nil
}

// AdminBlockSeat takes a seat out of inventory with a zero-price system
// booking. The seat occupies through the same exclusivity rule as any
// confirmed booking.
func (s *service) AdminBlockSeat(ctx context.Context, flightID uuid.UUID, seatNumber string, staffID uuid.UUID) (*Booking, error) {
	flight, err := s.flightSvc.GetFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}

	class := aircraft.SeatClassEconomy
	if flight.Aircraft != nil && flight.Aircraft.SeatTemplate != nil {
		template := flight.Aircraft.SeatTemplate
		if !aircraft.HasSeat(template, seatNumber) {
			return nil, fmt.Errorf("seat %s does not exist on this aircraft", seatNumber)
		}
		for _, ts := range aircraft.ExpandTemplate(template) {
			if ts.SeatNumber == seatNumber {
				class = ts.Class
				break
			}
		}
	}

	occupied, err := s.repo.CountConfirmedBySeat(ctx, flightID, seatNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check seat: %w", err)
	}
	if occupied > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSeatOccupied, seatNumber)
	}

	now := s.clk.Now()
	booking := &Booking{
		PNR:                SystemPNR,
		UserID:             staffID,
		FlightID:           flightID,
		SeatNumber:         seatNumber,
		SeatClass:          class,
		Price:              0,
		Status:             StatusConfirmed,
		PassengerFirstName: SystemPassengerName,
		PassengerLastName:  SystemPassengerLast,
		ConfirmedAt:        &now,
	}
	if err := s.repo.CreateConfirmed(ctx, booking, nil); err != nil {
		return nil, fmt.Errorf("failed to block seat: %w", err)
	}

	s.announce(ctx, flightID, "Seat blocked",
		fmt.Sprintf("Seat %s on %s was blocked by staff", seatNumber, flight.FlightNumber),
		staffID.String())
	return booking, nil
}

// CheckIn issues the boarding pass inside the check-in window (24h to 1h
// before departure). Re-checking an already checked-in ticket returns it
// unchanged.
func (s *service) CheckIn(ctx context.Context, ticketID, userID uuid.UUID) (*Ticket, error) {
	ticket, err := s.repo.GetTicketByID(ctx, ticketID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}

	booking, err := s.getBooking(ctx, ticket.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	if booking.Status != StatusConfirmed {
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, booking.Status)
	}

	if ticket.CheckedIn {
		return ticket, nil
	}

	flight, err := s.flightSvc.GetFlight(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	opens := flight.DepartureTime.Add(-checkInOpens)
	closes := flight.DepartureTime.Add(-checkInCloses)
	if now.Before(opens) || now.After(closes) {
		return nil, fmt.Errorf("%w: opens %s, closes %s",
			ErrCheckInClosed, opens.Format(time.RFC3339), closes.Format(time.RFC3339))
	}

	checkedInAt := now
	ticket.CheckedIn = true
	ticket.CheckedInAt = &checkedInAt
	ticket.BoardingPass = boardingPassToken(flight.FlightNumber, booking.SeatNumber, ticket.ID, booking.PassengerLastName)
	if err := s.repo.UpdateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to check in: %w", err)
	}
	return ticket, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// GetSeatConflicts is the staff overbooking report. It should always come
// back empty; anything else means the exclusivity invariant was violated
// outside this service.
func (s *service) GetSeatConflicts(ctx context.Context, flightID uuid.UUID) ([]SeatConflict, error) {
	return s.repo.GetSeatConflicts(ctx, flightID)
}

func (s *service) getBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return booking, nil
}

func (s *service) refundBestEffort(ctx context.Context, charged []*Booking) {
	for _, booking := range charged {
		if _, err := s.gateway.Refund(ctx, booking.ID); err != nil {
			s.logger.ErrorWithContext(ctx, "failed to refund after aborted confirmation", err,
				map[string]interface{}{"booking_id": booking.ID.String()})
		}
	}
}

func (s *service) announce(ctx context.Context, flightID uuid.UUID, title, message, createdBy string) {
	if s.announcer == nil {
		return
	}
	if err := s.announcer.Publish(ctx, flightID, title, message, createdBy); err != nil {
		s.logger.Warn("failed to publish announcement", "title", title, "error", err)
	}
}

func newTicketNumber() string {
	return "TKT-" + strings.ToUpper(uuid.New().String()[:8])
}

// boardingPassToken builds the scannable boarding pass payload.
func boardingPassToken(flightNumber, seatNumber string, ticketID uuid.UUID, lastName string) string {
	return fmt.Sprintf("BP|%s|%s|%s|%s", flightNumber, seatNumber, ticketID, strings.ToUpper(lastName))
}
