package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SeatConflict struct {
	SeatNumber string    `json:"seat_number"`
	Bookings   []Booking `json:"bookings"`
}

type Repository interface {
	PNRExists(ctx context.Context, pnr string) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	GetConfirmedByFlight(ctx context.Context, flightID uuid.UUID) ([]Booking, error)
	CountConfirmedBySeat(ctx context.Context, flightID uuid.UUID, seatNumber string) (int64, error)
	GetSeatConflicts(ctx context.Context, flightID uuid.UUID) ([]SeatConflict, error)

	ConfirmBatch(ctx context.Context, bookings []*Booking, tickets []*Ticket, flightID, userID uuid.UUID, now time.Time) error
	CancelBooking(ctx context.Context, booking *Booking) error
	CreateConfirmed(ctx context.Context, booking *Booking, ticket *Ticket) error
	ReassignSeat(ctx context.Context, booking *Booking, ticket *Ticket) error

	GetTicketByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	UpdateTicket(ctx context.Context, ticket *Ticket) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) PNRExists(ctx context.Context, pnr string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Booking{}).Where("pnr = ?", pnr).Count(&count).Error
	return count > 0, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Ticket").First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var list []Booking
	err := r.db.WithContext(ctx).
		Preload("Ticket").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) GetConfirmedByFlight(ctx context.Context, flightID uuid.UUID) ([]Booking, error) {
	var list []Booking
	err := r.db.WithContext(ctx).
		Where("flight_id = ? AND status = ?", flightID, StatusConfirmed).
		Order("seat_number ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) CountConfirmedBySeat(ctx context.Context, flightID uuid.UUID, seatNumber string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("flight_id = ? AND seat_number = ? AND status = ?", flightID, seatNumber, StatusConfirmed).
		Count(&count).Error
	return count, err
}

// GetSeatConflicts reports seats carrying more than one CONFIRMED booking.
// With the partial unique index in place this should always come back empty;
// staff use it to verify exactly that.
func (r *repository) GetSeatConflicts(ctx context.Context, flightID uuid.UUID) ([]SeatConflict, error) {
	var seatNumbers []string
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Select("seat_number").
		Where("flight_id = ? AND status = ?", flightID, StatusConfirmed).
		Group("seat_number").
		Having("COUNT(*) > 1").
		Pluck("seat_number", &seatNumbers).Error
	if err != nil {
		return nil, err
	}

	conflicts := make([]SeatConflict, 0, len(seatNumbers))
	for _, seat := range seatNumbers {
		var list []Booking
		err := r.db.WithContext(ctx).
			Where("flight_id = ? AND seat_number = ? AND status = ?", flightID, seat, StatusConfirmed).
			Find(&list).Error
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, SeatConflict{SeatNumber: seat, Bookings: list})
	}
	return conflicts, nil
}

// ConfirmBatch commits a confirmation atomically: every draft flips to
// CONFIRMED, every ticket is minted and the confirmed seats' holds are
// consumed. The flight row is locked FOR UPDATE like hold acquisition, and
// each draft's hold is re-verified inside the transaction, so a sweep or
// cancellation racing with the payment step rolls the whole batch back
// instead of resurrecting a reaped draft. Seats the user holds but is not
// confirming stay held.
func (r *repository) ConfirmBatch(ctx context.Context, bookings []*Booking, tickets []*Ticket, flightID, userID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lockedID uuid.UUID
		err := tx.Raw("SELECT id FROM flights WHERE id = ? FOR UPDATE", flightID).Scan(&lockedID).Error
		if err != nil {
			return err
		}
		if lockedID == uuid.Nil {
			return gorm.ErrRecordNotFound
		}

		seatNumbers := make([]string, 0, len(bookings))
		for _, booking := range bookings {
			var live int64
			err := tx.Raw(
				"SELECT COUNT(*) FROM seat_holds WHERE flight_id = ? AND user_id = ? AND seat_number = ? AND expires_at > ?",
				flightID, userID, booking.SeatNumber, now,
			).Scan(&live).Error
			if err != nil {
				return err
			}
			if live == 0 {
				return fmt.Errorf("%w: %s", ErrHoldExpired, booking.SeatNumber)
			}

			// Guarded on the draft still being CREATED; zero rows means a
			// concurrent sweep or cancellation got there first.
			result := tx.Model(&Booking{}).
				Where("id = ? AND status = ?", booking.ID, StatusCreated).
				Updates(map[string]interface{}{
					"status":               booking.Status,
					"confirmed_at":         booking.ConfirmedAt,
					"passenger_first_name": booking.PassengerFirstName,
					"passenger_last_name":  booking.PassengerLastName,
					"passport_number":      booking.PassportNumber,
					"date_of_birth":        booking.DateOfBirth,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrHoldExpired, booking.SeatNumber)
			}
			seatNumbers = append(seatNumbers, booking.SeatNumber)
		}

		for _, ticket := range tickets {
			if err := tx.Create(ticket).Error; err != nil {
				return err
			}
		}
		return tx.Exec(
			"DELETE FROM seat_holds WHERE flight_id = ? AND user_id = ? AND seat_number IN ?",
			flightID, userID, seatNumbers,
		).Error
	})
}

// CancelBooking persists the cancellation and releases everything hanging off
// the booking: its ticket and, for drafts, the backing hold.
func (r *repository) CancelBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(booking).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Ticket{}, "booking_id = ?", booking.ID).Error; err != nil {
			return err
		}
		return tx.Exec(
			"DELETE FROM seat_holds WHERE flight_id = ? AND seat_number = ?",
			booking.FlightID, booking.SeatNumber,
		).Error
	})
}

// CreateConfirmed inserts a booking that is born CONFIRMED (staff seat
// blocks). The partial unique index rejects it if the seat is already taken.
func (r *repository) CreateConfirmed(ctx context.Context, booking *Booking, ticket *Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		if ticket != nil {
			ticket.BookingID = booking.ID
			return tx.Create(ticket).Error
		}
		return nil
	})
}

// ReassignSeat moves a booking and its ticket together.
func (r *repository) ReassignSeat(ctx context.Context, booking *Booking, ticket *Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(booking).Error; err != nil {
			return err
		}
		if ticket != nil {
			return tx.Save(ticket).Error
		}
		return nil
	})
}

func (r *repository) GetTicketByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) UpdateTicket(ctx context.Context, ticket *Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

// IsNotFound reports whether err is the storage-level missing row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
