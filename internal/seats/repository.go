package seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skybook/internal/bookings"
)

var ErrSeatUnavailable = errors.New("seat unavailable")

// SeatAssignment pairs a requested seat with the draft booking built for it.
type SeatAssignment struct {
	SeatNumber string
	Draft      *bookings.Booking
}

type Repository interface {
	AcquireSeats(ctx context.Context, flightID, userID uuid.UUID, assignments []SeatAssignment, expiresAt time.Time) ([]SeatHold, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	GetHoldsByFlight(ctx context.Context, flightID uuid.UUID) ([]SeatHold, error)
	GetUserHolds(ctx context.Context, flightID, userID uuid.UUID) ([]SeatHold, error)
	GetConfirmedBookings(ctx context.Context, flightID uuid.UUID) ([]bookings.Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// AcquireSeats claims a batch of seats in one transaction. The flight row is
// locked FOR UPDATE so concurrent batches for the same flight serialize here;
// first claimant wins, everyone else sees the seat as taken. All-or-nothing:
// one unavailable seat fails the whole batch.
func (r *repository) AcquireSeats(ctx context.Context, flightID, userID uuid.UUID, assignments []SeatAssignment, expiresAt time.Time) ([]SeatHold, error) {
	holds := make([]SeatHold, 0, len(assignments))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize seat claims per flight
		var lockedID uuid.UUID
		err := tx.Raw("SELECT id FROM flights WHERE id = ? FOR UPDATE", flightID).Scan(&lockedID).Error
		if err != nil {
			return err
		}
		if lockedID == uuid.Nil {
			return gorm.ErrRecordNotFound
		}

		for _, a := range assignments {
			// CONFIRMED occupancy wins over everything
			var occupied int64
			err := tx.Model(&bookings.Booking{}).
				Where("flight_id = ? AND seat_number = ? AND status = ?",
					flightID, a.SeatNumber, bookings.StatusConfirmed).
				Count(&occupied).Error
			if err != nil {
				return err
			}
			if occupied > 0 {
				return fmt.Errorf("%w: %s", ErrSeatUnavailable, a.SeatNumber)
			}

			// A live hold by someone else blocks the seat. The caller swept
			// expired holds already, so any row here is live.
			var existing SeatHold
			err = tx.Where("flight_id = ? AND seat_number = ?", flightID, a.SeatNumber).
				First(&existing).Error
			switch {
			case err == nil:
				if existing.UserID != userID {
					return fmt.Errorf("%w: %s", ErrSeatUnavailable, a.SeatNumber)
				}
				// Same user re-holding: replace the hold and its draft so the
				// TTL restarts and the batch stays consistent.
				if err := tx.Delete(&SeatHold{}, "id = ?", existing.ID).Error; err != nil {
					return err
				}
				err = tx.Delete(&bookings.Booking{}, "id = ? AND status = ?",
					existing.BookingID, bookings.StatusCreated).Error
				if err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				// seat is free
			default:
				return err
			}

			if err := tx.Create(a.Draft).Error; err != nil {
				return err
			}

			hold := SeatHold{
				FlightID:   flightID,
				SeatNumber: a.SeatNumber,
				UserID:     userID,
				BookingID:  a.Draft.ID,
				ExpiresAt:  expiresAt,
			}
			if err := tx.Create(&hold).Error; err != nil {
				return err
			}
			holds = append(holds, hold)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return holds, nil
}

// DeleteExpired reaps holds past their expiry together with the CREATED
// drafts backing them. Safe to run from any number of callers at once; rows
// are matched by expiry, so a second sweep finds nothing left to do.
func (r *repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var released int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(`
			DELETE FROM bookings
			WHERE status = ? AND id IN (
				SELECT booking_id FROM seat_holds WHERE expires_at <= ?
			)`, bookings.StatusCreated, now).Error
		if err != nil {
			return err
		}

		result := tx.Where("expires_at <= ?", now).Delete(&SeatHold{})
		if result.Error != nil {
			return result.Error
		}
		released = result.RowsAffected
		return nil
	})
	return released, err
}

func (r *repository) GetHoldsByFlight(ctx context.Context, flightID uuid.UUID) ([]SeatHold, error) {
	var holds []SeatHold
	err := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Order("seat_number ASC").
		Find(&holds).Error
	return holds, err
}

func (r *repository) GetUserHolds(ctx context.Context, flightID, userID uuid.UUID) ([]SeatHold, error) {
	var holds []SeatHold
	err := r.db.WithContext(ctx).
		Where("flight_id = ? AND user_id = ?", flightID, userID).
		Order("seat_number ASC").
		Find(&holds).Error
	return holds, err
}

func (r *repository) GetConfirmedBookings(ctx context.Context, flightID uuid.UUID) ([]bookings.Booking, error) {
	var list []bookings.Booking
	err := r.db.WithContext(ctx).
		Where("flight_id = ? AND status = ?", flightID, bookings.StatusConfirmed).
		Order("seat_number ASC").
		Find(&list).Error
	return list, err
}
