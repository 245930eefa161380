package flights

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, flight *Flight) error
	GetByID(ctx context.Context, id uuid.UUID) (*Flight, error)
	GetByFlightNumber(ctx context.Context, flightNumber string) (*Flight, error)
	GetAll(ctx context.Context) ([]Flight, error)
	Update(ctx context.Context, flight *Flight) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, originCode, destinationCode string, dayStart, dayEnd, cutoff time.Time) ([]Flight, error)
	CountAircraftOverlap(ctx context.Context, aircraftID uuid.UUID, departure, arrival time.Time, excludeFlightID uuid.UUID) (int64, error)
	AdvanceStatuses(ctx context.Context, now time.Time, boardingWindow time.Duration) error

	CreateAirport(ctx context.Context, airport *Airport) error
	GetAirportByID(ctx context.Context, id uuid.UUID) (*Airport, error)
	GetAirportByCode(ctx context.Context, code string) (*Airport, error)
	GetAllAirports(ctx context.Context) ([]Airport, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, flight *Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Flight, error) {
	var flight Flight
	err := r.db.WithContext(ctx).
		Preload("Origin").
		Preload("Destination").
		Preload("Aircraft").
		Preload("Aircraft.SeatTemplate").
		First(&flight, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *repository) GetByFlightNumber(ctx context.Context, flightNumber string) (*Flight, error) {
	var flight Flight
	err := r.db.WithContext(ctx).First(&flight, "flight_number = ?", flightNumber).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Flight, error) {
	var list []Flight
	err := r.db.WithContext(ctx).
		Preload("Origin").
		Preload("Destination").
		Order("departure_time ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, flight *Flight) error {
	return r.db.WithContext(ctx).Save(flight).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Flight{}, "id = ?", id).Error
}

// Search returns bookable flights between two airports departing inside
// [dayStart, dayEnd) and no earlier than cutoff. CANCELLED flights are
// excluded.
func (r *repository) Search(ctx context.Context, originCode, destinationCode string, dayStart, dayEnd, cutoff time.Time) ([]Flight, error) {
	from := dayStart
	if cutoff.After(from) {
		from = cutoff
	}

	var list []Flight
	err := r.db.WithContext(ctx).
		Joins("JOIN airports origin ON origin.id = flights.origin_airport_id").
		Joins("JOIN airports dest ON dest.id = flights.destination_airport_id").
		Where("origin.code = ? AND dest.code = ?", originCode, destinationCode).
		Where("flights.departure_time >= ? AND flights.departure_time < ?", from, dayEnd).
		Where("flights.status != ?", StatusCancelled).
		Preload("Origin").
		Preload("Destination").
		Order("flights.departure_time ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) CountAircraftOverlap(ctx context.Context, aircraftID uuid.UUID, departure, arrival time.Time, excludeFlightID uuid.UUID) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&Flight{}).
		Where("aircraft_id = ?", aircraftID).
		Where("status != ?", StatusCancelled).
		Where("departure_time < ? AND arrival_time > ?", arrival, departure)
	if excludeFlightID != uuid.Nil {
		query = query.Where("id != ?", excludeFlightID)
	}
	err := query.Count(&count).Error
	return count, err
}

// AdvanceStatuses moves flights along the time-driven status order using
// guarded conditional updates, so concurrent invocations are harmless and a
// flight never moves backwards. DELAYED and CANCELLED rows are left alone.
func (r *repository) AdvanceStatuses(ctx context.Context, now time.Time, boardingWindow time.Duration) error {
	db := r.db.WithContext(ctx)

	// SCHEDULED -> BOARDING once inside the boarding window
	err := db.Model(&Flight{}).
		Where("status = ?", StatusScheduled).
		Where("departure_time > ? AND departure_time <= ?", now, now.Add(boardingWindow)).
		Update("status", StatusBoarding).Error
	if err != nil {
		return err
	}

	// SCHEDULED/BOARDING -> DEPARTED once departure has passed
	err = db.Model(&Flight{}).
		Where("status IN ?", []FlightStatus{StatusScheduled, StatusBoarding}).
		Where("departure_time <= ? AND arrival_time > ?", now, now).
		Update("status", StatusDeparted).Error
	if err != nil {
		return err
	}

	// Anything past arrival lands, including flights the sweeper missed
	return db.Model(&Flight{}).
		Where("status IN ?", []FlightStatus{StatusScheduled, StatusBoarding, StatusDeparted}).
		Where("arrival_time <= ?", now).
		Update("status", StatusArrived).Error
}

func (r *repository) CreateAirport(ctx context.Context, airport *Airport) error {
	return r.db.WithContext(ctx).Create(airport).Error
}

func (r *repository) GetAirportByID(ctx context.Context, id uuid.UUID) (*Airport, error) {
	var airport Airport
	err := r.db.WithContext(ctx).First(&airport, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &airport, nil
}

func (r *repository) GetAirportByCode(ctx context.Context, code string) (*Airport, error) {
	var airport Airport
	err := r.db.WithContext(ctx).First(&airport, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &airport, nil
}

func (r *repository) GetAllAirports(ctx context.Context) ([]Airport, error) {
	var list []Airport
	err := r.db.WithContext(ctx).Order("code ASC").Find(&list).Error
	return list, err
}
