package announcements

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, announcement *Announcement) error
	GetByFlightID(ctx context.Context, flightID uuid.UUID) ([]Announcement, error)
	GetRecent(ctx context.Context, limit int) ([]Announcement, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, announcement *Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *repository) GetByFlightID(ctx context.Context, flightID uuid.UUID) ([]Announcement, error) {
	var list []Announcement
	err := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) GetRecent(ctx context.Context, limit int) ([]Announcement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var list []Announcement
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
