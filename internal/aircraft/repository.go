package aircraft

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateTemplate(ctx context.Context, template *SeatTemplate) error
	GetTemplateByID(ctx context.Context, id uuid.UUID) (*SeatTemplate, error)
	GetAllTemplates(ctx context.Context) ([]SeatTemplate, error)
	CreateAircraft(ctx context.Context, ac *Aircraft) error
	GetAircraftByID(ctx context.Context, id uuid.UUID) (*Aircraft, error)
	GetAllAircraft(ctx context.Context) ([]Aircraft, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTemplate(ctx context.Context, template *SeatTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *repository) GetTemplateByID(ctx context.Context, id uuid.UUID) (*SeatTemplate, error) {
	var template SeatTemplate
	err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *repository) GetAllTemplates(ctx context.Context) ([]SeatTemplate, error) {
	var templates []SeatTemplate
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&templates).Error
	return templates, err
}

func (r *repository) CreateAircraft(ctx context.Context, ac *Aircraft) error {
	return r.db.WithContext(ctx).Create(ac).Error
}

func (r *repository) GetAircraftByID(ctx context.Context, id uuid.UUID) (*Aircraft, error) {
	var ac Aircraft
	err := r.db.WithContext(ctx).Preload("SeatTemplate").First(&ac, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ac, nil
}

func (r *repository) GetAllAircraft(ctx context.Context) ([]Aircraft, error) {
	var list []Aircraft
	err := r.db.WithContext(ctx).Preload("SeatTemplate").Order("created_at DESC").Find(&list).Error
	return list, err
}
