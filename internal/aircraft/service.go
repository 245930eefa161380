package aircraft

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound = errors.New("seat template not found")
	ErrAircraftNotFound = errors.New("aircraft not found")
)

type Service interface {
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*SeatTemplate, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*SeatTemplate, error)
	GetAllTemplates(ctx context.Context) ([]SeatTemplate, error)
	CreateAircraft(ctx context.Context, req CreateAircraftRequest) (*Aircraft, error)
	GetAircraft(ctx context.Context, id uuid.UUID) (*Aircraft, error)
	GetAllAircraft(ctx context.Context) ([]Aircraft, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

type CreateTemplateRequest struct {
	Name         string `json:"name" binding:"required"`
	RowCount     int    `json:"row_count" binding:"required,min=1,max=100"`
	SeatLetters  string `json:"seat_letters" binding:"required"`
	BusinessRows string `json:"business_rows"`
}

type CreateAircraftRequest struct {
	Model              string    `json:"model" binding:"required"`
	RegistrationNumber string    `json:"registration_number" binding:"required"`
	SeatTemplateID     uuid.UUID `json:"seat_template_id" binding:"required"`
}

func (s *service) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*SeatTemplate, error) {
	letters := strings.ReplaceAll(req.SeatLetters, " ", "")
	if letters == "" {
		return nil, fmt.Errorf("seat letters must contain at least one seat")
	}
	if req.BusinessRows != "" {
		if from, _ := parseRowRange(req.BusinessRows); from == 0 {
			return nil, fmt.Errorf("invalid business rows range: %s", req.BusinessRows)
		}
	}

	template := &SeatTemplate{
		Name:         req.Name,
		RowCount:     req.RowCount,
		SeatLetters:  req.SeatLetters,
		BusinessRows: req.BusinessRows,
	}
	if err := s.repo.CreateTemplate(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to create seat template: %w", err)
	}
	return template, nil
}

func (s *service) GetTemplate(ctx context.Context, id uuid.UUID) (*SeatTemplate, error) {
	template, err := s.repo.GetTemplateByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get seat template: %w", err)
	}
	return template, nil
}

func (s *service) GetAllTemplates(ctx context.Context) ([]SeatTemplate, error) {
	return s.repo.GetAllTemplates(ctx)
}

func (s *service) CreateAircraft(ctx context.Context, req CreateAircraftRequest) (*Aircraft, error) {
	template, err := s.GetTemplate(ctx, req.SeatTemplateID)
	if err != nil {
		return nil, err
	}

	ac := &Aircraft{
		Model:              req.Model,
		RegistrationNumber: strings.ToUpper(strings.TrimSpace(req.RegistrationNumber)),
		Capacity:           len(ExpandTemplate(template)),
		SeatTemplateID:     template.ID,
	}
	if err := s.repo.CreateAircraft(ctx, ac); err != nil {
		return nil, fmt.Errorf("failed to create aircraft: %w", err)
	}
	ac.SeatTemplate = template
	return ac, nil
}

func (s *service) GetAircraft(ctx context.Context, id uuid.UUID) (*Aircraft, error) {
	ac, err := s.repo.GetAircraftByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAircraftNotFound
		}
		return nil, fmt.Errorf("failed to get aircraft: %w", err)
	}
	return ac, nil
}

func (s *service) GetAllAircraft(ctx context.Context) ([]Aircraft, error) {
	return s.repo.GetAllAircraft(ctx)
}
