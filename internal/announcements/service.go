package announcements

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"skybook/pkg/logger"
)

type Service interface {
	// Publish persists the announcement and forwards it to Kafka. The Kafka
	// leg is fire-and-forget: a broker failure is logged, never returned,
	// so publishing can never roll back a booking operation.
	Publish(ctx context.Context, flightID uuid.UUID, title, message, createdBy string) error
	GetByFlight(ctx context.Context, flightID uuid.UUID) ([]Announcement, error)
	GetRecent(ctx context.Context, limit int) ([]Announcement, error)
}

type service struct {
	repo     Repository
	producer Producer
	logger   *logger.Logger
}

// NewService wires the sink. producer may be nil when Kafka is disabled;
// announcements are then persisted only.
func NewService(repo Repository, producer Producer) Service {
	return &service{
		repo:     repo,
		producer: producer,
		logger:   logger.GetDefault(),
	}
}

func (s *service) Publish(ctx context.Context, flightID uuid.UUID, title, message, createdBy string) error {
	announcement := &Announcement{
		Title:     title,
		Message:   message,
		CreatedBy: createdBy,
	}
	if flightID != uuid.Nil {
		announcement.FlightID = &flightID
	}

	if err := s.repo.Create(ctx, announcement); err != nil {
		return fmt.Errorf("failed to persist announcement: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.Publish(announcement); err != nil {
			s.logger.Warn("failed to publish announcement to kafka",
				"title", title, "error", err)
		}
	}
	return nil
}

func (s *service) GetByFlight(ctx context.Context, flightID uuid.UUID) ([]Announcement, error) {
	return s.repo.GetByFlightID(ctx, flightID)
}

func (s *service) GetRecent(ctx context.Context, limit int) ([]Announcement, error) {
	return s.repo.GetRecent(ctx, limit)
}
