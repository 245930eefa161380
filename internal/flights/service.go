package flights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skybook/internal/aircraft"
	"skybook/internal/shared/clock"
	"skybook/pkg/cache"
	"skybook/pkg/logger"
)

var (
	ErrFlightNotFound    = errors.New("flight not found")
	ErrAirportNotFound   = errors.New("airport not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

const (
	// boardingWindow is how long before departure boarding opens.
	boardingWindow = 2 * time.Hour
	// bookingCutoff is the minimum lead time for a flight to appear in search.
	bookingCutoff = 2 * time.Hour
	// minScheduleLead is the minimum advance notice for a new flight.
	minScheduleLead = 24 * time.Hour
)

// Announcer publishes a passenger-facing announcement. Implemented by the
// announcements service; declared here to avoid an import cycle.
type Announcer interface {
	Publish(ctx context.Context, flightID uuid.UUID, title, message, createdBy string) error
}

type Service interface {
	CreateFlight(ctx context.Context, req CreateFlightRequest) (*Flight, error)
	GetFlight(ctx context.Context, id uuid.UUID) (*Flight, error)
	GetAllFlights(ctx context.Context) ([]Flight, error)
	SearchFlights(ctx context.Context, query SearchFlightsQuery) ([]Flight, error)
	UpdateFlight(ctx context.Context, id uuid.UUID, req UpdateFlightRequest, updatedBy string) (*Flight, error)
	DeleteFlight(ctx context.Context, id uuid.UUID) error
	UpdateStatuses(ctx context.Context) error

	SetCacheService(cacheService cache.Service, listTTL, searchTTL time.Duration)
	SetAnnouncer(announcer Announcer)

	CreateAirport(ctx context.Context, req CreateAirportRequest) (*Airport, error)
	GetAirport(ctx context.Context, id uuid.UUID) (*Airport, error)
	GetAllAirports(ctx context.Context) ([]Airport, error)
}

type service struct {
	repo         Repository
	aircraftRepo aircraft.Repository
	clk          clock.Clock
	logger       *logger.Logger

	cacheService   cache.Service
	listCacheTTL   time.Duration
	searchCacheTTL time.Duration
	announcer      Announcer
}

func NewService(repo Repository, aircraftRepo aircraft.Repository, clk clock.Clock) Service {
	return &service{
		repo:         repo,
		aircraftRepo: aircraftRepo,
		clk:          clk,
		logger:       logger.GetDefault(),
	}
}

// SetCacheService enables flight list/search caching.
func (s *service) SetCacheService(cacheService cache.Service, listTTL, searchTTL time.Duration) {
	s.cacheService = cacheService
	s.listCacheTTL = listTTL
	s.searchCacheTTL = searchTTL
}

// SetAnnouncer enables announcements on flight changes.
func (s *service) SetAnnouncer(announcer Announcer) {
	s.announcer = announcer
}

func (s *service) CreateFlight(ctx context.Context, req CreateFlightRequest) (*Flight, error) {
	now := s.clk.Now()

	if !req.ArrivalTime.After(req.DepartureTime) {
		return nil, fmt.Errorf("arrival time must be after departure time")
	}
	if req.DepartureTime.Before(now.Add(minScheduleLead)) {
		return nil, fmt.Errorf("flights must be scheduled at least 24 hours in advance")
	}
	if req.OriginAirportID == req.DestinationAirportID {
		return nil, fmt.Errorf("origin and destination must differ")
	}

	if _, err := s.repo.GetAirportByID(ctx, req.OriginAirportID); err != nil {
		return nil, ErrAirportNotFound
	}
	if _, err := s.repo.GetAirportByID(ctx, req.DestinationAirportID); err != nil {
		return nil, ErrAirportNotFound
	}
	if _, err := s.aircraftRepo.GetAircraftByID(ctx, req.AircraftID); err != nil {
		return nil, fmt.Errorf("aircraft not found")
	}

	if existing, err := s.repo.GetByFlightNumber(ctx, req.FlightNumber); err == nil && existing != nil {
		return nil, fmt.Errorf("flight number %s already exists", req.FlightNumber)
	}

	overlap, err := s.repo.CountAircraftOverlap(ctx, req.AircraftID, req.DepartureTime, req.ArrivalTime, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check aircraft schedule: %w", err)
	}
	if overlap > 0 {
		return nil, fmt.Errorf("aircraft is already scheduled for an overlapping flight")
	}

	flight := &Flight{
		FlightNumber:         strings.ToUpper(strings.TrimSpace(req.FlightNumber)),
		OriginAirportID:      req.OriginAirportID,
		DestinationAirportID: req.DestinationAirportID,
		AircraftID:           req.AircraftID,
		DepartureTime:        req.DepartureTime.UTC(),
		ArrivalTime:          req.ArrivalTime.UTC(),
		BasePrice:            req.BasePrice,
		Status:               StatusScheduled,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, fmt.Errorf("failed to create flight: %w", err)
	}

	s.invalidateFlightCaches(ctx)
	return flight, nil
}

func (s *service) GetFlight(ctx context.Context, id uuid.UUID) (*Flight, error) {
	// Statuses are time-derived, refresh before reading
	if err := s.UpdateStatuses(ctx); err != nil {
		s.logger.Warn("flight status refresh failed", "error", err)
	}

	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	return flight, nil
}

func (s *service) GetAllFlights(ctx context.Context) ([]Flight, error) {
	if err := s.UpdateStatuses(ctx); err != nil {
		s.logger.Warn("flight status refresh failed", "error", err)
	}

	if s.cacheService != nil {
		var cached []Flight
		err := s.cacheService.GetOrSet(ctx, cache.FlightListKey(), s.listCacheTTL, func() (interface{}, error) {
			return s.repo.GetAll(ctx)
		}, &cached)
		if err == nil {
			return cached, nil
		}
		s.logger.Warn("flight list cache error, falling back to database", "error", err)
	}

	return s.repo.GetAll(ctx)
}

func (s *service) SearchFlights(ctx context.Context, query SearchFlightsQuery) ([]Flight, error) {
	day, err := time.Parse("2006-01-02", query.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	}

	origin := strings.ToUpper(query.Origin)
	destination := strings.ToUpper(query.Destination)
	if origin == destination {
		return nil, fmt.Errorf("origin and destination must differ")
	}

	if err := s.UpdateStatuses(ctx); err != nil {
		s.logger.Warn("flight status refresh failed", "error", err)
	}

	now := s.clk.Now()
	search := func() ([]Flight, error) {
		return s.repo.Search(ctx, origin, destination, day, day.Add(24*time.Hour), now.Add(bookingCutoff))
	}

	if s.cacheService != nil {
		var cached []Flight
		key := cache.FlightSearchKey(origin, destination, query.Date)
		err := s.cacheService.GetOrSet(ctx, key, s.searchCacheTTL, func() (interface{}, error) {
			return search()
		}, &cached)
		if err == nil {
			return cached, nil
		}
		s.logger.Warn("flight search cache error, falling back to database", "error", err)
	}

	return search()
}

func (s *service) UpdateFlight(ctx context.Context, id uuid.UUID, req UpdateFlightRequest, updatedBy string) (*Flight, error) {
	flight, err := s.GetFlight(ctx, id)
	if err != nil {
		return nil, err
	}

	var changes []string

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %s", ErrInvalidTransition, *req.Status)
		}
		if !flight.Status.CanTransitionTo(*req.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, flight.Status, *req.Status)
		}
		s.logger.LogFlightStatusChange(ctx, flight.FlightNumber, string(flight.Status), string(*req.Status))
		flight.Status = *req.Status
		changes = append(changes, fmt.Sprintf("status is now %s", *req.Status))
	}

	if req.DepartureTime != nil || req.ArrivalTime != nil {
		departure := flight.DepartureTime
		arrival := flight.ArrivalTime
		if req.DepartureTime != nil {
			departure = req.DepartureTime.UTC()
		}
		if req.ArrivalTime != nil {
			arrival = req.ArrivalTime.UTC()
		}
		if !arrival.After(departure) {
			return nil, fmt.Errorf("arrival time must be after departure time")
		}
		flight.DepartureTime = departure
		flight.ArrivalTime = arrival
		changes = append(changes, fmt.Sprintf("departs %s", departure.Format(time.RFC3339)))
	}

	if req.BasePrice != nil {
		if *req.BasePrice <= 0 {
			return nil, fmt.Errorf("base price must be positive")
		}
		flight.BasePrice = *req.BasePrice
	}

	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, fmt.Errorf("failed to update flight: %w", err)
	}

	s.invalidateFlightCaches(ctx)

	if s.announcer != nil && len(changes) > 0 {
		title := fmt.Sprintf("Flight %s update", flight.FlightNumber)
		if err := s.announcer.Publish(ctx, flight.ID, title, strings.Join(changes, "; "), updatedBy); err != nil {
			s.logger.Warn("failed to publish flight update announcement", "flight", flight.FlightNumber, "error", err)
		}
	}

	return flight, nil
}

func (s *service) DeleteFlight(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetFlight(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete flight: %w", err)
	}
	s.invalidateFlightCaches(ctx)
	return nil
}

// UpdateStatuses advances time-driven flight statuses. Safe to call from
// multiple goroutines; the repository uses guarded conditional updates.
func (s *service) UpdateStatuses(ctx context.Context) error {
	return s.repo.AdvanceStatuses(ctx, s.clk.Now(), boardingWindow)
}

func (s *service) CreateAirport(ctx context.Context, req CreateAirportRequest) (*Airport, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if existing, err := s.repo.GetAirportByCode(ctx, code); err == nil && existing != nil {
		return nil, fmt.Errorf("airport %s already exists", code)
	}

	airport := &Airport{
		Code:    code,
		Name:    req.Name,
		City:    req.City,
		Country: req.Country,
	}
	if err := s.repo.CreateAirport(ctx, airport); err != nil {
		return nil, fmt.Errorf("failed to create airport: %w", err)
	}
	return airport, nil
}

func (s *service) GetAirport(ctx context.Context, id uuid.UUID) (*Airport, error) {
	airport, err := s.repo.GetAirportByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAirportNotFound
		}
		return nil, fmt.Errorf("failed to get airport: %w", err)
	}
	return airport, nil
}

func (s *service) GetAllAirports(ctx context.Context) ([]Airport, error) {
	return s.repo.GetAllAirports(ctx)
}

func (s *service) invalidateFlightCaches(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, cache.FlightKeyPattern()); err != nil {
		s.logger.Warn("failed to invalidate flight caches", "error", err)
	}
}
