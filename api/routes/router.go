// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skybook/internal/aircraft"
	"skybook/internal/announcements"
	"skybook/internal/bookings"
	"skybook/internal/flights"
	"skybook/internal/payments"
	"skybook/internal/seats"
	"skybook/internal/shared/clock"
	"skybook/internal/shared/config"
	"skybook/internal/shared/database"
	"skybook/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	clk      clock.Clock
	producer announcements.Producer

	// services shared across modules
	announcementService announcements.Service
	flightService       flights.Service
	seatService         seats.Service
	bookingService      bookings.Service
}

// NewRouter creates a new router instance. producer may be nil when Kafka is
// disabled; announcements degrade to persisted rows.
func NewRouter(cfg *config.Config, db *database.DB, producer announcements.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		clk:      clock.Real(),
		producer: producer,
	}
}

// SeatService exposes the wired seat service so main can attach the
// background hold sweeper.
func (r *Router) SeatService() seats.Service {
	return r.seatService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Announcements first: every other module publishes through it
		r.setupAnnouncementRoutes(api)

		r.setupAircraftRoutes(api)
		r.setupFlightRoutes(api)
		r.setupSeatAndBookingRoutes(api)
		r.setupPaymentRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "skybook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "skybook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAnnouncementRoutes wires the announcement sink every other module
// publishes into.
func (r *Router) setupAnnouncementRoutes(rg *gin.RouterGroup) {
	announcementRepo := announcements.NewRepository(r.db.GetPostgreSQL())
	r.announcementService = announcements.NewService(announcementRepo, r.producer)
	announcementController := announcements.NewController(r.announcementService)

	announcements.SetupAnnouncementRoutes(rg, announcementController)
}

// setupAircraftRoutes configures fleet and seat template management
func (r *Router) setupAircraftRoutes(rg *gin.RouterGroup) {
	aircraftRepo := aircraft.NewRepository(r.db.GetPostgreSQL())
	aircraftService := aircraft.NewService(aircraftRepo)
	aircraftController := aircraft.NewController(aircraftService)

	aircraft.SetupAircraftRoutes(rg, aircraftController)
}

// setupFlightRoutes configures flight schedule and airport routes
func (r *Router) setupFlightRoutes(rg *gin.RouterGroup) {
	flightRepo := flights.NewRepository(r.db.GetPostgreSQL())
	aircraftRepo := aircraft.NewRepository(r.db.GetPostgreSQL())

	r.flightService = flights.NewService(flightRepo, aircraftRepo, r.clk)

	// Flight list/search reads go through the Redis cache; mutations
	// invalidate it.
	if r.db.GetRedisClient() != nil {
		cacheService := cache.NewService(r.db.GetRedisClient())
		r.flightService.SetCacheService(cacheService,
			r.config.Redis.FlightCacheTTL, r.config.Redis.SearchCacheTTL)
	}
	r.flightService.SetAnnouncer(r.announcementService)

	flightController := flights.NewController(r.flightService)
	flights.SetupFlightRoutes(rg, flightController)
}

// setupSeatAndBookingRoutes wires the seat inventory and the booking
// lifecycle together. The seat service holds seats and creates drafts; the
// booking service consumes its holds at confirmation time.
func (r *Router) setupSeatAndBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())

	pnrGenerator := bookings.NewPNRGenerator(bookingRepo, r.config.Booking.PNRMaxAttempts)
	gateway := payments.NewMockGateway(paymentRepo)

	r.seatService = seats.NewService(seatRepo, r.flightService, pnrGenerator, r.clk, r.config.Booking)
	r.seatService.SetAnnouncer(r.announcementService)

	r.bookingService = bookings.NewService(bookingRepo, r.seatService, gateway, r.flightService, r.clk, r.config.Booking)
	r.bookingService.SetAnnouncer(r.announcementService)

	seatController := seats.NewController(r.seatService)
	seats.SetupSeatRoutes(rg, seatController)

	bookingController := bookings.NewController(r.bookingService)
	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupPaymentRoutes configures payment history routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	paymentService := payments.NewService(paymentRepo)
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, paymentController)
}
