package bookings

import (
	"skybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	// User routes - own bookings only
	userBookings := router.Group("/bookings")
	userBookings.Use(middleware.JWTAuth())
	{
		userBookings.POST("/confirm", controller.ConfirmBooking)          // POST /api/v1/bookings/confirm - Pay and confirm held seats
		userBookings.GET("/me", controller.GetMyBookings)                 // GET /api/v1/bookings/me - My bookings
		userBookings.GET("/:bookingId", controller.GetBooking)            // GET /api/v1/bookings/:bookingId - Booking details
		userBookings.POST("/:bookingId/cancel", controller.CancelBooking) // POST /api/v1/bookings/:bookingId/cancel - Cancel with refund policy
	}

	userTickets := router.Group("/tickets")
	userTickets.Use(middleware.JWTAuth())
	{
		userTickets.POST("/:ticketId/check-in", controller.CheckIn) // POST /api/v1/tickets/:ticketId/check-in - Issue boarding pass
	}

	// Staff routes - booking administration
	adminBookings := router.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		adminBookings.POST("/:bookingId/cancel", controller.AdminCancelBooking) // POST /api/v1/admin/bookings/:bookingId/cancel
		adminBookings.PUT("/:bookingId/seat", controller.AdminReassignSeat)     // PUT /api/v1/admin/bookings/:bookingId/seat
	}

	adminFlightSeats := router.Group("/admin/flights/:flightId")
	adminFlightSeats.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		adminFlightSeats.POST("/seats/block", controller.AdminBlockSeat)        // POST /api/v1/admin/flights/:flightId/seats/block
		adminFlightSeats.GET("/seat-conflicts", controller.GetSeatConflicts)    // GET /api/v1/admin/flights/:flightId/seat-conflicts
	}
}
