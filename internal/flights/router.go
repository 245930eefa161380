package flights

import (
	"skybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupFlightRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse flights and airports
	publicFlights := router.Group("/flights")
	{
		publicFlights.GET("", controller.GetAllFlights)        // GET /api/v1/flights - Browse all flights
		publicFlights.GET("/search", controller.SearchFlights) // GET /api/v1/flights/search?origin=&destination=&date=
		publicFlights.GET("/:flightId", controller.GetFlight)  // GET /api/v1/flights/:flightId - Flight details
	}

	publicAirports := router.Group("/airports")
	{
		publicAirports.GET("", controller.GetAllAirports)         // GET /api/v1/airports - List airports
		publicAirports.GET("/:airportId", controller.GetAirport)  // GET /api/v1/airports/:airportId - Airport details
	}

	// Admin routes - schedule and airport management
	adminFlights := router.Group("/admin/flights")
	adminFlights.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminFlights.POST("", controller.CreateFlight)             // POST /api/v1/admin/flights - Schedule flight
		adminFlights.PUT("/:flightId", controller.UpdateFlight)    // PUT /api/v1/admin/flights/:flightId - Update flight
		adminFlights.DELETE("/:flightId", controller.DeleteFlight) // DELETE /api/v1/admin/flights/:flightId - Remove flight
	}

	adminAirports := router.Group("/admin/airports")
	adminAirports.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminAirports.POST("", controller.CreateAirport) // POST /api/v1/admin/airports - Create airport
	}
}
