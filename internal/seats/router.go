package seats

import (
	"skybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can look at the seat map while browsing
	publicSeats := router.Group("/flights/:flightId/seats")
	{
		publicSeats.GET("/availability", controller.GetAvailability) // GET /api/v1/flights/:flightId/seats/availability
		publicSeats.GET("/map", controller.GetSeatMap)               // GET /api/v1/flights/:flightId/seats/map
	}

	// User routes - holding seats requires a signed-in passenger
	userSeats := router.Group("/flights/:flightId/seats")
	userSeats.Use(middleware.JWTAuth())
	{
		userSeats.POST("/hold", controller.HoldSeats) // POST /api/v1/flights/:flightId/seats/hold
	}

	// Staff routes - seat map with passenger identity
	staffSeats := router.Group("/admin/flights/:flightId/seats")
	staffSeats.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		staffSeats.GET("/map", controller.GetStaffSeatMap) // GET /api/v1/admin/flights/:flightId/seats/map
	}
}
