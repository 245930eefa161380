package announcements

import (
	"github.com/gin-gonic/gin"
)

func SetupAnnouncementRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - announcements are for everyone at the gate
	announcements := router.Group("/announcements")
	{
		announcements.GET("", controller.GetRecentAnnouncements)                  // GET /api/v1/announcements?limit=
		announcements.GET("/flights/:flightId", controller.GetFlightAnnouncements) // GET /api/v1/announcements/flights/:flightId
	}
}
