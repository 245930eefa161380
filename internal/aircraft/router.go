package aircraft

import (
	"skybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAircraftRoutes(router *gin.RouterGroup, controller Controller) {
	// Admin routes - fleet and cabin layout management
	adminAircraft := router.Group("/admin/aircraft")
	adminAircraft.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminAircraft.POST("", controller.CreateAircraft)    // POST /api/v1/admin/aircraft - Register aircraft
		adminAircraft.GET("", controller.GetAllAircraft)     // GET /api/v1/admin/aircraft - List fleet
		adminAircraft.GET("/:aircraftId", controller.GetAircraft) // GET /api/v1/admin/aircraft/:aircraftId - Aircraft details

		adminAircraft.POST("/templates", controller.CreateTemplate)        // POST /api/v1/admin/aircraft/templates - Create seat template
		adminAircraft.GET("/templates", controller.GetAllTemplates)        // GET /api/v1/admin/aircraft/templates - List seat templates
		adminAircraft.GET("/templates/:templateId", controller.GetTemplate) // GET /api/v1/admin/aircraft/templates/:templateId - Template with expanded seats
	}
}
