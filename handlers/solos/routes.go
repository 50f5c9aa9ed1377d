package solos

import (
	"shredle/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to solo curation. The whole
// group is admin-only.
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, h *Handler, adminKey string) {
	solos := r.Group("/solos")
	solos.Use(middleware.AdminKeyMiddleware(adminKey))
	{
		solos.GET("/", h.ListSolos)
		solos.GET("/:id", h.GetSolo)
		solos.POST("/", h.CreateSolo)
		solos.PUT("/:id", h.UpdateSolo)
		solos.DELETE("/:id", h.DeleteSolo)
	}
}
