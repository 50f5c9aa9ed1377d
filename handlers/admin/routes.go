package admin

import (
	"shredle/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the admin surface for curating daily games and
// hints. Every route requires the shared admin key.
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, h *Handler, adminKey string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AdminKeyMiddleware(adminKey))
	{
		admin.POST("/daily", h.SetDailySolo)
		admin.POST("/daily/rotate", h.RotateDailySolo)
		admin.GET("/daily-games", h.ListDailyGames)
		admin.DELETE("/daily-games/:id", h.DeleteDailyGame)
		admin.POST("/solos/:id/hint", h.GenerateHint)
		admin.POST("/hints/backfill", h.BackfillHints)
	}
}
