package games

import (
	"shredle/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to gameplay
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	// Guessing hits the oracle, keep it behind its own limiter
	guessRateLimiter := middleware.NewRateLimiter(600, 60)

	game := r.Group("/game")
	{
		game.GET("/daily", h.GetDailyGame)
		game.POST("/guess", middleware.RateLimiterMiddleware(guessRateLimiter), h.SubmitGuess)
		game.GET("/live", h.LiveUpdates)
	}
}
