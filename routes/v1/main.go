package v1

import (
	"shredle/config"
	"shredle/game"
	"shredle/handlers/admin"
	"shredle/handlers/games"
	"shredle/handlers/solos"
	"shredle/middleware"
	"shredle/oracle"
	"shredle/realtime"
	"shredle/store"

	"github.com/gin-gonic/gin"
)

// Deps carries the collaborators the v1 routes need; everything is
// constructed once at startup and injected.
type Deps struct {
	Cfg    *config.Config
	Store  store.Store
	Oracle *oracle.Client
	Hub    *realtime.Hub
}

// Register the endpoints for the v1 API
func Register(r *gin.Engine, d Deps) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(10000, 1500)
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)

	policy := game.NewDailyPolicy(d.Store)
	judge := game.NewJudge(d.Oracle)

	games.RegisterRoutes(v1, games.NewHandler(policy, judge, d.Hub))
	solos.RegisterRoutes(v1, solos.NewHandler(d.Store), d.Cfg.AdminKey)
	admin.RegisterRoutes(v1, admin.NewHandler(d.Store, d.Oracle, policy, d.Hub), d.Cfg.AdminKey)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
