package main

import (
	"log"

	"shredle/config"
	"shredle/middleware"
	"shredle/oracle"
	"shredle/realtime"
	"shredle/store"
	"shredle/store/postgres"
	"shredle/store/supabase"

	v1 "shredle/routes/v1"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Shredle API
// @version 1.0
// @description Backend for the Shredle daily guitar-solo guessing game
// @BasePath /api/v1
func main() {
	cfg := config.Load()

	var st store.Store
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pg, err := postgres.New(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB)
		if err != nil {
			log.Fatal("failed to init postgres store: ", err)
		}
		st = pg
	default:
		st = supabase.New(cfg.SupabaseURL, cfg.SupabaseKey)
	}

	orc := oracle.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if !orc.Configured() {
		log.Println("OPENAI_API_KEY not set, hints and guess validation use local fallbacks")
	}

	hub := realtime.NewHub()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	middleware.UpdateSystemMetrics()

	v1.Register(r, v1.Deps{Cfg: cfg, Store: st, Oracle: orc, Hub: hub})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Shredle API listening on :%s (store driver: %s)", cfg.Port, cfg.StoreDriver)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped: ", err)
	}
}
