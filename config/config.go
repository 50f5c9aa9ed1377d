package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store driver names accepted in STORE_DRIVER
const (
	DriverSupabase = "supabase"
	DriverPostgres = "postgres"
)

// Config holds all environment-driven settings, read once at startup and
// injected into component constructors.
type Config struct {
	Port        string
	StoreDriver string

	SupabaseURL string
	SupabaseKey string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	OpenAIAPIKey string
	OpenAIModel  string

	AdminKey string

	AllowedOrigins []string
}

// Load reads the configuration from the environment (and a .env file if one
// is present). Missing store credentials are fatal; a missing OpenAI key is
// a soft degrade to local fallbacks and a missing admin key locks out the
// admin surface.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		StoreDriver: getEnv("STORE_DRIVER", DriverSupabase),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),

		AdminKey: os.Getenv("ADMIN_KEY"),

		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS",
			"https://shredle-app.vercel.app,http://localhost:5173")),
	}

	switch cfg.StoreDriver {
	case DriverSupabase:
		cfg.SupabaseURL = mustEnv("SUPABASE_URL")
		cfg.SupabaseKey = mustEnv("SUPABASE_KEY")
	case DriverPostgres:
		cfg.PostgresHost = mustEnv("POSTGRES_HOST")
		cfg.PostgresPort = getEnv("POSTGRES_PORT", "5432")
		cfg.PostgresUser = mustEnv("POSTGRES_USER")
		cfg.PostgresPassword = mustEnv("POSTGRES_PASSWORD")
		cfg.PostgresDB = mustEnv("POSTGRES_DB")
	default:
		log.Fatalf("unknown STORE_DRIVER %q (expected %s or %s)", cfg.StoreDriver, DriverSupabase, DriverPostgres)
	}

	if cfg.AdminKey == "" {
		log.Println("ADMIN_KEY not set, admin endpoints will reject all requests")
	}

	return cfg
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
