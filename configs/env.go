package configs

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file when present. Missing files are fine in
// production where the environment is set directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded, using process environment")
	}
}

func EnvMongoURI() string {
	return os.Getenv("MONGOURI")
}

func EnvDBName() string {
	if name := os.Getenv("DB_NAME"); name != "" {
		return name
	}
	return "ecom"
}

func EnvPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "3000"
}

func EnvJWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

// EnvRedisAddr returns the redis address for the catalog read cache. Empty
// disables caching.
func EnvRedisAddr() string {
	return os.Getenv("REDIS_ADDR")
}

// EnvTrustClientTotal toggles whether a caller-supplied order total is
// trusted instead of recomputed. Defaults to false.
func EnvTrustClientTotal() bool {
	return os.Getenv("ORDER_TRUST_CLIENT_TOTAL") == "true"
}
