// Package config loads environment/.env driven configuration, mirroring
// erenceh-delivery-route-api/cmd/server/main.go's getEnv helper pattern.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every tunable the composition root needs.
type Config struct {
	DatabaseURL      string
	Port             string
	OverpassURL      string
	KExact           int
	MinTurnDistanceM float64
	VAvgKMH          float64
}

// Load reads a .env file if present (missing is not an error — environment
// variables already set take precedence) and returns a populated Config.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             getEnv("PORT", "8080"),
		OverpassURL:      os.Getenv("OVERPASS_URL"),
		KExact:           getEnvInt("K_EXACT", 10),
		MinTurnDistanceM: getEnvFloat("MIN_TURN_DISTANCE_M", 20.0),
		VAvgKMH:          getEnvFloat("V_AVG_KMH", 30.0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
