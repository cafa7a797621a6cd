package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Addr         string
	CatalogPath  string
	ProfilesPath string
	WeightsPath  string
	SQLitePath   string

	LogLevel    string
	CORSOrigins []string

	// MaxPageSize caps the listing endpoint's page size.
	MaxPageSize int
}

// Load reads .env (when present) and the environment. A missing .env file is
// normal outside local development.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	return Config{
		Addr:         getEnv("API_ADDRESS", ":8080"),
		CatalogPath:  getEnv("CATALOG_PATH", "data/properties.json"),
		ProfilesPath: getEnv("PROFILES_PATH", "data/neighborhoods.json"),
		WeightsPath:  getEnv("WEIGHTS_PATH", "configs/weights.json"),
		SQLitePath:   getEnv("SQLITE_PATH", "data/properties.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		MaxPageSize:  getEnvAsInt("MAX_PAGE_SIZE", 200),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvAsInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warning: %s=%q is not an int, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
