// Package config reads the server settings from the environment. main loads
// a .env file (godotenv) before calling Load, so both sources work.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/brainplay/apps/go-server/internal/database"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port           string
	LogLevel       string
	LogFormat      string // "json" or "console"
	ClientOrigin   string
	DBPath         string
	DailySalt      string
	JWTSecret      string
	CookieName     string
	Production     bool
	GeminiAPIKey   string
	GCPProject     string
	GCPRegion      string
	GeminiModel    string
	MinGridSize    int
	RequestTimeout time.Duration
	GameTTL        time.Duration
}

// Load reads the environment, falling back to defaults for anything unset or
// unparsable.
func Load() Config {
	return Config{
		Port:           getEnv("PORT", "5175"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DBPath:         getEnv("DB_PATH", database.MemoryDSN("brainplay")),
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		CookieName:     getEnv("COOKIE_NAME", "brainplay_player"),
		Production:     os.Getenv("NODE_ENV") == "production",
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GCPProject:     os.Getenv("GCP_PROJECT_ID"),
		GCPRegion:      getEnv("GCP_REGION", "europe-west1"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		MinGridSize:    getInt("GRID_MIN_SIZE", 10),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		GameTTL:        getDuration("GAME_TTL", 6*time.Hour),
	}
}

// AIEnabled reports whether a Gemini backend is configured.
func (c Config) AIEnabled() bool {
	return c.GeminiAPIKey != "" || c.GCPProject != ""
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
