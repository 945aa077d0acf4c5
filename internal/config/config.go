// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage drivers accepted by STORE_DRIVER.
const (
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Calendar access modes accepted by CALENDAR_ACCESS.
const (
	AccessGranted = "granted"
	AccessDenied  = "denied"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreDriver selects the key-value store: bolt, postgres or memory.
	StoreDriver string

	// StorePath is the bbolt file used when StoreDriver is bolt.
	StorePath string

	// DatabaseURL is the Postgres connection string.
	// Required only when StoreDriver is postgres.
	DatabaseURL string

	// CalendarPath is the iCalendar file booked events are written to.
	// An explicitly empty CALENDAR_PATH leaves the device without a default
	// calendar.
	CalendarPath string

	// CalendarAccess is the answer given when the app asks for calendar access.
	CalendarAccess string

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, followed
// by any values that could not be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", DriverBolt)),
		StorePath:      getEnv("STORE_PATH", "activity-logbook.db"),
		CalendarAccess: strings.ToLower(getEnv("CALENDAR_ACCESS", AccessGranted)),
	}

	// Unlike the other variables, an empty CALENDAR_PATH is meaningful.
	cfg.CalendarPath = "calendar.ics"
	if v, ok := os.LookupEnv("CALENDAR_PATH"); ok {
		cfg.CalendarPath = strings.TrimSpace(v)
	}

	var missing, invalid []string

	switch cfg.StoreDriver {
	case DriverBolt, DriverMemory:
	case DriverPostgres:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		invalid = append(invalid, fmt.Sprintf("STORE_DRIVER=%q (want bolt, postgres or memory)", cfg.StoreDriver))
	}

	switch cfg.CalendarAccess {
	case AccessGranted, AccessDenied:
	default:
		invalid = append(invalid, fmt.Sprintf("CALENDAR_ACCESS=%q (want granted or denied)", cfg.CalendarAccess))
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		invalid = append(invalid, fmt.Sprintf("MAX_BODY_BYTES=%q (want a positive integer)", os.Getenv("MAX_BODY_BYTES")))
	}
	cfg.MaxBodyBytes = maxBody

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(invalid, "; "))
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("config.Load: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// CalendarGranted reports whether calendar access requests should succeed.
func (c Config) CalendarGranted() bool {
	return c.CalendarAccess == AccessGranted
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
