package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

type Config struct {
	Environment     string
	LogLevel        slog.Level
	LogFile         string
	TickInterval    time.Duration
	SavePath        string
	StoreKind       string
	RedisURL        string
	SaveSlot        string
	Seed            uint64
	MaxCatchUpTicks int64
	PetName         string
	Species         string
	CatalogPath     string
}

func Load() *Config {
	return &Config{
		Environment:     getEnv("PETSIM_ENV", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:         getEnv("PETSIM_LOG", defaultLogFile()),
		TickInterval:    parseDuration(getEnv("PETSIM_TICK", "1m"), time.Minute),
		SavePath:        getEnv("PETSIM_SAVE", ""),
		StoreKind:       strings.ToLower(getEnv("PETSIM_STORE", StoreFile)),
		RedisURL:        getEnv("REDIS_ADDR", "localhost:6379"),
		SaveSlot:        getEnv("PETSIM_SLOT", "default"),
		Seed:            parseUint(getEnv("PETSIM_SEED", "0")),
		MaxCatchUpTicks: parseInt(getEnv("PETSIM_MAX_CATCHUP", "10080"), 10080),
		PetName:         getEnv("PETSIM_NAME", ""),
		Species:         getEnv("PETSIM_SPECIES", "emberkit"),
		CatalogPath:     getEnv("PETSIM_CATALOG", ""),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func parseInt(value string, defaultValue int64) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

// parseUint returns 0 for anything unparseable; 0 means "seed from the clock".
func parseUint(value string) uint64 {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func defaultLogFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "petsim", "petsim.log")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
