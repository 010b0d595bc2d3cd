package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PETSIM_ENV", "LOG_LEVEL", "PETSIM_TICK", "PETSIM_SAVE", "PETSIM_STORE",
		"REDIS_ADDR", "PETSIM_SLOT", "PETSIM_SEED", "PETSIM_MAX_CATCHUP",
		"PETSIM_NAME", "PETSIM_SPECIES", "PETSIM_CATALOG",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.TickInterval)
	assert.Equal(t, StoreFile, cfg.StoreKind)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, "default", cfg.SaveSlot)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, int64(10080), cfg.MaxCatchUpTicks)
	assert.Equal(t, "emberkit", cfg.Species)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PETSIM_ENV", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PETSIM_TICK", "2s")
	t.Setenv("PETSIM_STORE", "Redis")
	t.Setenv("PETSIM_SEED", "42")
	t.Setenv("PETSIM_MAX_CATCHUP", "60")
	t.Setenv("PETSIM_SPECIES", "puddlepup")

	cfg := Load()
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.TickInterval)
	assert.Equal(t, StoreRedis, cfg.StoreKind)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, int64(60), cfg.MaxCatchUpTicks)
	assert.Equal(t, "puddlepup", cfg.Species)
}

func TestParseHelpers(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown falls back", "loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.level))
		})
	}

	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("-5s", time.Minute))
	assert.Equal(t, int64(7), parseInt("-1", 7))
	assert.Equal(t, int64(0), parseInt("0", 7))
	assert.Equal(t, uint64(0), parseUint("abc"))
}
