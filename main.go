package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"petsim/internal/config"
	"petsim/internal/content"
	"petsim/internal/engine"
	"petsim/internal/logger"
	"petsim/internal/rng"
	"petsim/internal/store"
	"petsim/internal/ui"
)

const redisTimeout = 5 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := config.Load()

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logger.Setup(cfg, logFile)

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	e := engine.New(catalog, rng.New(seed(cfg)), log)

	ctx := context.Background()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	session := store.NewSession(st, e, cfg.TickInterval, cfg.MaxCatchUpTicks, log)
	restored, err := session.Load(ctx, cfg.PetName, cfg.Species)
	if err != nil {
		return err
	}
	if err := session.Save(ctx, restored.Save); err != nil {
		return err
	}

	if len(args) > 0 && args[0] == "stats" {
		return ui.DisplayStats(restored.Save, catalog)
	}

	log.Info("Starting game",
		"pet", restored.Save.Pet.Identity.Name,
		"tick", cfg.TickInterval,
		"store", cfg.StoreKind)

	p := tea.NewProgram(ui.NewModel(e, session, restored, cfg.TickInterval, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func loadCatalog(cfg *config.Config) (*content.Catalog, error) {
	if cfg.CatalogPath == "" {
		return content.Default()
	}
	return content.Load(cfg.CatalogPath)
}

// seed returns the configured seed, or one drawn from the clock.
func seed(cfg *config.Config) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.StoreKind {
	case config.StoreRedis:
		rs := store.NewRedisStore(cfg.RedisURL, cfg.SaveSlot, log)
		pingCtx, cancel := context.WithTimeout(ctx, redisTimeout)
		defer cancel()
		if err := rs.Ping(pingCtx); err != nil {
			rs.Close()
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisURL, err)
		}
		return rs, nil
	case config.StoreFile, "":
		path := cfg.SavePath
		if path == "" {
			var err error
			if path, err = store.DefaultPath(); err != nil {
				return nil, err
			}
		}
		return store.NewFileStore(path, log), nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.StoreKind)
}
