package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/duskmud/duskmud/internal/config"
	"github.com/duskmud/duskmud/internal/db"
	"github.com/duskmud/duskmud/internal/game/effect"
	"github.com/duskmud/duskmud/internal/model"
	"github.com/duskmud/duskmud/internal/world"
)

const gameConfigPath = "config/gameserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := gameConfigPath
	if p := os.Getenv("DUSKMUD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGameServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("duskmud server starting",
		"log_level", cfg.LogLevel,
		"tick_interval_ms", cfg.TickInterval)

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	registry := effect.NewDefaultRegistry()
	w := world.New()

	effectRepo := db.NewEffectRepository(database.Pool())
	charRepo := db.NewCharacterRepository(database.Pool())
	persistence := db.NewEffectPersistenceService(database.Pool(), effectRepo, registry)

	// Bring the persisted roster back online with each character's saved
	// effects resuming their clocks.
	if err := loadWorld(ctx, w, charRepo, persistence, cfg.MaxEffects); err != nil {
		return fmt.Errorf("loading world: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	// World tick loop: periodic behaviors fire, expired effects are pruned.
	g.Go(func() error {
		ticker := time.NewTicker(time.Duration(cfg.TickInterval) * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				w.Tick()
			}
		}
	})

	// Autosave loop: snapshot and persist every character's effect list.
	g.Go(func() error {
		ticker := time.NewTicker(time.Duration(cfg.AutosaveInterval) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				saveAll(gctx, w, persistence)
			}
		}
	})

	slog.Info("game loop running", "characters", w.Len())
	err = g.Wait()

	// Final save on shutdown: quit-detach every character, then persist.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	finalSave(shutdownCtx, w, persistence)

	return err
}

func loadWorld(ctx context.Context, w *world.World, chars *db.CharacterRepository, persistence *db.EffectPersistenceService, maxEffects int) error {
	rows, err := chars.List(ctx)
	if err != nil {
		return err
	}

	for _, row := range rows {
		c := model.NewCharacter(uint32(row.ID), row.Name, row.Level, row.MaxHP,
			row.Attack, row.Defense, row.Speed, maxEffects)
		c.SetCurrentHP(row.CurrentHP)

		if err := persistence.LoadEffects(ctx, row.ID, c); err != nil {
			return err
		}
		w.Add(c)
	}

	slog.Info("world loaded", "characters", len(rows))
	return nil
}

func saveAll(ctx context.Context, w *world.World, persistence *db.EffectPersistenceService) {
	w.ForEach(func(c *model.Character) {
		if err := persistence.SaveEffects(ctx, int64(c.ObjectID()), c); err != nil {
			slog.Error("autosave failed", "character", c.Name(), "err", err)
		}
	})
}

func finalSave(ctx context.Context, w *world.World, persistence *db.EffectPersistenceService) {
	w.ForEach(func(c *model.Character) {
		c.Quit()
		if err := persistence.SaveEffects(ctx, int64(c.ObjectID()), c); err != nil {
			slog.Error("shutdown save failed", "character", c.Name(), "err", err)
		}
	})
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
