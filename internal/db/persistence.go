package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duskmud/duskmud/internal/game/effect"
	"github.com/duskmud/duskmud/internal/model"
)

// EffectPersistenceService saves and restores a character's active effects
// across logout/login. Saving snapshots each effect's live elapsed time
// first, so a restored effect resumes its clock instead of restarting it.
type EffectPersistenceService struct {
	pool     *pgxpool.Pool
	effects  *EffectRepository
	registry effect.Registry
}

// NewEffectPersistenceService creates the service.
func NewEffectPersistenceService(pool *pgxpool.Pool, effects *EffectRepository, registry effect.Registry) *EffectPersistenceService {
	return &EffectPersistenceService{
		pool:     pool,
		effects:  effects,
		registry: registry,
	}
}

// SaveEffects writes the character's active effect list in one transaction.
func (s *EffectPersistenceService) SaveEffects(ctx context.Context, characterID int64, c *model.Character) error {
	list := c.Effects()
	list.Snapshot()

	active := list.Active()
	rows := make([]EffectRow, 0, len(active))
	for _, e := range active {
		opts := e.Options()

		var startedAt int64
		if !opts.Started.IsZero() {
			startedAt = opts.Started.UnixMilli()
		}

		rows = append(rows, EffectRow{
			CharacterID: characterID,
			EffectID:    e.ID(),
			EffectType:  e.Type(),
			DurationMs:  opts.Duration.Milliseconds(),
			StartedAt:   startedAt,
			ElapsedMs:   opts.Elapsed.Milliseconds(),
			Params:      opts.Params,
		})
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for character %d: %w", characterID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "characterID", characterID, "error", err)
		}
	}()

	if err := s.effects.ReplaceAllTx(ctx, tx, characterID, rows); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit effects for character %d: %w", characterID, err)
	}

	slog.Debug("effects saved", "characterID", characterID, "count", len(rows))
	return nil
}

// LoadEffects rebuilds every stored effect onto the character: construct
// with the restored options bag, attach, then Init so the clock resumes
// from the stored anchor.
func (s *EffectPersistenceService) LoadEffects(ctx context.Context, characterID int64, c *model.Character) error {
	rows, err := s.effects.LoadByCharacter(ctx, characterID)
	if err != nil {
		return err
	}

	for _, row := range rows {
		opts := &effect.Options{
			Duration: time.Duration(row.DurationMs) * time.Millisecond,
			Elapsed:  time.Duration(row.ElapsedMs) * time.Millisecond,
			Params:   row.Params,
		}
		if row.StartedAt > 0 {
			opts.Started = time.UnixMilli(row.StartedAt)
		}

		e, err := effect.New(row.EffectID, opts, row.EffectType, c, s.registry)
		if err != nil {
			return fmt.Errorf("restoring effect %q for character %d: %w", row.EffectID, characterID, err)
		}
		c.AddEffect(e)
		if err := e.Init(); err != nil {
			return fmt.Errorf("wiring effect %q for character %d: %w", row.EffectID, characterID, err)
		}
	}

	slog.Debug("effects restored", "characterID", characterID, "count", len(rows))
	return nil
}
