package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EffectRow mirrors one row of the character_effects table.
// Timing fields are plain ms numbers so the row round-trips the effect's
// options bag exactly: duration, wall-clock anchor, last snapshot.
type EffectRow struct {
	CharacterID int64
	EffectID    string
	EffectType  string
	DurationMs  int64
	StartedAt   int64 // ms since epoch; 0 = no timing anchor
	ElapsedMs   int64
	Params      map[string]string
}

// EffectRepository persists active status effects per character.
type EffectRepository struct {
	pool *pgxpool.Pool
}

// NewEffectRepository creates a repository over the given pool.
func NewEffectRepository(pool *pgxpool.Pool) *EffectRepository {
	return &EffectRepository{pool: pool}
}

// ReplaceAllTx replaces every effect row of a character inside the given
// transaction: delete then insert, so the stored set always matches the
// live list exactly.
func (r *EffectRepository) ReplaceAllTx(ctx context.Context, tx pgx.Tx, characterID int64, rows []EffectRow) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM character_effects WHERE character_id = $1`, characterID,
	); err != nil {
		return fmt.Errorf("clearing effects for character %d: %w", characterID, err)
	}

	for _, row := range rows {
		params, err := json.Marshal(row.Params)
		if err != nil {
			return fmt.Errorf("encoding params for effect %q: %w", row.EffectID, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO character_effects
			 (character_id, effect_id, effect_type, duration_ms, started_at, elapsed_ms, params)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			characterID, row.EffectID, row.EffectType,
			row.DurationMs, row.StartedAt, row.ElapsedMs, params,
		); err != nil {
			return fmt.Errorf("saving effect %q for character %d: %w", row.EffectID, characterID, err)
		}
	}
	return nil
}

// LoadByCharacter loads every stored effect row for a character.
func (r *EffectRepository) LoadByCharacter(ctx context.Context, characterID int64) ([]EffectRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT character_id, effect_id, effect_type, duration_ms, started_at, elapsed_ms, params
		 FROM character_effects WHERE character_id = $1`, characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying effects for character %d: %w", characterID, err)
	}
	defer rows.Close()

	var result []EffectRow
	for rows.Next() {
		var row EffectRow
		var params []byte
		if err := rows.Scan(&row.CharacterID, &row.EffectID, &row.EffectType,
			&row.DurationMs, &row.StartedAt, &row.ElapsedMs, &params); err != nil {
			return nil, fmt.Errorf("scanning effect row: %w", err)
		}
		if len(params) > 0 {
			if err := json.Unmarshal(params, &row.Params); err != nil {
				return nil, fmt.Errorf("decoding params for effect %q: %w", row.EffectID, err)
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating effect rows: %w", err)
	}
	return result, nil
}
