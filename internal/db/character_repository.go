package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CharacterRow mirrors one row of the characters table.
type CharacterRow struct {
	ID        int64
	AccountID int64
	Name      string
	Level     int32
	MaxHP     int32
	CurrentHP int32
	Attack    float64
	Defense   float64
	Speed     float64
}

// CharacterRepository persists character rows.
type CharacterRepository struct {
	pool *pgxpool.Pool
}

// NewCharacterRepository creates a repository over the given pool.
func NewCharacterRepository(pool *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{pool: pool}
}

// Create inserts a character and returns its generated id.
func (r *CharacterRepository) Create(ctx context.Context, row CharacterRow) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO characters (account_id, name, level, max_hp, current_hp, attack, defense, speed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		row.AccountID, row.Name, row.Level, row.MaxHP, row.CurrentHP, row.Attack, row.Defense, row.Speed,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating character %q: %w", row.Name, err)
	}
	return id, nil
}

// GetByID retrieves a character row. Returns nil, nil if it does not exist.
func (r *CharacterRepository) GetByID(ctx context.Context, id int64) (*CharacterRow, error) {
	var row CharacterRow
	err := r.pool.QueryRow(ctx,
		`SELECT id, account_id, name, level, max_hp, current_hp, attack, defense, speed
		 FROM characters WHERE id = $1`, id,
	).Scan(&row.ID, &row.AccountID, &row.Name, &row.Level, &row.MaxHP,
		&row.CurrentHP, &row.Attack, &row.Defense, &row.Speed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying character %d: %w", id, err)
	}
	return &row, nil
}

// List loads every character row, ordered by id.
func (r *CharacterRepository) List(ctx context.Context) ([]CharacterRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, account_id, name, level, max_hp, current_hp, attack, defense, speed
		 FROM characters ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	var result []CharacterRow
	for rows.Next() {
		var row CharacterRow
		if err := rows.Scan(&row.ID, &row.AccountID, &row.Name, &row.Level, &row.MaxHP,
			&row.CurrentHP, &row.Attack, &row.Defense, &row.Speed); err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating character rows: %w", err)
	}
	return result, nil
}

// Update saves the mutable character fields.
func (r *CharacterRepository) Update(ctx context.Context, row CharacterRow) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE characters
		 SET level = $1, max_hp = $2, current_hp = $3, attack = $4, defense = $5, speed = $6
		 WHERE id = $7`,
		row.Level, row.MaxHP, row.CurrentHP, row.Attack, row.Defense, row.Speed, row.ID,
	)
	if err != nil {
		return fmt.Errorf("updating character %d: %w", row.ID, err)
	}
	return nil
}
