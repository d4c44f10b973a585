package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"prefixle/internal/domain"
)

// PuzzleStateRepo implements repository.PuzzleStateRepository.
// Each (user, puzzle key) pair holds a single JSON blob.
type PuzzleStateRepo struct {
	db *sql.DB
}

// NewPuzzleStateRepo creates a new puzzle state repository
func NewPuzzleStateRepo(db *sql.DB) *PuzzleStateRepo {
	return &PuzzleStateRepo{db: db}
}

// LoadState returns the stored state, or nil if there is none
func (r *PuzzleStateRepo) LoadState(userID int64, puzzleKey string) (*domain.PuzzleState, error) {
	var blob []byte
	query := `SELECT state FROM puzzle_states WHERE user_id = $1 AND puzzle_key = $2`
	err := r.db.QueryRow(query, userID, puzzleKey).Scan(&blob)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state domain.PuzzleState
	if err := json.Unmarshal(blob, &state); err != nil {
		return nil, fmt.Errorf("corrupt puzzle state for user %d: %w", userID, err)
	}
	if state.FoundWords == nil {
		state.FoundWords = make(map[string]domain.FoundWord)
	}

	return &state, nil
}

// SaveState replaces the stored blob
func (r *PuzzleStateRepo) SaveState(userID int64, puzzleKey string, state *domain.PuzzleState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode puzzle state: %w", err)
	}

	query := `
		INSERT INTO puzzle_states (user_id, puzzle_key, puzzle_date, state, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, puzzle_key)
		DO UPDATE SET puzzle_date = EXCLUDED.puzzle_date, state = EXCLUDED.state, updated_at = NOW()
	`
	_, err = r.db.Exec(query, userID, puzzleKey, state.Date, blob)
	return err
}

// CleanOldStates deletes states not touched for the given number of days
func (r *PuzzleStateRepo) CleanOldStates(days int) error {
	query := `
		DELETE FROM puzzle_states
		WHERE updated_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}
