package postgres

import (
	"database/sql"
)

// PlayerRepo implements repository.PlayerRepository
type PlayerRepo struct {
	db *sql.DB
}

// NewPlayerRepo creates a new player repository
func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// IsAuthorized checks if player has entered the game password
func (r *PlayerRepo) IsAuthorized(userID int64) (bool, error) {
	var authorized bool
	query := `SELECT authorized FROM players WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&authorized)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return authorized, nil
}

// AuthorizePlayer marks player as authorized
func (r *PlayerRepo) AuthorizePlayer(userID int64) error {
	query := `
		INSERT INTO players (user_id, authorized)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// EnsurePlayer creates the player if missing and refreshes last seen time.
// An empty username keeps the stored one.
func (r *PlayerRepo) EnsurePlayer(userID int64, username string) error {
	query := `
		INSERT INTO players (user_id, username, authorized, last_seen_at)
		VALUES ($1, $2, FALSE, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET username = COALESCE(NULLIF(EXCLUDED.username, ''), players.username), last_seen_at = NOW()
	`
	_, err := r.db.Exec(query, userID, username)
	return err
}
