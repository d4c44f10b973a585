package repository

import (
	"prefixle/internal/domain"
)

// PlayerRepository defines player data operations
type PlayerRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizePlayer(userID int64) error
	EnsurePlayer(userID int64, username string) error
}

// PuzzleStateRepository stores one puzzle state blob per player and puzzle key
type PuzzleStateRepository interface {
	// LoadState returns nil, nil when nothing is stored
	LoadState(userID int64, puzzleKey string) (*domain.PuzzleState, error)
	SaveState(userID int64, puzzleKey string, state *domain.PuzzleState) error
	CleanOldStates(days int) error
}
