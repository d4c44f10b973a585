package testutil

import (
	"context"

	"prefixle/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockPlayerRepository is a mock for PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlayerRepository) AuthorizePlayer(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockPlayerRepository) EnsurePlayer(userID int64, username string) error {
	args := m.Called(userID, username)
	return args.Error(0)
}

// MockPuzzleStateRepository is a mock for PuzzleStateRepository
type MockPuzzleStateRepository struct {
	mock.Mock
}

func (m *MockPuzzleStateRepository) LoadState(userID int64, puzzleKey string) (*domain.PuzzleState, error) {
	args := m.Called(userID, puzzleKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PuzzleState), args.Error(1)
}

func (m *MockPuzzleStateRepository) SaveState(userID int64, puzzleKey string, state *domain.PuzzleState) error {
	args := m.Called(userID, puzzleKey, state)
	return args.Error(0)
}

func (m *MockPuzzleStateRepository) CleanOldStates(days int) error {
	args := m.Called(days)
	return args.Error(0)
}

// MockLexicon is a mock for the lookup client
type MockLexicon struct {
	mock.Mock
}

func (m *MockLexicon) EstimatePuzzleTotals(ctx context.Context, prefix string, syllables int) domain.PuzzleTotals {
	args := m.Called(ctx, prefix, syllables)
	return args.Get(0).(domain.PuzzleTotals)
}

func (m *MockLexicon) LookupExact(ctx context.Context, word string, syllables int) (domain.LookupResult, bool) {
	args := m.Called(ctx, word, syllables)
	return args.Get(0).(domain.LookupResult), args.Bool(1)
}
