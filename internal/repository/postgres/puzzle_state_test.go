package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"

	"prefixle/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loadStateQuery = "SELECT state FROM puzzle_states WHERE user_id = \\$1 AND puzzle_key = \\$2"

func testState() *domain.PuzzleState {
	return &domain.PuzzleState{
		Prefix:        "br",
		SyllableCount: 2,
		FoundWords: map[string]domain.FoundWord{
			"brother": {Points: 1, Category: domain.CategoryCommon},
		},
		TotalScore:             1,
		CurrentAchievementTier: "First Find",
		PossibleWords:          20,
		MaxPossiblePoints:      60,
		Date:                   "2026-10-15",
		DayOfWeek:              "Thursday",
	}
}

func TestPuzzleStateRepo_LoadState(t *testing.T) {
	stored := testState()
	blob, err := json.Marshal(stored)
	require.NoError(t, err)

	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expected      *domain.PuzzleState
		expectedError bool
	}{
		{
			name:     "state found",
			mockRows: sqlmock.NewRows([]string{"state"}).AddRow(blob),
			expected: stored,
		},
		{
			name:      "nothing stored",
			mockError: sql.ErrNoRows,
			expected:  nil,
		},
		{
			name:          "query error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
		{
			name:          "corrupt blob",
			mockRows:      sqlmock.NewRows([]string{"state"}).AddRow([]byte(`{"prefix":`)),
			expectedError: true,
		},
		{
			name:     "blob without found words",
			mockRows: sqlmock.NewRows([]string{"state"}).AddRow([]byte(`{"prefix":"br","date":"2026-10-15"}`)),
			expected: &domain.PuzzleState{
				Prefix:     "br",
				Date:       "2026-10-15",
				FoundWords: map[string]domain.FoundWord{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewPuzzleStateRepo(db)

			if tt.mockError != nil {
				mock.ExpectQuery(loadStateQuery).WithArgs(int64(123), "daily").WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(loadStateQuery).WithArgs(int64(123), "daily").WillReturnRows(tt.mockRows)
			}

			state, err := repo.LoadState(123, "daily")

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, state)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, state)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPuzzleStateRepo_SaveState(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPuzzleStateRepo(db)
	state := testState()

	mock.ExpectExec("INSERT INTO puzzle_states").
		WithArgs(int64(123), "daily", "2026-10-15", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.SaveState(123, "daily", state)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPuzzleStateRepo_SaveState_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPuzzleStateRepo(db)

	mock.ExpectExec("INSERT INTO puzzle_states").
		WithArgs(int64(123), "daily", "2026-10-15", sqlmock.AnyArg()).
		WillReturnError(fmt.Errorf("disk full"))

	err = repo.SaveState(123, "daily", testState())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPuzzleStateRepo_CleanOldStates(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPuzzleStateRepo(db)

	mock.ExpectExec("DELETE FROM puzzle_states").
		WithArgs(30).
		WillReturnResult(sqlmock.NewResult(0, 12))

	err = repo.CleanOldStates(30)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
