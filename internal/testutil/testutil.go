package testutil

import (
	"fmt"
	"time"

	"prefixle/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// FixedClock returns a clock stuck at t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NewTestSelector creates a selector that always yields prefix
func NewTestSelector(prefix string, mode domain.SyllableMode) *domain.Selector {
	s, err := domain.NewSelector([]string{prefix}, mode)
	if err != nil {
		panic(err)
	}
	return s
}

// NewTestLookup creates a lookup result with a frequency tag
func NewTestLookup(word string, syllables int, freq float64) domain.LookupResult {
	return domain.NewLookupResult(word, syllables, []string{fmt.Sprintf("f:%g", freq)})
}

// NewTestState creates a puzzle state for the given date with found words worth one point each
func NewTestState(date time.Time, prefix string, syllables int, words ...string) *domain.PuzzleState {
	puzzle := domain.Puzzle{Day: domain.NewDay(date), Prefix: prefix, SyllableCount: syllables}
	state := domain.NewPuzzleState(puzzle, domain.PuzzleTotals{PossibleWords: 20, MaxPossiblePoints: 60})
	for _, w := range words {
		state.AddWord(w, domain.FoundWord{Points: 1, Category: domain.CategoryCommon})
	}
	return state
}
