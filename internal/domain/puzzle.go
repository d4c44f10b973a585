package domain

import (
	"sort"
	"strings"
)

// Category is a frequency tier of a found word
type Category string

const (
	CategoryCommon      Category = "common"
	CategoryModerate    Category = "moderate"
	CategoryChallenging Category = "challenging"
)

// FoundWord holds the score of an accepted word
type FoundWord struct {
	Points   int      `json:"points"`
	Category Category `json:"category"`
}

// ScoredWord is a found word together with its spelling, for listings
type ScoredWord struct {
	Word string `json:"word"`
	FoundWord
}

// PuzzleState is a player's progress on one day's puzzle.
// Prefix and SyllableCount never change after the state is created.
type PuzzleState struct {
	Prefix                 string               `json:"prefix"`
	SyllableCount          int                  `json:"syllableCount"`
	FoundWords             map[string]FoundWord `json:"foundWords"`
	TotalScore             int                  `json:"totalScore"`
	CurrentAchievementTier string               `json:"currentAchievementTier"`
	PossibleWords          int                  `json:"possibleWords"`
	MaxPossiblePoints      int                  `json:"maxPossiblePoints"`
	Date                   string               `json:"date"`
	DayOfWeek              string               `json:"dayOfWeek"`
}

// PuzzleTotals are the estimated word and point totals of a puzzle
type PuzzleTotals struct {
	PossibleWords     int
	MaxPossiblePoints int
}

// NewPuzzleState creates an empty state for the given puzzle
func NewPuzzleState(puzzle Puzzle, totals PuzzleTotals) *PuzzleState {
	return &PuzzleState{
		Prefix:            puzzle.Prefix,
		SyllableCount:     puzzle.SyllableCount,
		FoundWords:        make(map[string]FoundWord),
		PossibleWords:     totals.PossibleWords,
		MaxPossiblePoints: totals.MaxPossiblePoints,
		Date:              puzzle.Day.DateString(),
		DayOfWeek:         puzzle.Day.Weekday(),
	}
}

// HasWord reports whether word was already found
func (s *PuzzleState) HasWord(word string) bool {
	_, ok := s.FoundWords[strings.ToLower(word)]
	return ok
}

// AddWord records an accepted word and adds its points to the total
func (s *PuzzleState) AddWord(word string, found FoundWord) {
	if s.FoundWords == nil {
		s.FoundWords = make(map[string]FoundWord)
	}
	s.FoundWords[strings.ToLower(word)] = found
	s.RecalculateScore()
}

// RecalculateScore sets TotalScore to the sum of all found word points
func (s *PuzzleState) RecalculateScore() {
	total := 0
	for _, fw := range s.FoundWords {
		total += fw.Points
	}
	s.TotalScore = total
}

// FoundCount returns the number of found words
func (s *PuzzleState) FoundCount() int {
	return len(s.FoundWords)
}

// SortedWords returns found words ordered alphabetically
func (s *PuzzleState) SortedWords() []ScoredWord {
	words := make([]ScoredWord, 0, len(s.FoundWords))
	for w, fw := range s.FoundWords {
		words = append(words, ScoredWord{Word: w, FoundWord: fw})
	}
	sort.Slice(words, func(i, j int) bool {
		return words[i].Word < words[j].Word
	})
	return words
}

// MergeWords adds the words of other that s does not have yet and returns how many were added.
// An empty tier is taken from other.
func (s *PuzzleState) MergeWords(other *PuzzleState) int {
	added := 0
	for w, fw := range other.FoundWords {
		if s.HasWord(w) {
			continue
		}
		if s.FoundWords == nil {
			s.FoundWords = make(map[string]FoundWord)
		}
		s.FoundWords[w] = fw
		added++
	}
	if s.CurrentAchievementTier == "" {
		s.CurrentAchievementTier = other.CurrentAchievementTier
	}
	s.RecalculateScore()
	return added
}

// Progress is a read-only summary of a puzzle state
type Progress struct {
	Prefix                 string `json:"prefix"`
	SyllableCount          int    `json:"syllableCount"`
	TotalScore             int    `json:"totalScore"`
	FoundCount             int    `json:"foundCount"`
	PossibleWords          int    `json:"possibleWords"`
	MaxPossiblePoints      int    `json:"maxPossiblePoints"`
	CurrentAchievementTier string `json:"currentAchievementTier"`
}

// Progress builds the progress summary
func (s *PuzzleState) Progress() Progress {
	return Progress{
		Prefix:                 s.Prefix,
		SyllableCount:          s.SyllableCount,
		TotalScore:             s.TotalScore,
		FoundCount:             s.FoundCount(),
		PossibleWords:          s.PossibleWords,
		MaxPossiblePoints:      s.MaxPossiblePoints,
		CurrentAchievementTier: s.CurrentAchievementTier,
	}
}
