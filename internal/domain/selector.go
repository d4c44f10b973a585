package domain

import (
	"errors"
	"time"

	"github.com/samber/lo"
)

// SyllableMode selects how the daily syllable count is derived
type SyllableMode string

const (
	SyllablesRotating SyllableMode = "rotating"
	SyllablesFixed    SyllableMode = "fixed"
)

// FixedSyllableCount is used in SyllablesFixed mode
const FixedSyllableCount = 2

var consonantBlends = []string{
	"bl", "br", "ch", "cl", "cr", "dr", "fl", "fr", "gl", "gr",
	"pl", "pr", "sc", "sh", "sk", "sl", "sm", "sn", "sp", "st",
	"sw", "th", "tr", "tw", "wh", "wr",
}

var commonPairs = []string{
	"co", "re", "in", "de", "ex", "pa", "ma", "ca", "mo", "po",
	"di", "pe", "be", "ba", "ha", "la", "ra", "ta", "sa", "fa",
	"ho", "lo", "ro", "to", "so", "mi", "li", "ti", "ri", "un",
	"st", "tr", "pr", "ch", "sh",
}

// DefaultPrefixes returns consonant blends followed by common letter pairs, duplicates removed
func DefaultPrefixes() []string {
	all := make([]string, 0, len(consonantBlends)+len(commonPairs))
	all = append(all, consonantBlends...)
	all = append(all, commonPairs...)
	return lo.Uniq(all)
}

// Puzzle is the rule set of one day
type Puzzle struct {
	Day           Day
	Prefix        string
	SyllableCount int
}

// Selector derives the daily puzzle from the calendar date
type Selector struct {
	prefixes []string
	mode     SyllableMode
}

// NewSelector creates a selector over a fixed prefix list
func NewSelector(prefixes []string, mode SyllableMode) (*Selector, error) {
	if len(prefixes) == 0 {
		return nil, errors.New("prefix list is empty")
	}
	if mode == "" {
		mode = SyllablesRotating
	}
	if mode != SyllablesRotating && mode != SyllablesFixed {
		return nil, errors.New("unknown syllable mode: " + string(mode))
	}
	return &Selector{prefixes: prefixes, mode: mode}, nil
}

// PuzzleFor returns the puzzle of the calendar day containing t
func (s *Selector) PuzzleFor(t time.Time) Puzzle {
	day := NewDay(t)
	return Puzzle{
		Day:           day,
		Prefix:        s.Prefix(day),
		SyllableCount: s.SyllableCount(day),
	}
}

// Prefix picks the day's prefix
func (s *Selector) Prefix(day Day) string {
	return s.prefixes[day.DateKey()%len(s.prefixes)]
}

// SyllableCount cycles 1, 2, 3 by day, or stays fixed
func (s *Selector) SyllableCount(day Day) int {
	if s.mode == SyllablesFixed {
		return FixedSyllableCount
	}
	return day.DaysSinceEpoch()%3 + 1
}
