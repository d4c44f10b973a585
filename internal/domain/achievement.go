package domain

import "errors"

// AchievementMode selects how tier thresholds are measured
type AchievementMode string

const (
	AchievementAbsolute     AchievementMode = "absolute"
	AchievementProportional AchievementMode = "proportional"
)

// Tier is a named milestone. Threshold is a found-word count in absolute
// mode and a fraction of possible words in proportional mode.
type Tier struct {
	Name      string
	Threshold float64
}

// Tiers are ordered from lowest to highest threshold
var absoluteTiers = []Tier{
	{Name: "First Find", Threshold: 1},
	{Name: "Warming Up", Threshold: 5},
	{Name: "Word Hunter", Threshold: 10},
	{Name: "Wordsmith", Threshold: 20},
	{Name: "Lexicon Legend", Threshold: 35},
}

var proportionalTiers = []Tier{
	{Name: "Beginner", Threshold: 0.05},
	{Name: "Good Start", Threshold: 0.15},
	{Name: "Solid", Threshold: 0.30},
	{Name: "Great", Threshold: 0.50},
	{Name: "Amazing", Threshold: 0.75},
	{Name: "Genius", Threshold: 1.0},
}

// Ladder is a fixed tier list with its measuring mode
type Ladder struct {
	Mode  AchievementMode
	Tiers []Tier
}

// NewLadder returns the built-in ladder for mode
func NewLadder(mode AchievementMode) (Ladder, error) {
	switch mode {
	case AchievementAbsolute, "":
		return Ladder{Mode: AchievementAbsolute, Tiers: absoluteTiers}, nil
	case AchievementProportional:
		return Ladder{Mode: AchievementProportional, Tiers: proportionalTiers}, nil
	}
	return Ladder{}, errors.New("unknown achievement mode: " + string(mode))
}

// Reached returns the highest tier met by the state, or -1 when none is
func (l Ladder) Reached(s *PuzzleState) int {
	for i := len(l.Tiers) - 1; i >= 0; i-- {
		if l.met(l.Tiers[i], s) {
			return i
		}
	}
	return -1
}

// Rank returns the index of the named tier, or -1 for an unknown or empty name
func (l Ladder) Rank(name string) int {
	for i, t := range l.Tiers {
		if t.Name == name {
			return i
		}
	}
	return -1
}

func (l Ladder) met(t Tier, s *PuzzleState) bool {
	found := float64(s.FoundCount())
	if l.Mode == AchievementProportional {
		if s.PossibleWords <= 0 {
			return false
		}
		return found/float64(s.PossibleWords) >= t.Threshold
	}
	return found >= t.Threshold
}
