package service

import (
	"prefixle/internal/domain"

	"go.uber.org/zap"
)

// AchievementTracker moves a puzzle state up its achievement ladder
type AchievementTracker struct {
	ladder domain.Ladder
	logger *zap.Logger
}

// NewAchievementTracker creates a tracker for the given ladder
func NewAchievementTracker(ladder domain.Ladder, logger *zap.Logger) *AchievementTracker {
	return &AchievementTracker{
		ladder: ladder,
		logger: logger,
	}
}

// Observe recomputes the tier. A tier is never replaced by a lower one, and a
// tier from another ladder (the mode changed during the day) is left as is.
func (t *AchievementTracker) Observe(state *domain.PuzzleState) (string, bool) {
	current := t.ladder.Rank(state.CurrentAchievementTier)
	if current < 0 && state.CurrentAchievementTier != "" {
		t.logger.Debug("Keeping tier from another ladder",
			zap.String("tier", state.CurrentAchievementTier),
			zap.String("mode", string(t.ladder.Mode)),
		)
		return "", false
	}

	reached := t.ladder.Reached(state)
	if reached < 0 || reached <= current {
		return "", false
	}

	tier := t.ladder.Tiers[reached].Name
	state.CurrentAchievementTier = tier

	t.logger.Info("Achievement unlocked",
		zap.String("tier", tier),
		zap.String("mode", string(t.ladder.Mode)),
		zap.Int("found", state.FoundCount()),
	)
	return tier, true
}
