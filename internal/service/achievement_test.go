package service

import (
	"testing"

	"prefixle/internal/domain"
	"prefixle/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementTracker_Observe(t *testing.T) {
	ladder, err := domain.NewLadder(domain.AchievementAbsolute)
	require.NoError(t, err)
	tracker := NewAchievementTracker(ladder, testutil.NewTestLogger())

	state := testutil.NewTestState(testNow, "br", 2)

	tier, unlocked := tracker.Observe(state)
	assert.False(t, unlocked)
	assert.Empty(t, tier)

	state.AddWord("brother", domain.FoundWord{Points: 1, Category: domain.CategoryCommon})
	tier, unlocked = tracker.Observe(state)
	assert.True(t, unlocked)
	assert.Equal(t, "First Find", tier)

	// same tier again is not a new unlock
	state.AddWord("broker", domain.FoundWord{Points: 2, Category: domain.CategoryModerate})
	_, unlocked = tracker.Observe(state)
	assert.False(t, unlocked)
	assert.Equal(t, "First Find", state.CurrentAchievementTier)
}

func TestAchievementTracker_NeverDowngrades(t *testing.T) {
	ladder, err := domain.NewLadder(domain.AchievementProportional)
	require.NoError(t, err)
	tracker := NewAchievementTracker(ladder, testutil.NewTestLogger())

	state := testutil.NewTestState(testNow, "br", 2, "bracket", "brandy", "brazen")
	state.CurrentAchievementTier = "Great"

	// 3 of 20 is only "Good Start"
	tier, unlocked := tracker.Observe(state)

	assert.False(t, unlocked)
	assert.Empty(t, tier)
	assert.Equal(t, "Great", state.CurrentAchievementTier)

	// a smaller estimate pushes the ratio past "Amazing"
	state.PossibleWords = 4
	tier, unlocked = tracker.Observe(state)

	assert.True(t, unlocked)
	assert.Equal(t, "Amazing", tier)
}

func TestAchievementTracker_KeepsTierFromOtherLadder(t *testing.T) {
	ladder, err := domain.NewLadder(domain.AchievementAbsolute)
	require.NoError(t, err)
	tracker := NewAchievementTracker(ladder, testutil.NewTestLogger())

	// stored while the proportional ladder was active
	state := testutil.NewTestState(testNow, "br", 2, "bracket", "brandy")
	state.CurrentAchievementTier = "Genius"

	tier, unlocked := tracker.Observe(state)

	assert.False(t, unlocked)
	assert.Empty(t, tier)
	assert.Equal(t, "Genius", state.CurrentAchievementTier)
}
