package handler

import (
	"fmt"
	"testing"
	"time"

	"prefixle/internal/domain"
	"prefixle/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestPuzzleIntroText(t *testing.T) {
	puzzle := domain.Puzzle{
		Day:           domain.NewDay(time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)),
		Prefix:        "br",
		SyllableCount: 1,
	}

	text := puzzleIntroText(puzzle)

	assert.Contains(t, text, "Thursday, 15 Oct 2026")
	assert.Contains(t, text, `start with "BR"`)
	assert.Contains(t, text, "1 syllable.")
}

func TestProgressText(t *testing.T) {
	tests := []struct {
		name     string
		progress domain.Progress
		contains []string
	}{
		{
			name: "no achievement yet",
			progress: domain.Progress{
				Prefix: "st", SyllableCount: 2, PossibleWords: 20, MaxPossiblePoints: 60,
			},
			contains: []string{"Prefix: ST (2 syllables)", "Words: 0 of ~20", "Score: 0 of ~60", "Achievement: none yet"},
		},
		{
			name: "with achievement",
			progress: domain.Progress{
				Prefix: "st", SyllableCount: 3, FoundCount: 6, TotalScore: 11,
				PossibleWords: 40, MaxPossiblePoints: 95, CurrentAchievementTier: "Warming Up",
			},
			contains: []string{"Words: 6 of ~40", "Score: 11 of ~95", "Achievement: Warming Up"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := progressText(tt.progress)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
		})
	}
}

func scoredWords(n int) []domain.ScoredWord {
	words := make([]domain.ScoredWord, n)
	for i := range words {
		words[i] = domain.ScoredWord{
			Word:      fmt.Sprintf("brword%02d", i+1),
			FoundWord: domain.FoundWord{Points: 1, Category: domain.CategoryCommon},
		}
	}
	return words
}

func TestWordsPageText(t *testing.T) {
	tests := []struct {
		name          string
		count         int
		page          int
		expectedPage  int
		expectedTotal int
		contains      []string
		notContains   []string
	}{
		{
			name:          "no words",
			count:         0,
			page:          1,
			expectedPage:  1,
			expectedTotal: 1,
			contains:      []string{"not found any words"},
		},
		{
			name:          "single page",
			count:         3,
			page:          1,
			expectedPage:  1,
			expectedTotal: 1,
			contains:      []string{"Found words (3)", "1. brword01 (+1, common)", "3. brword03"},
			notContains:   []string{"Page "},
		},
		{
			name:          "second page",
			count:         20,
			page:          2,
			expectedPage:  2,
			expectedTotal: 2,
			contains:      []string{"16. brword16", "20. brword20", "Page 2 of 2"},
			notContains:   []string{"brword15"},
		},
		{
			name:          "page past the end is clamped",
			count:         20,
			page:          9,
			expectedPage:  2,
			expectedTotal: 2,
			contains:      []string{"Page 2 of 2"},
		},
		{
			name:          "page before the start is clamped",
			count:         31,
			page:          0,
			expectedPage:  1,
			expectedTotal: 3,
			contains:      []string{"1. brword01", "Page 1 of 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, page, total := wordsPageText(scoredWords(tt.count), tt.page)

			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedTotal, total)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestSubmitText(t *testing.T) {
	accepted := submitText(service.SubmitResult{Success: true, Message: `"brick" accepted`})
	rejected := submitText(service.SubmitResult{Success: false, Message: "Plural words are not allowed"})

	assert.Equal(t, `✅ "brick" accepted`, accepted)
	assert.Equal(t, "❌ Plural words are not allowed", rejected)
}
