package handler

import (
	"fmt"
	"strings"

	"prefixle/internal/domain"
	"prefixle/internal/service"
)

const wordsPerPage = 15

func puzzleIntroText(p domain.Puzzle) string {
	return fmt.Sprintf(
		"🧩 Puzzle for %s\n\nFind words that start with %q and have %s.\nSend your words one at a time.",
		p.Day.DisplayString(),
		strings.ToUpper(p.Prefix),
		syllablesLabel(p.SyllableCount),
	)
}

func progressText(p domain.Progress) string {
	tier := p.CurrentAchievementTier
	if tier == "" {
		tier = "none yet"
	}

	var b strings.Builder
	b.WriteString("📊 Today's progress\n\n")
	fmt.Fprintf(&b, "Prefix: %s (%s)\n", strings.ToUpper(p.Prefix), syllablesLabel(p.SyllableCount))
	fmt.Fprintf(&b, "Words: %d of ~%d\n", p.FoundCount, p.PossibleWords)
	fmt.Fprintf(&b, "Score: %d of ~%d\n", p.TotalScore, p.MaxPossiblePoints)
	fmt.Fprintf(&b, "Achievement: %s", tier)
	return b.String()
}

// wordsPageText renders one page of found words. page is clamped to the valid range.
func wordsPageText(words []domain.ScoredWord, page int) (string, int, int) {
	totalPages := pageCount(len(words))
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	if len(words) == 0 {
		return "📝 You have not found any words yet", page, totalPages
	}

	start := (page - 1) * wordsPerPage
	end := min(start+wordsPerPage, len(words))

	var b strings.Builder
	fmt.Fprintf(&b, "📝 Found words (%d):\n\n", len(words))
	for i, w := range words[start:end] {
		fmt.Fprintf(&b, "%d. %s (+%d, %s)\n", start+i+1, w.Word, w.Points, w.Category)
	}
	if totalPages > 1 {
		fmt.Fprintf(&b, "\nPage %d of %d", page, totalPages)
	}
	return strings.TrimRight(b.String(), "\n"), page, totalPages
}

func submitText(r service.SubmitResult) string {
	if r.Success {
		return "✅ " + r.Message
	}
	return "❌ " + r.Message
}

func pageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + wordsPerPage - 1) / wordsPerPage
}

func syllablesLabel(n int) string {
	if n == 1 {
		return "1 syllable"
	}
	return fmt.Sprintf("%d syllables", n)
}
