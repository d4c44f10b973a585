package domain

import "strings"

// Endings that look plural but usually are not (discuss, famous, physics)
var nonPluralEndings = []string{"ss", "ous", "ics"}

var pluralEndings = []string{"s", "es", "ers", "ors", "ies"}

// IsLikelyPlural guesses whether word is a plural form from its ending
func IsLikelyPlural(word string) bool {
	w := strings.ToLower(word)

	for _, ending := range nonPluralEndings {
		if strings.HasSuffix(w, ending) {
			return false
		}
	}

	for _, ending := range pluralEndings {
		if !strings.HasSuffix(w, ending) {
			continue
		}
		if ending == "s" && strings.HasSuffix(w, "ss") {
			continue
		}
		return true
	}
	return false
}

// SingularForm strips a plural ending: ies->y, es->"", s->"".
// Returns false when word has none of these endings.
func SingularForm(word string) (string, bool) {
	switch {
	case strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y", true
	case strings.HasSuffix(word, "es"):
		return word[:len(word)-2], true
	case strings.HasSuffix(word, "s"):
		return word[:len(word)-1], true
	}
	return "", false
}

// PluralCandidates returns the plural spellings that would collide with word
func PluralCandidates(word string) []string {
	candidates := []string{word + "s", word + "es"}
	if strings.HasSuffix(word, "y") {
		candidates = append(candidates, word[:len(word)-1]+"ies")
	}
	return candidates
}
