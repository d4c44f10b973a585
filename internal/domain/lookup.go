package domain

import (
	"strconv"
	"strings"
)

const frequencyTagPrefix = "f:"

// LookupResult is one entry returned by the lexical lookup service
type LookupResult struct {
	Spelling     string
	NumSyllables int
	Tags         map[string]struct{}
	Exists       bool

	frequency float64
}

// NewLookupResult builds a result from raw service fields
func NewLookupResult(spelling string, numSyllables int, tags []string) LookupResult {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return LookupResult{
		Spelling:     spelling,
		NumSyllables: numSyllables,
		Tags:         set,
		Exists:       true,
		frequency:    parseFrequency(tags),
	}
}

// HasTag reports whether the entry carries tag
func (r LookupResult) HasTag(tag string) bool {
	_, ok := r.Tags[tag]
	return ok
}

// Frequency is the value of the "f:<number>" tag.
// Missing or unparsable tags count as zero, which scores as rare.
func (r LookupResult) Frequency() float64 {
	return r.frequency
}

// parseFrequency reads the first "f:" tag in service order
func parseFrequency(tags []string) float64 {
	for _, tag := range tags {
		if !strings.HasPrefix(tag, frequencyTagPrefix) {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimPrefix(tag, frequencyTagPrefix), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
