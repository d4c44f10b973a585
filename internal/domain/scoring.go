package domain

// PointsForFrequency maps a frequency per million words to 1..3 points.
// Rare words are worth more.
func PointsForFrequency(freq float64) int {
	switch {
	case freq > 10:
		return 1
	case freq > 1:
		return 2
	default:
		return 3
	}
}

// CategoryForPoints names the frequency tier of a point value
func CategoryForPoints(points int) Category {
	switch points {
	case 1:
		return CategoryCommon
	case 2:
		return CategoryModerate
	default:
		return CategoryChallenging
	}
}

// Score builds the found-word record for a frequency value
func Score(freq float64) FoundWord {
	points := PointsForFrequency(freq)
	return FoundWord{Points: points, Category: CategoryForPoints(points)}
}
