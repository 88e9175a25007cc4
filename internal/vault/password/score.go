package password

import "unicode"

// Strength is the classification band derived from a score.
type Strength string

const (
	Weak   Strength = "Weak"
	Fair   Strength = "Fair"
	Good   Strength = "Good"
	Strong Strength = "Strong"
)

// Score estimates password quality on a 0-100 scale. It is an additive
// heuristic, not cryptanalysis: length bonuses (+20 at 8, +10 at 12, +10 at
// 16, stacking), +15 per character class present, and +10 when the count of
// distinct characters exceeds 70% of the length.
func Score(pw string) int {
	if pw == "" {
		return 0
	}

	runes := []rune(pw)
	score := 0

	switch {
	case len(runes) >= 16:
		score += 40
	case len(runes) >= 12:
		score += 30
	case len(runes) >= 8:
		score += 20
	}

	var hasLower, hasUpper, hasDigit, hasOther bool
	distinct := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		distinct[r] = struct{}{}
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasOther = true
		}
	}

	if hasLower {
		score += 15
	}
	if hasUpper {
		score += 15
	}
	if hasDigit {
		score += 15
	}
	if hasOther {
		score += 15
	}

	if float64(len(distinct)) > 0.7*float64(len(runes)) {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// Classify maps a score onto its strength band.
func Classify(score int) Strength {
	switch {
	case score >= 80:
		return Strong
	case score >= 60:
		return Good
	case score >= 30:
		return Fair
	default:
		return Weak
	}
}
