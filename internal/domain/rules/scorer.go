package rules

import "math"

// Score aggregates rule results into the completeness score: the fraction of
// REQUIRED rules that passed, rounded to two decimals. A rule set with zero
// required rules yields 1.0 so a jurisdiction without required rules cannot
// block progress. Warning-severity results never affect the score.
func Score(results []Result) float64 {
	var required, passed int
	for _, r := range results {
		if !r.Severity.IsRequired() {
			continue
		}
		required++
		if r.Passed {
			passed++
		}
	}

	if required == 0 {
		return 1.0
	}

	score := float64(passed) / float64(required)
	return math.Round(score*100) / 100
}
