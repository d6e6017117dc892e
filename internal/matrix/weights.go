package matrix

// WeightAdvisoryMessage is surfaced when criteria weights do not total WeightTarget.
const WeightAdvisoryMessage = "Consider adjusting weights to total 100%"

// TotalWeight returns the sum of all criteria weights.
func TotalWeight(criteria []Criterion) int {
	total := 0
	for _, c := range criteria {
		total += c.Weight
	}
	return total
}

// WeightAdvisory returns a warning when a non-empty criteria set does not
// total WeightTarget, and "" otherwise. It never blocks anything.
func WeightAdvisory(criteria []Criterion) string {
	if len(criteria) == 0 || TotalWeight(criteria) == WeightTarget {
		return ""
	}
	return WeightAdvisoryMessage
}
