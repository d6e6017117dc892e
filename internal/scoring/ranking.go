package scoring

import (
	"sort"

	"github.com/MikeSquared-Agency/Matrix/internal/matrix"
)

// ComputeRanking scores every alternative against every criterion and ranks
// them by total score, highest first.
//
//	weighted = rating × weight        (missing rating → 0)
//	total    = Σ weighted, in criteria order
//
// Weights are not normalised. Ties keep input order. The function is total:
// empty criteria yield zero totals, empty alternatives yield an empty slice.
func ComputeRanking(criteria []matrix.Criterion, alternatives []matrix.Alternative, ratings []matrix.Rating) []matrix.RankedResult {
	results := make([]matrix.RankedResult, 0, len(alternatives))

	for _, alt := range alternatives {
		breakdown := make([]matrix.CriterionScore, 0, len(criteria))
		var total float64
		for _, c := range criteria {
			raw := float64(matrix.RatingValue(ratings, c.ID, alt.ID))
			weighted := raw * float64(c.Weight)
			breakdown = append(breakdown, matrix.CriterionScore{
				CriterionName: c.Name,
				RawScore:      raw,
				WeightedScore: weighted,
			})
			total += weighted
		}
		results = append(results, matrix.RankedResult{
			AlternativeID:   alt.ID,
			AlternativeName: alt.Name,
			TotalScore:      total,
			CriterionScores: breakdown,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// Winner returns the rank-1 result, if any.
func Winner(results []matrix.RankedResult) (matrix.RankedResult, bool) {
	if len(results) == 0 {
		return matrix.RankedResult{}, false
	}
	return results[0], true
}
