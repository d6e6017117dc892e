package scoring

import "github.com/MikeSquared-Agency/Matrix/internal/matrix"

// Frontier returns the ids of alternatives no other alternative dominates,
// in input order. An alternative is dominated if another one is rated >= on
// every criterion and strictly higher on at least one. Weights play no part,
// so the frontier is advisory and never changes ranks.
// O(n^2·m); n is capped at three.
func Frontier(criteria []matrix.Criterion, alternatives []matrix.Alternative, ratings []matrix.Rating) []string {
	frontier := []string{}
	for i := range alternatives {
		dominated := false
		for j := range alternatives {
			if i == j {
				continue
			}
			if dominates(criteria, ratings, alternatives[j].ID, alternatives[i].ID) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, alternatives[i].ID)
		}
	}
	return frontier
}

// dominates returns true if alternative a dominates alternative b.
func dominates(criteria []matrix.Criterion, ratings []matrix.Rating, a, b string) bool {
	strictly := false
	for _, c := range criteria {
		av := matrix.RatingValue(ratings, c.ID, a)
		bv := matrix.RatingValue(ratings, c.ID, b)
		if av < bv {
			return false
		}
		if av > bv {
			strictly = true
		}
	}
	return strictly
}
