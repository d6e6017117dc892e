package matrix

// Collection caps and the rating scale. 0 on the scale means "unrated".
const (
	MaxCriteria     = 10
	MaxAlternatives = 3

	MinRating = 0
	MaxRating = 5

	// WeightTarget is the advisory total for criteria weights. It is never enforced.
	WeightTarget = 100
)

// Criterion is a named, weighted factor used to judge alternatives.
type Criterion struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// Alternative is one of the options being compared.
type Alternative struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Rating scores one (criterion, alternative) pair. The pair is the natural key.
type Rating struct {
	CriterionID   string `json:"criterion_id"`
	AlternativeID string `json:"alternative_id"`
	Value         int    `json:"value"`
}

// CriterionScore is one line of a RankedResult breakdown.
type CriterionScore struct {
	CriterionName string  `json:"criterion_name"`
	RawScore      float64 `json:"raw_score"`
	WeightedScore float64 `json:"weighted_score"`
}

// RankedResult is derived on every scoring computation and never mutated by callers.
type RankedResult struct {
	AlternativeID   string           `json:"alternative_id"`
	AlternativeName string           `json:"alternative_name"`
	TotalScore      float64          `json:"total_score"`
	Rank            int              `json:"rank"`
	CriterionScores []CriterionScore `json:"criterion_scores"`
}
