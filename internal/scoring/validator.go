package scoring

import (
	"fmt"

	"github.com/MikeSquared-Agency/Matrix/internal/matrix"
)

// Violation messages. Missing pairs are formatted with MissingScoreMessage.
const (
	MsgNoCriteria          = "At least one criterion is required"
	MsgNoAlternatives      = "At least one alternative is required"
	MsgTooManyCriteria     = "Maximum 10 criteria allowed"
	MsgTooManyAlternatives = "Maximum 3 alternatives allowed"
)

// MissingScoreMessage names the pair that has no rating record.
func MissingScoreMessage(criterionName, alternativeName string) string {
	return fmt.Sprintf("Missing score for %q and %q", criterionName, alternativeName)
}

// Report is the full outcome of a completeness check.
type Report struct {
	Violations []string `json:"violations"`
	Required   int      `json:"required"`
	Rated      int      `json:"rated"`
	Complete   bool     `json:"complete"`
}

// Valid reports whether no violations were found.
func (r Report) Valid() bool { return len(r.Violations) == 0 }

// Validate returns every failing check as a human-readable message.
// An empty result means the matrix may be scored.
func Validate(criteria []matrix.Criterion, alternatives []matrix.Alternative, ratings []matrix.Rating) []string {
	return Check(criteria, alternatives, ratings).Violations
}

// Check runs all checks without short-circuiting. A rating record counts as
// present whatever its value, so an explicit 0 satisfies completeness.
//
// Required and Rated carry the count check: Rated only counts records for
// current pairs, so a shortfall always shows up as individual missing-pair
// messages and is not reported twice.
func Check(criteria []matrix.Criterion, alternatives []matrix.Alternative, ratings []matrix.Rating) Report {
	violations := []string{}

	if len(criteria) == 0 {
		violations = append(violations, MsgNoCriteria)
	}
	if len(alternatives) == 0 {
		violations = append(violations, MsgNoAlternatives)
	}
	if len(criteria) > matrix.MaxCriteria {
		violations = append(violations, MsgTooManyCriteria)
	}
	if len(alternatives) > matrix.MaxAlternatives {
		violations = append(violations, MsgTooManyAlternatives)
	}

	required := len(criteria) * len(alternatives)
	rated := 0
	for _, c := range criteria {
		for _, a := range alternatives {
			if _, ok := matrix.FindRating(ratings, c.ID, a.ID); ok {
				rated++
				continue
			}
			violations = append(violations, MissingScoreMessage(c.Name, a.Name))
		}
	}

	return Report{
		Violations: violations,
		Required:   required,
		Rated:      rated,
		Complete:   required > 0 && rated == required,
	}
}
