package workflow

import (
	"github.com/MikeSquared-Agency/Matrix/internal/matrix"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

// State is the aggregate every transition takes and returns.
// Results are derived and only populated in StageResults.
type State struct {
	Stage        Stage                 `json:"stage"`
	Criteria     []matrix.Criterion    `json:"criteria"`
	Alternatives []matrix.Alternative  `json:"alternatives"`
	Ratings      []matrix.Rating       `json:"ratings"`
	Results      []matrix.RankedResult `json:"results"`
}

// NewState returns the initial, empty state.
func NewState() State {
	return State{
		Stage:        InitialStage,
		Criteria:     []matrix.Criterion{},
		Alternatives: []matrix.Alternative{},
		Ratings:      []matrix.Rating{},
		Results:      []matrix.RankedResult{},
	}
}

// Advance moves one stage forward when the gate for the current stage holds.
// On rejection the state is returned unchanged together with the violations.
// Advancing from StageResults is a no-op.
//
//	criteria     → alternatives   criteria non-empty
//	alternatives → scoring        alternatives non-empty
//	scoring      → results        scoring.Validate passes; ranking computed
func Advance(s State) (State, []string) {
	switch s.Stage {
	case StageCriteria:
		if len(s.Criteria) == 0 {
			return s, []string{scoring.MsgNoCriteria}
		}
		s.Stage = StageAlternatives
	case StageAlternatives:
		if len(s.Alternatives) == 0 {
			return s, []string{scoring.MsgNoAlternatives}
		}
		s.Stage = StageScoring
	case StageScoring:
		if violations := scoring.Validate(s.Criteria, s.Alternatives, s.Ratings); len(violations) > 0 {
			return s, violations
		}
		s.Results = scoring.ComputeRanking(s.Criteria, s.Alternatives, s.Ratings)
		s.Stage = StageResults
	}
	return s, nil
}

// Retreat moves one stage back. It never validates and keeps the three input
// collections verbatim. Leaving StageResults drops the derived results.
// Retreating from StageCriteria is a no-op.
func Retreat(s State) State {
	prev, ok := s.Stage.Prev()
	if !ok {
		return s
	}
	if s.Stage == StageResults {
		s.Results = []matrix.RankedResult{}
	}
	s.Stage = prev
	return s
}

// ResetAll discards everything and returns to the initial stage.
func ResetAll(State) State {
	return NewState()
}
