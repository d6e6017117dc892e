package workflow

// Stage is one step of the matrix workflow. The order is strictly linear.
type Stage string

const (
	StageCriteria     Stage = "criteria"
	StageAlternatives Stage = "alternatives"
	StageScoring      Stage = "scoring"
	StageResults      Stage = "results"
)

// InitialStage is where every new or reset session starts.
const InitialStage = StageCriteria

// Stages lists every stage in workflow order.
var Stages = []Stage{StageCriteria, StageAlternatives, StageScoring, StageResults}

// Number returns the 1-based position of the stage, or 0 for an unknown value.
func (s Stage) Number() int {
	for i, st := range Stages {
		if st == s {
			return i + 1
		}
	}
	return 0
}

func (s Stage) Label() string {
	switch s {
	case StageCriteria:
		return "Criteria"
	case StageAlternatives:
		return "Alternatives"
	case StageScoring:
		return "Scoring"
	case StageResults:
		return "Results"
	}
	return ""
}

func (s Stage) Valid() bool { return s.Number() > 0 }

// Next returns the following stage. ok is false at the last stage.
func (s Stage) Next() (Stage, bool) {
	n := s.Number()
	if n == 0 || n == len(Stages) {
		return s, false
	}
	return Stages[n], true
}

// Prev returns the preceding stage. ok is false at the first stage.
func (s Stage) Prev() (Stage, bool) {
	n := s.Number()
	if n <= 1 {
		return s, false
	}
	return Stages[n-2], true
}
