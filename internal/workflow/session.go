package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Matrix/internal/matrix"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

// Session is one independent matrix session. It owns the three input
// collections and replaces them wholesale on every mutation.
// A Session is not safe for concurrent use; the store serialises access.
type Session struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	state State
	newID func() string
	now   func() time.Time
}

// NewSession creates a session at the initial stage.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		state:     NewState(),
		newID:     uuid.NewString,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// State returns a copy of the current aggregate.
func (s *Session) State() State {
	return State{
		Stage:        s.state.Stage,
		Criteria:     matrix.CloneCriteria(s.state.Criteria),
		Alternatives: matrix.CloneAlternatives(s.state.Alternatives),
		Ratings:      matrix.CloneRatings(s.state.Ratings),
		Results:      cloneResults(s.state.Results),
	}
}

func (s *Session) Stage() Stage { return s.state.Stage }

// Clone returns an independent copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	c.state = s.State()
	return &c
}

// --- Criteria ---

// AddCriterion inserts a new criterion with a generated id.
func (s *Session) AddCriterion(name string, weight int) (matrix.Criterion, bool) {
	c := matrix.Criterion{ID: s.newID(), Name: name, Weight: weight}
	criteria, ok := matrix.AddCriterion(s.state.Criteria, c)
	if !ok {
		return matrix.Criterion{}, false
	}
	s.state.Criteria = criteria
	s.touch()
	return criteria[len(criteria)-1], true
}

func (s *Session) UpdateCriterion(id, name string, weight int) bool {
	criteria, ok := matrix.UpdateCriterion(s.state.Criteria, id, name, weight)
	if ok {
		s.state.Criteria = criteria
		s.touch()
	}
	return ok
}

func (s *Session) RemoveCriterion(id string) bool {
	criteria, ok := matrix.RemoveCriterion(s.state.Criteria, id)
	if ok {
		s.state.Criteria = criteria
		s.touch()
	}
	return ok
}

// --- Alternatives ---

func (s *Session) AddAlternative(name string) (matrix.Alternative, bool) {
	a := matrix.Alternative{ID: s.newID(), Name: name}
	alternatives, ok := matrix.AddAlternative(s.state.Alternatives, a)
	if !ok {
		return matrix.Alternative{}, false
	}
	s.state.Alternatives = alternatives
	s.touch()
	return alternatives[len(alternatives)-1], true
}

func (s *Session) UpdateAlternative(id, name string) bool {
	alternatives, ok := matrix.UpdateAlternative(s.state.Alternatives, id, name)
	if ok {
		s.state.Alternatives = alternatives
		s.touch()
	}
	return ok
}

func (s *Session) RemoveAlternative(id string) bool {
	alternatives, ok := matrix.RemoveAlternative(s.state.Alternatives, id)
	if ok {
		s.state.Alternatives = alternatives
		s.touch()
	}
	return ok
}

// --- Ratings ---

// SetRating upserts the rating for a pair. Both ids must name entries that
// currently exist in the session.
func (s *Session) SetRating(criterionID, alternativeID string, value int) bool {
	if _, ok := matrix.FindCriterion(s.state.Criteria, criterionID); !ok {
		return false
	}
	if _, ok := matrix.FindAlternative(s.state.Alternatives, alternativeID); !ok {
		return false
	}
	ratings, ok := matrix.UpsertRating(s.state.Ratings, matrix.Rating{
		CriterionID:   criterionID,
		AlternativeID: alternativeID,
		Value:         value,
	})
	if ok {
		s.state.Ratings = ratings
		s.touch()
	}
	return ok
}

// --- Transitions ---

// Advance requests the next stage. A non-empty result means the request was
// rejected and the stage is unchanged.
func (s *Session) Advance() []string {
	next, violations := Advance(s.state)
	if len(violations) > 0 {
		return violations
	}
	if next.Stage != s.state.Stage {
		s.state = next
		s.touch()
	}
	return nil
}

func (s *Session) Retreat() {
	prev := Retreat(s.state)
	if prev.Stage != s.state.Stage {
		s.state = prev
		s.touch()
	}
}

// Reset starts a new matrix: all collections emptied, stage back to the start.
func (s *Session) Reset() {
	s.state = ResetAll(s.state)
	s.touch()
}

// --- Derived views ---

// Check reports completeness of the current collections.
func (s *Session) Check() scoring.Report {
	return scoring.Check(s.state.Criteria, s.state.Alternatives, s.state.Ratings)
}

// Ranking recomputes the ranking from the current collections.
func (s *Session) Ranking() []matrix.RankedResult {
	return scoring.ComputeRanking(s.state.Criteria, s.state.Alternatives, s.state.Ratings)
}

// Frontier returns the ids of non-dominated alternatives.
func (s *Session) Frontier() []string {
	return scoring.Frontier(s.state.Criteria, s.state.Alternatives, s.state.Ratings)
}

// touch records the mutation time. While in StageResults the derived results
// are rebuilt so they never lag the collections.
func (s *Session) touch() {
	s.UpdatedAt = s.now()
	if s.state.Stage == StageResults {
		s.state.Results = s.Ranking()
	}
}

func cloneResults(results []matrix.RankedResult) []matrix.RankedResult {
	if results == nil {
		return nil
	}
	out := make([]matrix.RankedResult, len(results))
	for i, r := range results {
		out[i] = r
		if r.CriterionScores != nil {
			out[i].CriterionScores = make([]matrix.CriterionScore, len(r.CriterionScores))
			copy(out[i].CriterionScores, r.CriterionScores)
		}
	}
	return out
}
