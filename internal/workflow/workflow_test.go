package workflow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Matrix/internal/matrix"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

func TestStageOrder(t *testing.T) {
	assert.Equal(t, 1, StageCriteria.Number())
	assert.Equal(t, 4, StageResults.Number())
	assert.Equal(t, 0, Stage("bogus").Number())
	assert.False(t, Stage("bogus").Valid())
	assert.Equal(t, "Scoring", StageScoring.Label())

	next, ok := StageScoring.Next()
	assert.True(t, ok)
	assert.Equal(t, StageResults, next)
	_, ok = StageResults.Next()
	assert.False(t, ok)

	prev, ok := StageAlternatives.Prev()
	assert.True(t, ok)
	assert.Equal(t, StageCriteria, prev)
	_, ok = StageCriteria.Prev()
	assert.False(t, ok)
}

func TestAdvanceGates(t *testing.T) {
	s := NewState()

	got, violations := Advance(s)
	assert.Equal(t, StageCriteria, got.Stage)
	assert.Equal(t, []string{scoring.MsgNoCriteria}, violations)

	s.Criteria = []matrix.Criterion{{ID: "c", Name: "Cost", Weight: 100}}
	s, violations = Advance(s)
	require.Empty(t, violations)
	assert.Equal(t, StageAlternatives, s.Stage)

	got, violations = Advance(s)
	assert.Equal(t, StageAlternatives, got.Stage)
	assert.Equal(t, []string{scoring.MsgNoAlternatives}, violations)

	s.Alternatives = []matrix.Alternative{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	s, violations = Advance(s)
	require.Empty(t, violations)
	assert.Equal(t, StageScoring, s.Stage)

	s.Ratings = []matrix.Rating{{CriterionID: "c", AlternativeID: "a", Value: 4}}
	got, violations = Advance(s)
	assert.Equal(t, StageScoring, got.Stage)
	assert.Equal(t, []string{`Missing score for "Cost" and "B"`}, violations)
	assert.Empty(t, got.Results)

	s.Ratings = append(s.Ratings, matrix.Rating{CriterionID: "c", AlternativeID: "b", Value: 5})
	s, violations = Advance(s)
	require.Empty(t, violations)
	assert.Equal(t, StageResults, s.Stage)
	require.Len(t, s.Results, 2)
	assert.Equal(t, "b", s.Results[0].AlternativeID)
	assert.Equal(t, 500.0, s.Results[0].TotalScore)

	again, violations := Advance(s)
	assert.Empty(t, violations)
	assert.Equal(t, StageResults, again.Stage)
}

func TestRetreatPreservesCollections(t *testing.T) {
	s := State{
		Stage:        StageResults,
		Criteria:     []matrix.Criterion{{ID: "c", Name: "Cost", Weight: 100}},
		Alternatives: []matrix.Alternative{{ID: "a", Name: "A"}},
		Ratings:      []matrix.Rating{{CriterionID: "c", AlternativeID: "a", Value: 3}},
		Results:      []matrix.RankedResult{{AlternativeID: "a", Rank: 1, TotalScore: 300}},
	}

	s = Retreat(s)
	assert.Equal(t, StageScoring, s.Stage)
	assert.Empty(t, s.Results)

	s = Retreat(Retreat(s))
	assert.Equal(t, StageCriteria, s.Stage)
	s = Retreat(s)
	assert.Equal(t, StageCriteria, s.Stage)

	assert.Len(t, s.Criteria, 1)
	assert.Len(t, s.Alternatives, 1)
	assert.Len(t, s.Ratings, 1)
}

func TestResetAll(t *testing.T) {
	s := State{
		Stage:        StageScoring,
		Criteria:     []matrix.Criterion{{ID: "c", Name: "Cost", Weight: 100}},
		Alternatives: []matrix.Alternative{{ID: "a", Name: "A"}},
		Ratings:      []matrix.Rating{{CriterionID: "c", AlternativeID: "a", Value: 3}},
	}
	s = ResetAll(s)
	assert.Equal(t, InitialStage, s.Stage)
	assert.Empty(t, s.Criteria)
	assert.Empty(t, s.Alternatives)
	assert.Empty(t, s.Ratings)
	assert.Empty(t, s.Results)
}

func TestSessionFullFlow(t *testing.T) {
	sess := NewSession()
	assert.Equal(t, StageCriteria, sess.Stage())

	cost, ok := sess.AddCriterion("Cost", 60)
	require.True(t, ok)
	quality, ok := sess.AddCriterion(" Quality ", 40)
	require.True(t, ok)
	assert.Equal(t, "Quality", quality.Name)
	assert.NotEqual(t, cost.ID, quality.ID)

	require.Empty(t, sess.Advance())

	a, ok := sess.AddAlternative("A")
	require.True(t, ok)
	b, ok := sess.AddAlternative("B")
	require.True(t, ok)
	require.Empty(t, sess.Advance())

	assert.True(t, sess.SetRating(cost.ID, a.ID, 3))
	assert.True(t, sess.SetRating(quality.ID, a.ID, 5))
	assert.True(t, sess.SetRating(cost.ID, b.ID, 5))

	violations := sess.Advance()
	assert.Equal(t, []string{`Missing score for "Quality" and "B"`}, violations)
	assert.Equal(t, StageScoring, sess.Stage())

	assert.True(t, sess.SetRating(quality.ID, b.ID, 2))
	require.Empty(t, sess.Advance())
	assert.Equal(t, StageResults, sess.Stage())

	results := sess.State().Results
	require.Len(t, results, 2)
	assert.Equal(t, a.ID, results[0].AlternativeID)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, 380.0, results[0].TotalScore)
	assert.Equal(t, b.ID, results[1].AlternativeID)
	assert.Equal(t, 380.0, results[1].TotalScore)

	sess.Retreat()
	assert.Equal(t, StageScoring, sess.Stage())
	assert.Len(t, sess.State().Ratings, 4)

	sess.Reset()
	st := sess.State()
	assert.Equal(t, InitialStage, st.Stage)
	assert.Empty(t, st.Criteria)
	assert.Empty(t, st.Alternatives)
	assert.Empty(t, st.Ratings)
	assert.Empty(t, st.Results)
}

func TestSessionConstraintRejections(t *testing.T) {
	sess := NewSession()

	for i := 0; i < matrix.MaxCriteria; i++ {
		_, ok := sess.AddCriterion(fmt.Sprintf("C%d", i), 10)
		require.True(t, ok)
	}
	_, ok := sess.AddCriterion("Eleventh", 10)
	assert.False(t, ok)
	assert.Len(t, sess.State().Criteria, matrix.MaxCriteria)

	for i := 0; i < matrix.MaxAlternatives; i++ {
		_, ok := sess.AddAlternative(fmt.Sprintf("A%d", i))
		require.True(t, ok)
	}
	_, ok = sess.AddAlternative("Fourth")
	assert.False(t, ok)
	assert.Len(t, sess.State().Alternatives, matrix.MaxAlternatives)

	_, ok = sess.AddAlternative("")
	assert.False(t, ok)

	st := sess.State()
	assert.False(t, sess.SetRating("unknown", st.Alternatives[0].ID, 3))
	assert.False(t, sess.SetRating(st.Criteria[0].ID, "unknown", 3))
	assert.False(t, sess.SetRating(st.Criteria[0].ID, st.Alternatives[0].ID, 6))
	assert.Empty(t, sess.State().Ratings)
}

func TestSessionStateIsACopy(t *testing.T) {
	sess := NewSession()
	c, _ := sess.AddCriterion("Cost", 50)

	st := sess.State()
	st.Criteria[0].Name = "Tampered"

	got, ok := matrix.FindCriterion(sess.State().Criteria, c.ID)
	require.True(t, ok)
	assert.Equal(t, "Cost", got.Name)
}

func TestSessionResultsFollowMutations(t *testing.T) {
	sess := NewSession()
	c, _ := sess.AddCriterion("Cost", 10)
	a, _ := sess.AddAlternative("A")
	require.Empty(t, sess.Advance())
	require.Empty(t, sess.Advance())
	require.True(t, sess.SetRating(c.ID, a.ID, 2))
	require.Empty(t, sess.Advance())
	assert.Equal(t, 20.0, sess.State().Results[0].TotalScore)

	require.True(t, sess.SetRating(c.ID, a.ID, 4))
	assert.Equal(t, 40.0, sess.State().Results[0].TotalScore)
	assert.Equal(t, sess.Ranking(), sess.State().Results)
	assert.Equal(t, []string{a.ID}, sess.Frontier())
	assert.True(t, sess.Check().Complete)
}
