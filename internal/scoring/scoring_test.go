package scoring

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/MikeSquared-Agency/Matrix/internal/matrix"
)

func costQualityMatrix() ([]matrix.Criterion, []matrix.Alternative, []matrix.Rating) {
	criteria := []matrix.Criterion{
		{ID: "cost", Name: "Cost", Weight: 60},
		{ID: "quality", Name: "Quality", Weight: 40},
	}
	alternatives := []matrix.Alternative{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}
	ratings := []matrix.Rating{
		{CriterionID: "cost", AlternativeID: "a", Value: 3},
		{CriterionID: "quality", AlternativeID: "a", Value: 5},
		{CriterionID: "cost", AlternativeID: "b", Value: 5},
		{CriterionID: "quality", AlternativeID: "b", Value: 2},
	}
	return criteria, alternatives, ratings
}

func TestComputeRankingTieKeepsInputOrder(t *testing.T) {
	criteria, alternatives, ratings := costQualityMatrix()
	results := ComputeRanking(criteria, alternatives, ratings)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.TotalScore != 380 {
			t.Errorf("%s: expected total 380, got %f", r.AlternativeName, r.TotalScore)
		}
	}
	if results[0].AlternativeID != "a" || results[0].Rank != 1 {
		t.Errorf("expected A ranked 1, got %s rank %d", results[0].AlternativeID, results[0].Rank)
	}
	if results[1].AlternativeID != "b" || results[1].Rank != 2 {
		t.Errorf("expected B ranked 2, got %s rank %d", results[1].AlternativeID, results[1].Rank)
	}

	bd := results[0].CriterionScores
	if len(bd) != 2 || bd[0].CriterionName != "Cost" || bd[0].RawScore != 3 || bd[0].WeightedScore != 180 {
		t.Errorf("unexpected breakdown for A: %+v", bd)
	}
	if bd[1].CriterionName != "Quality" || bd[1].WeightedScore != 200 {
		t.Errorf("unexpected quality line for A: %+v", bd[1])
	}
}

func TestComputeRankingOrdersDescending(t *testing.T) {
	criteria := []matrix.Criterion{{ID: "c1", Name: "Speed", Weight: 10}, {ID: "c2", Name: "Price", Weight: 5}}
	alternatives := []matrix.Alternative{{ID: "x", Name: "X"}, {ID: "y", Name: "Y"}, {ID: "z", Name: "Z"}}
	ratings := []matrix.Rating{
		{CriterionID: "c1", AlternativeID: "x", Value: 1},
		{CriterionID: "c2", AlternativeID: "x", Value: 1},
		{CriterionID: "c1", AlternativeID: "y", Value: 5},
		{CriterionID: "c2", AlternativeID: "y", Value: 5},
		{CriterionID: "c1", AlternativeID: "z", Value: 3},
		{CriterionID: "c2", AlternativeID: "z", Value: 4},
	}

	results := ComputeRanking(criteria, alternatives, ratings)
	want := []string{"y", "z", "x"}
	seen := map[int]bool{}
	for i, r := range results {
		if r.AlternativeID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], r.AlternativeID)
		}
		if r.Rank < 1 || r.Rank > len(alternatives) || seen[r.Rank] {
			t.Errorf("rank %d out of range or duplicated", r.Rank)
		}
		seen[r.Rank] = true
		if i > 0 && results[i-1].TotalScore < r.TotalScore {
			t.Errorf("results not sorted: %f before %f", results[i-1].TotalScore, r.TotalScore)
		}
	}

	if w, ok := Winner(results); !ok || w.AlternativeID != "y" {
		t.Errorf("expected winner y, got %+v", w)
	}
}

func TestComputeRankingDeterministic(t *testing.T) {
	criteria, alternatives, ratings := costQualityMatrix()
	first := ComputeRanking(criteria, alternatives, ratings)
	second := ComputeRanking(criteria, alternatives, ratings)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical output, got %+v vs %+v", first, second)
	}
}

func TestComputeRankingTotalOverItsDomain(t *testing.T) {
	t.Run("missing ratings count as zero", func(t *testing.T) {
		criteria, alternatives, _ := costQualityMatrix()
		results := ComputeRanking(criteria, alternatives, nil)
		for _, r := range results {
			if r.TotalScore != 0 {
				t.Errorf("expected 0 total, got %f", r.TotalScore)
			}
		}
	})

	t.Run("no criteria", func(t *testing.T) {
		_, alternatives, _ := costQualityMatrix()
		results := ComputeRanking(nil, alternatives, nil)
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if len(results[0].CriterionScores) != 0 {
			t.Error("expected empty breakdown")
		}
	})

	t.Run("no alternatives", func(t *testing.T) {
		criteria, _, _ := costQualityMatrix()
		if results := ComputeRanking(criteria, nil, nil); len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
		if _, ok := Winner(nil); ok {
			t.Error("expected no winner")
		}
	})

	t.Run("weights not normalised", func(t *testing.T) {
		criteria := []matrix.Criterion{{ID: "c", Name: "C", Weight: 250}}
		alternatives := []matrix.Alternative{{ID: "a", Name: "A"}}
		ratings := []matrix.Rating{{CriterionID: "c", AlternativeID: "a", Value: 4}}
		if got := ComputeRanking(criteria, alternatives, ratings)[0].TotalScore; got != 1000 {
			t.Errorf("expected 1000, got %f", got)
		}
	})
}

func TestValidateComplete(t *testing.T) {
	criteria, alternatives, ratings := costQualityMatrix()
	if v := Validate(criteria, alternatives, ratings); len(v) != 0 {
		t.Errorf("expected no violations, got %v", v)
	}
	report := Check(criteria, alternatives, ratings)
	if !report.Complete || report.Required != 4 || report.Rated != 4 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestValidateEmpty(t *testing.T) {
	v := Validate(nil, nil, nil)
	want := []string{MsgNoCriteria, MsgNoAlternatives}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("expected %v, got %v", want, v)
	}
}

func TestValidateMissingAlternativeRatings(t *testing.T) {
	criteria, alternatives, ratings := costQualityMatrix()
	var kept []matrix.Rating
	for _, r := range ratings {
		if r.AlternativeID != "b" {
			kept = append(kept, r)
		}
	}

	v := Validate(criteria, alternatives, kept)
	want := []string{
		`Missing score for "Cost" and "B"`,
		`Missing score for "Quality" and "B"`,
	}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("expected %v, got %v", want, v)
	}

	report := Check(criteria, alternatives, kept)
	if report.Complete || report.Rated != 2 || report.Required != 4 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestValidateZeroRatingCountsAsPresent(t *testing.T) {
	criteria, alternatives, ratings := costQualityMatrix()
	ratings[0].Value = 0
	if v := Validate(criteria, alternatives, ratings); len(v) != 0 {
		t.Errorf("expected zero-value record to satisfy completeness, got %v", v)
	}
}

func TestValidateIgnoresOrphanRatings(t *testing.T) {
	criteria, alternatives, ratings := costQualityMatrix()
	ratings = append(ratings, matrix.Rating{CriterionID: "gone", AlternativeID: "a", Value: 4})
	if v := Validate(criteria, alternatives, ratings); len(v) != 0 {
		t.Errorf("expected orphan rating to be ignored, got %v", v)
	}
}

func TestValidateOverCaps(t *testing.T) {
	var criteria []matrix.Criterion
	for i := 0; i < matrix.MaxCriteria+1; i++ {
		criteria = append(criteria, matrix.Criterion{ID: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("C%d", i), Weight: 1})
	}
	var alternatives []matrix.Alternative
	for i := 0; i < matrix.MaxAlternatives+1; i++ {
		alternatives = append(alternatives, matrix.Alternative{ID: fmt.Sprintf("a%d", i), Name: fmt.Sprintf("A%d", i)})
	}
	var ratings []matrix.Rating
	for _, c := range criteria {
		for _, a := range alternatives {
			ratings = append(ratings, matrix.Rating{CriterionID: c.ID, AlternativeID: a.ID, Value: 3})
		}
	}

	v := Validate(criteria, alternatives, ratings)
	want := []string{MsgTooManyCriteria, MsgTooManyAlternatives}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("expected %v, got %v", want, v)
	}
}

func TestFrontier(t *testing.T) {
	criteria := []matrix.Criterion{{ID: "c1", Name: "Speed", Weight: 1}, {ID: "c2", Name: "Price", Weight: 1}}
	alternatives := []matrix.Alternative{{ID: "x", Name: "X"}, {ID: "y", Name: "Y"}, {ID: "z", Name: "Z"}}
	ratings := []matrix.Rating{
		{CriterionID: "c1", AlternativeID: "x", Value: 5},
		{CriterionID: "c2", AlternativeID: "x", Value: 1},
		{CriterionID: "c1", AlternativeID: "y", Value: 1},
		{CriterionID: "c2", AlternativeID: "y", Value: 5},
		{CriterionID: "c1", AlternativeID: "z", Value: 1},
		{CriterionID: "c2", AlternativeID: "z", Value: 4},
	}

	got := Frontier(criteria, alternatives, ratings)
	want := []string{"x", "y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	t.Run("equal ratings do not dominate", func(t *testing.T) {
		criteria, alternatives, _ := costQualityMatrix()
		same := []matrix.Rating{
			{CriterionID: "cost", AlternativeID: "a", Value: 3},
			{CriterionID: "cost", AlternativeID: "b", Value: 3},
		}
		if got := Frontier(criteria, alternatives, same); len(got) != 2 {
			t.Errorf("expected both on frontier, got %v", got)
		}
	})
}
