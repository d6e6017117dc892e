package matrix

// UpsertRating inserts r or replaces the existing rating for the same
// (criterion, alternative) pair, keeping its position. Values outside
// MinRating..MaxRating and blank keys are not applied.
func UpsertRating(ratings []Rating, r Rating) ([]Rating, bool) {
	if r.Value < MinRating || r.Value > MaxRating || r.CriterionID == "" || r.AlternativeID == "" {
		return ratings, false
	}
	if i := indexRating(ratings, r.CriterionID, r.AlternativeID); i >= 0 {
		out := CloneRatings(ratings)
		out[i].Value = r.Value
		return out, true
	}
	out := make([]Rating, len(ratings), len(ratings)+1)
	copy(out, ratings)
	return append(out, r), true
}

// FindRating returns the rating record for a pair, if one exists.
func FindRating(ratings []Rating, criterionID, alternativeID string) (Rating, bool) {
	if i := indexRating(ratings, criterionID, alternativeID); i >= 0 {
		return ratings[i], true
	}
	return Rating{}, false
}

// RatingValue returns the value for a pair, or 0 when no record exists.
func RatingValue(ratings []Rating, criterionID, alternativeID string) int {
	r, _ := FindRating(ratings, criterionID, alternativeID)
	return r.Value
}

func CloneRatings(ratings []Rating) []Rating {
	if ratings == nil {
		return nil
	}
	out := make([]Rating, len(ratings))
	copy(out, ratings)
	return out
}

func indexRating(ratings []Rating, criterionID, alternativeID string) int {
	for i := range ratings {
		if ratings[i].CriterionID == criterionID && ratings[i].AlternativeID == alternativeID {
			return i
		}
	}
	return -1
}
