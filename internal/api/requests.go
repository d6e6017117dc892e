package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Matrix/internal/matrix"
)

// Session mutation bodies are checked for shape only. Domain limits (caps,
// rating range, empty names, negative weights) are left to the matrix package
// so they surface as applied=false rather than as a 400.
var validate = validator.New()

type CreateCriterionRequest struct {
	Name   string `json:"name"`
	Weight *int   `json:"weight" validate:"required"`
}

// UpdateCriterionRequest is a partial update. Omitted fields keep their value.
type UpdateCriterionRequest struct {
	Name   *string `json:"name"`
	Weight *int    `json:"weight"`
}

type CreateAlternativeRequest struct {
	Name string `json:"name"`
}

type UpdateAlternativeRequest struct {
	Name string `json:"name"`
}

type SetRatingRequest struct {
	CriterionID   string `json:"criterion_id" validate:"required"`
	AlternativeID string `json:"alternative_id" validate:"required"`
	Value         *int   `json:"value" validate:"required"`
}

// RankRequest carries a whole matrix for stateless ranking. Unlike session
// mutations, entries here are all-or-nothing: one bad entry fails the request.
type RankRequest struct {
	Criteria     []RankCriterion   `json:"criteria" validate:"unique=ID,dive"`
	Alternatives []RankAlternative `json:"alternatives" validate:"unique=ID,dive"`
	Ratings      []RankRating      `json:"ratings" validate:"dive"`
}

type RankCriterion struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Weight int    `json:"weight" validate:"gte=0"`
}

type RankAlternative struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type RankRating struct {
	CriterionID   string `json:"criterion_id" validate:"required"`
	AlternativeID string `json:"alternative_id" validate:"required"`
	Value         *int   `json:"value" validate:"required,min=0,max=5"`
}

// toMatrix builds the collections, checking each entry with the same
// primitives sessions use. Each entry is inserted into an empty collection so
// caps are left to the validator and surface as violations. Duplicate ids are
// caught by the unique tags above.
func (r RankRequest) toMatrix() ([]matrix.Criterion, []matrix.Alternative, []matrix.Rating, error) {
	criteria := make([]matrix.Criterion, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		one, ok := matrix.AddCriterion(nil, matrix.Criterion{ID: c.ID, Name: c.Name, Weight: c.Weight})
		if !ok {
			return nil, nil, nil, fmt.Errorf("invalid criterion %q", c.ID)
		}
		criteria = append(criteria, one[0])
	}
	alternatives := make([]matrix.Alternative, 0, len(r.Alternatives))
	for _, a := range r.Alternatives {
		one, ok := matrix.AddAlternative(nil, matrix.Alternative{ID: a.ID, Name: a.Name})
		if !ok {
			return nil, nil, nil, fmt.Errorf("invalid alternative %q", a.ID)
		}
		alternatives = append(alternatives, one[0])
	}
	ratings := make([]matrix.Rating, 0, len(r.Ratings))
	for _, rt := range r.Ratings {
		next, ok := matrix.UpsertRating(ratings, matrix.Rating{
			CriterionID:   rt.CriterionID,
			AlternativeID: rt.AlternativeID,
			Value:         *rt.Value,
		})
		if !ok {
			return nil, nil, nil, fmt.Errorf("invalid rating for %q and %q", rt.CriterionID, rt.AlternativeID)
		}
		ratings = next
	}
	return criteria, alternatives, ratings, nil
}

// maxBodyBytes bounds request bodies. A full 10x3 matrix is a few KB.
const maxBodyBytes = 64 << 10

// decodeRequest reads a JSON body into v and runs struct validation.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid request: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
