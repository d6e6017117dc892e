package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Matrix/internal/matrix"
	"github.com/MikeSquared-Agency/Matrix/internal/metrics"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
	"github.com/MikeSquared-Agency/Matrix/internal/tracing"
)

// RankResponse is the outcome of a stateless ranking.
type RankResponse struct {
	Results        []matrix.RankedResult `json:"results"`
	Frontier       []string              `json:"frontier"`
	TotalWeight    int                   `json:"total_weight"`
	WeightAdvisory string                `json:"weight_advisory,omitempty"`
}

// RankHandler validates and ranks a matrix supplied in full by the caller.
// Nothing is stored.
type RankHandler struct {
	logger *slog.Logger
}

func NewRankHandler(logger *slog.Logger) *RankHandler {
	return &RankHandler{logger: logger}
}

func (h *RankHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	criteria, alternatives, ratings, err := req.toMatrix()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, span := tracing.StartRankingSpan(r.Context(), len(criteria), len(alternatives))
	defer span.End()

	violations := scoring.Validate(criteria, alternatives, ratings)
	tracing.RecordViolations(span, violations)
	if len(violations) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, ViolationsResponse{Violations: violations})
		return
	}

	start := time.Now()
	results := scoring.ComputeRanking(criteria, alternatives, ratings)
	metrics.RankingDuration.Observe(time.Since(start).Seconds())

	h.logger.Debug("stateless ranking computed", "criteria", len(criteria), "alternatives", len(alternatives))
	writeJSON(w, http.StatusOK, RankResponse{
		Results:        results,
		Frontier:       scoring.Frontier(criteria, alternatives, ratings),
		TotalWeight:    matrix.TotalWeight(criteria),
		WeightAdvisory: matrix.WeightAdvisory(criteria),
	})
}
