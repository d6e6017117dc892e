package api

import (
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Matrix/internal/hermes"
	"github.com/MikeSquared-Agency/Matrix/internal/matrix"
	"github.com/MikeSquared-Agency/Matrix/internal/metrics"
	"github.com/MikeSquared-Agency/Matrix/internal/tracing"
	"github.com/MikeSquared-Agency/Matrix/internal/workflow"
)

// ViolationsResponse is returned with 422 when a forward transition or a
// stateless ranking is refused.
type ViolationsResponse struct {
	Violations []string `json:"violations"`
}

// ExportView is the final triple handed to export consumers.
type ExportView struct {
	SessionID    string                `json:"session_id"`
	Criteria     []matrix.Criterion    `json:"criteria"`
	Alternatives []matrix.Alternative  `json:"alternatives"`
	Results      []matrix.RankedResult `json:"results"`
	Frontier     []string              `json:"frontier"`
}

func (h *SessionsHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	ctx, span := tracing.StartTransitionSpan(r.Context(), id.String(), "advance")
	defer span.End()

	var from, to workflow.Stage
	var violations []string
	start := time.Now()
	sess, err := h.store.Update(ctx, id, func(s *workflow.Session) error {
		from = s.Stage()
		violations = s.Advance()
		to = s.Stage()
		return nil
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	tracing.RecordTransition(span, string(from), string(to), violations)

	if len(violations) > 0 {
		metrics.AdvanceRejections.WithLabelValues(string(from)).Inc()
		h.logger.Info("advance rejected", "session_id", id, "stage", from, "violations", len(violations))
		h.publish(hermes.SubjectAdvanceRejected(id.String()), hermes.AdvanceRejectedEvent{
			SessionID:  id.String(),
			Stage:      string(from),
			Violations: violations,
			Timestamp:  time.Now().UTC(),
		})
		writeJSON(w, http.StatusUnprocessableEntity, ViolationsResponse{Violations: violations})
		return
	}

	if to != from {
		h.stageChanged(id.String(), "forward", from, to)
		if to == workflow.StageResults {
			metrics.RankingDuration.Observe(time.Since(start).Seconds())
			st := sess.State()
			h.publish(hermes.SubjectResultsComputed(id.String()), hermes.ResultsComputedEvent{
				SessionID:    id.String(),
				Criteria:     st.Criteria,
				Alternatives: st.Alternatives,
				Results:      st.Results,
				Frontier:     sess.Frontier(),
				Timestamp:    time.Now().UTC(),
			})
		}
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (h *SessionsHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	ctx, span := tracing.StartTransitionSpan(r.Context(), id.String(), "retreat")
	defer span.End()

	var from, to workflow.Stage
	sess, err := h.store.Update(ctx, id, func(s *workflow.Session) error {
		from = s.Stage()
		s.Retreat()
		to = s.Stage()
		return nil
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	tracing.RecordTransition(span, string(from), string(to), nil)
	if to != from {
		h.stageChanged(id.String(), "backward", from, to)
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (h *SessionsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	sess, err := h.store.Update(r.Context(), id, func(s *workflow.Session) error {
		s.Reset()
		return nil
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.logger.Info("session reset", "session_id", id)
	h.publish(hermes.SubjectSessionReset(id.String()), hermes.SessionEvent{
		SessionID: id.String(),
		Timestamp: time.Now().UTC(),
	})
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (h *SessionsHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	sess, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if sess.Stage() != workflow.StageResults {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "results are only available in the results stage"})
		return
	}
	// Results follow mutations made while in the results stage, which may leave
	// pairs unrated. Only a complete matrix is handed off.
	if report := sess.Check(); !report.Valid() {
		writeJSON(w, http.StatusConflict, ViolationsResponse{Violations: report.Violations})
		return
	}
	st := sess.State()
	writeJSON(w, http.StatusOK, ExportView{
		SessionID:    id.String(),
		Criteria:     st.Criteria,
		Alternatives: st.Alternatives,
		Results:      st.Results,
		Frontier:     sess.Frontier(),
	})
}

func (h *SessionsHandler) stageChanged(sessionID, direction string, from, to workflow.Stage) {
	metrics.StageTransitions.WithLabelValues(direction, string(to)).Inc()
	h.logger.Info("stage changed", "session_id", sessionID, "from", from, "to", to)

	subject := hermes.SubjectStageAdvanced(sessionID)
	if direction == "backward" {
		subject = hermes.SubjectStageRetreated(sessionID)
	}
	h.publish(subject, hermes.StageChangedEvent{
		SessionID: sessionID,
		FromStage: string(from),
		ToStage:   string(to),
		Timestamp: time.Now().UTC(),
	})
}
