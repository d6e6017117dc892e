package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Matrix/internal/hermes"
	"github.com/MikeSquared-Agency/Matrix/internal/matrix"
	"github.com/MikeSquared-Agency/Matrix/internal/metrics"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
	"github.com/MikeSquared-Agency/Matrix/internal/store"
	"github.com/MikeSquared-Agency/Matrix/internal/workflow"
)

// SessionView is the JSON snapshot of a session.
type SessionView struct {
	ID             uuid.UUID             `json:"id"`
	Stage          workflow.Stage        `json:"stage"`
	StageNumber    int                   `json:"stage_number"`
	StageLabel     string                `json:"stage_label"`
	Criteria       []matrix.Criterion    `json:"criteria"`
	Alternatives   []matrix.Alternative  `json:"alternatives"`
	Ratings        []matrix.Rating       `json:"ratings"`
	Results        []matrix.RankedResult `json:"results"`
	TotalWeight    int                   `json:"total_weight"`
	WeightAdvisory string                `json:"weight_advisory,omitempty"`
	Progress       scoring.Report        `json:"progress"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func newSessionView(sess *workflow.Session) SessionView {
	st := sess.State()
	return SessionView{
		ID:             sess.ID,
		Stage:          st.Stage,
		StageNumber:    st.Stage.Number(),
		StageLabel:     st.Stage.Label(),
		Criteria:       st.Criteria,
		Alternatives:   st.Alternatives,
		Ratings:        st.Ratings,
		Results:        st.Results,
		TotalWeight:    matrix.TotalWeight(st.Criteria),
		WeightAdvisory: matrix.WeightAdvisory(st.Criteria),
		Progress:       sess.Check(),
		CreatedAt:      sess.CreatedAt,
		UpdatedAt:      sess.UpdatedAt,
	}
}

// MutationResponse reports whether a mutation was applied. A rejected
// mutation is not an error; the session is returned unchanged.
type MutationResponse struct {
	Applied bool        `json:"applied"`
	Session SessionView `json:"session"`
}

type SessionsHandler struct {
	store  store.Store
	hermes hermes.Client
	logger *slog.Logger
}

func NewSessionsHandler(s store.Store, h hermes.Client, logger *slog.Logger) *SessionsHandler {
	return &SessionsHandler{store: s, hermes: h, logger: logger}
}

func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Create(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	metrics.SessionsCreated.Inc()
	h.logger.Info("session created", "session_id", sess.ID)
	h.publish(hermes.SubjectSessionCreated(sess.ID.String()), hermes.SessionEvent{
		SessionID: sess.ID.String(),
		Timestamp: time.Now().UTC(),
	})
	writeJSON(w, http.StatusCreated, newSessionView(sess))
}

func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	sess, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	h.logger.Info("session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// --- Criteria ---

func (h *SessionsHandler) AddCriterion(w http.ResponseWriter, r *http.Request) {
	var req CreateCriterionRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.mutate(w, r, "add_criterion", func(sess *workflow.Session) bool {
		_, ok := sess.AddCriterion(req.Name, *req.Weight)
		return ok
	})
}

func (h *SessionsHandler) UpdateCriterion(w http.ResponseWriter, r *http.Request) {
	var req UpdateCriterionRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	cid := chi.URLParam(r, "cid")
	h.mutate(w, r, "update_criterion", func(sess *workflow.Session) bool {
		current, ok := matrix.FindCriterion(sess.State().Criteria, cid)
		if !ok {
			return false
		}
		name, weight := current.Name, current.Weight
		if req.Name != nil {
			name = *req.Name
		}
		if req.Weight != nil {
			weight = *req.Weight
		}
		return sess.UpdateCriterion(cid, name, weight)
	})
}

func (h *SessionsHandler) RemoveCriterion(w http.ResponseWriter, r *http.Request) {
	cid := chi.URLParam(r, "cid")
	h.mutate(w, r, "remove_criterion", func(sess *workflow.Session) bool {
		return sess.RemoveCriterion(cid)
	})
}

// --- Alternatives ---

func (h *SessionsHandler) AddAlternative(w http.ResponseWriter, r *http.Request) {
	var req CreateAlternativeRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.mutate(w, r, "add_alternative", func(sess *workflow.Session) bool {
		_, ok := sess.AddAlternative(req.Name)
		return ok
	})
}

func (h *SessionsHandler) UpdateAlternative(w http.ResponseWriter, r *http.Request) {
	var req UpdateAlternativeRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	aid := chi.URLParam(r, "aid")
	h.mutate(w, r, "update_alternative", func(sess *workflow.Session) bool {
		return sess.UpdateAlternative(aid, req.Name)
	})
}

func (h *SessionsHandler) RemoveAlternative(w http.ResponseWriter, r *http.Request) {
	aid := chi.URLParam(r, "aid")
	h.mutate(w, r, "remove_alternative", func(sess *workflow.Session) bool {
		return sess.RemoveAlternative(aid)
	})
}

// --- Ratings ---

func (h *SessionsHandler) SetRating(w http.ResponseWriter, r *http.Request) {
	var req SetRatingRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.mutate(w, r, "set_rating", func(sess *workflow.Session) bool {
		return sess.SetRating(req.CriterionID, req.AlternativeID, *req.Value)
	})
}

// --- Derived views ---

func (h *SessionsHandler) Validation(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	sess, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Check())
}

// mutate applies fn to the session and answers with the applied flag.
func (h *SessionsHandler) mutate(w http.ResponseWriter, r *http.Request, kind string, fn func(*workflow.Session) bool) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var applied bool
	sess, err := h.store.Update(r.Context(), id, func(s *workflow.Session) error {
		applied = fn(s)
		return nil
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !applied {
		metrics.ConstraintRejections.WithLabelValues(kind).Inc()
		h.logger.Debug("mutation not applied", "session_id", id, "kind", kind)
	}
	writeJSON(w, http.StatusOK, MutationResponse{Applied: applied, Session: newSessionView(sess)})
}

func (h *SessionsHandler) publish(subject string, event interface{}) {
	if h.hermes == nil {
		return
	}
	if err := h.hermes.Publish(subject, event); err != nil {
		h.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return uuid.Nil, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrTooManySessions):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
