package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/Matrix/internal/matrix"
)

type SessionEvent struct {
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

type StageChangedEvent struct {
	SessionID string    `json:"session_id"`
	FromStage string    `json:"from_stage"`
	ToStage   string    `json:"to_stage"`
	Timestamp time.Time `json:"timestamp"`
}

type AdvanceRejectedEvent struct {
	SessionID  string    `json:"session_id"`
	Stage      string    `json:"stage"`
	Violations []string  `json:"violations"`
	Timestamp  time.Time `json:"timestamp"`
}

// ResultsComputedEvent is the hand-off to the export collaborator.
type ResultsComputedEvent struct {
	SessionID    string                `json:"session_id"`
	Criteria     []matrix.Criterion    `json:"criteria"`
	Alternatives []matrix.Alternative  `json:"alternatives"`
	Results      []matrix.RankedResult `json:"results"`
	Frontier     []string              `json:"frontier"`
	Timestamp    time.Time             `json:"timestamp"`
}
