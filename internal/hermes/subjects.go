package hermes

const (
	StreamName   = "MATRIX_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectSessionCreated(sessionID string) string { return "matrix.session." + sessionID + ".created" }
func SubjectSessionReset(sessionID string) string   { return "matrix.session." + sessionID + ".reset" }
func SubjectSessionExpired(sessionID string) string { return "matrix.session." + sessionID + ".expired" }

// Stage lifecycle subjects
func SubjectStageAdvanced(sessionID string) string  { return "matrix.session." + sessionID + ".stage.advanced" }
func SubjectStageRetreated(sessionID string) string { return "matrix.session." + sessionID + ".stage.retreated" }
func SubjectAdvanceRejected(sessionID string) string {
	return "matrix.session." + sessionID + ".advance.rejected"
}

// SubjectResultsComputed carries the final triple for export consumers.
func SubjectResultsComputed(sessionID string) string {
	return "matrix.session." + sessionID + ".results.computed"
}
