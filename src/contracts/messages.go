// Package contracts defines the broker message types for the build watcher →
// collector data plane.
package contracts

// Broker topics. The build watcher publishes, the collector consumes.
const (
	// TopicDiagnostics carries DiagnosticEvent messages, keyed by session id.
	TopicDiagnostics = "dune.diagnostics"
	// TopicStatus carries BuildStatusEvent messages, keyed by session id.
	TopicStatus = "dune.status"
)

// DiagnosticEvent is one diagnostic emitted during a build session.
// Published to: dune.diagnostics
// Key: {session_id}
type DiagnosticEvent struct {
	SessionID  string     `json:"session_id"`
	Diagnostic Diagnostic `json:"diagnostic"`
	// Timestamp is RFC3339, set by the watcher.
	Timestamp string `json:"timestamp"`
}

// BuildStatusEvent announces a build session's state transition.
// A session opens with status "building" and closes with one of the
// terminal statuses. Diagnostics may arrive before the terminal event.
// Published to: dune.status
// Key: {session_id}
type BuildStatusEvent struct {
	SessionID string      `json:"session_id"`
	Status    BuildStatus `json:"status"`
	// Targets is the build-target selection this session covers.
	Targets []string `json:"targets,omitempty"`
	// Summary is optional progress information from the build layer.
	Summary   *BuildSummary `json:"summary,omitempty"`
	Timestamp string        `json:"timestamp"`
}
