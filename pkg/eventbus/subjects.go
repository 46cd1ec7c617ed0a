package eventbus

import "fmt"

const (
	// SubjectPrefix is the canonical prefix for engine events.
	SubjectPrefix = "lexroute.v1"
)

// Event types published by the engine.
const (
	EventQueryHandled       = "query.handled"
	EventFeedbackRecorded   = "feedback.recorded"
	EventModelRetrained     = "model.retrained"
	EventModelRejected      = "model.rejected"
	EventPolicyCheckpointed = "policy.checkpointed"
)

// Subject returns the canonical subject for an event type.
func Subject(eventType string) string {
	return fmt.Sprintf("%s.%s", SubjectPrefix, sanitizeSegment(eventType))
}

// WildcardSubject matches every engine event.
func WildcardSubject() string {
	return fmt.Sprintf("%s.>", SubjectPrefix)
}

func sanitizeSegment(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
