package submission

import (
	"time"

	vo "permitflow/internal/domain/submission/valueobjects"
)

// EventTypeStateTransition is the only workflow event type currently written.
const EventTypeStateTransition = "STATE_TRANSITION"

// WorkflowEvent is an append-only audit record written transactionally
// alongside every state mutation. It is never updated or deleted.
type WorkflowEvent struct {
	ID           uint
	SubmissionID uint
	EventType    string
	FromState    vo.SubmissionState
	ToState      vo.SubmissionState
	Actor        string
	CreatedAt    time.Time
}

// NewStateTransitionEvent builds the audit record for one transition,
// attributed to the given actor name ("system" for worker transitions).
func NewStateTransitionEvent(submissionID uint, from, to vo.SubmissionState, actorName string) *WorkflowEvent {
	return &WorkflowEvent{
		SubmissionID: submissionID,
		EventType:    EventTypeStateTransition,
		FromState:    from,
		ToState:      to,
		Actor:        actorName,
		CreatedAt:    time.Now().UTC(),
	}
}
