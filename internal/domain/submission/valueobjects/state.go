package valueobjects

import "fmt"

// SubmissionState is the workflow state of a permit submission. DRAFT is the
// sole initial state; APPROVED is terminal.
type SubmissionState string

const (
	StateDraft       SubmissionState = "DRAFT"
	StateValidated   SubmissionState = "VALIDATED"
	StatePacketReady SubmissionState = "PACKET_READY"
	StateSubmitted   SubmissionState = "SUBMITTED"
	StatePolling     SubmissionState = "POLLING"
	StateApproved    SubmissionState = "APPROVED"
	StateNeedsInfo   SubmissionState = "NEEDS_INFO"
)

var validSubmissionStates = map[SubmissionState]bool{
	StateDraft:       true,
	StateValidated:   true,
	StatePacketReady: true,
	StateSubmitted:   true,
	StatePolling:     true,
	StateApproved:    true,
	StateNeedsInfo:   true,
}

// POLLING has outgoing edges but no inbound transition yet; it is reserved
// for external status polling and must not be given an entry edge here.
var submissionStateTransitions = map[SubmissionState][]SubmissionState{
	StateDraft: {
		StateValidated,
	},
	StateValidated: {
		StatePacketReady,
	},
	StatePacketReady: {
		StateSubmitted,
	},
	StateSubmitted: {
		StateApproved,
		StateNeedsInfo,
	},
	StatePolling: {
		StateApproved,
		StateNeedsInfo,
	},
	StateNeedsInfo: {
		StateDraft,
	},
	StateApproved: {},
}

func (s SubmissionState) String() string {
	return string(s)
}

func (s SubmissionState) IsValid() bool {
	return validSubmissionStates[s]
}

// CanTransitionTo checks graph legality only. The completeness-score guard
// on VALIDATED lives on the aggregate, which consults it before this table.
func (s SubmissionState) CanTransitionTo(target SubmissionState) bool {
	allowed, ok := submissionStateTransitions[s]
	if !ok {
		return false
	}

	for _, state := range allowed {
		if state == target {
			return true
		}
	}
	return false
}

func (s SubmissionState) IsDraft() bool {
	return s == StateDraft
}

func (s SubmissionState) IsValidated() bool {
	return s == StateValidated
}

func (s SubmissionState) IsPacketReady() bool {
	return s == StatePacketReady
}

func (s SubmissionState) IsApproved() bool {
	return s == StateApproved
}

func (s SubmissionState) IsNeedsInfo() bool {
	return s == StateNeedsInfo
}

// IsTerminal reports whether the state has no outgoing transitions.
func (s SubmissionState) IsTerminal() bool {
	return len(submissionStateTransitions[s]) == 0
}

func NewSubmissionState(s string) (SubmissionState, error) {
	state := SubmissionState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid submission state: %s", s)
	}
	return state, nil
}
