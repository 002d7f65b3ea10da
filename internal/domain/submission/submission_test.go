package submission

import (
	"strings"
	"testing"
	"time"

	"permitflow/internal/domain/rules"
	vo "permitflow/internal/domain/submission/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftSubmission(t *testing.T, score float64) *Submission {
	t.Helper()
	sub, err := NewSubmission("Riverside Duplex", rules.Context{ProjectName: "Riverside Duplex"}, 1, 1)
	require.NoError(t, err)
	require.NoError(t, sub.ApplyEvaluation(score))
	return sub
}

func reconstructInState(t *testing.T, state vo.SubmissionState, score float64) *Submission {
	t.Helper()
	now := time.Now().UTC()
	sub, err := ReconstructSubmission(1, "sub_abcdef123456", "Riverside Duplex", state, score, rules.Context{}, 1, 1, now, now)
	require.NoError(t, err)
	return sub
}

func TestNewSubmission(t *testing.T) {
	t.Run("should create draft submission", func(t *testing.T) {
		sub, err := NewSubmission("Riverside Duplex", rules.Context{}, 1, 2)

		assert.NoError(t, err)
		require.NotNil(t, sub)
		assert.Equal(t, vo.StateDraft, sub.State())
		assert.Equal(t, 0.0, sub.CompletenessScore())
		assert.True(t, strings.HasPrefix(sub.SID(), "sub_"))
		assert.Equal(t, uint(1), sub.OrganizationID())
		assert.Equal(t, uint(2), sub.JurisdictionID())
	})

	t.Run("should fail when project name is empty", func(t *testing.T) {
		sub, err := NewSubmission("", rules.Context{}, 1, 1)

		assert.Error(t, err)
		assert.Nil(t, sub)
		assert.Contains(t, err.Error(), "project name is required")
	})

	t.Run("should fail when project name too long", func(t *testing.T) {
		sub, err := NewSubmission(strings.Repeat("a", 201), rules.Context{}, 1, 1)

		assert.Error(t, err)
		assert.Nil(t, sub)
	})

	t.Run("should fail when organization is missing", func(t *testing.T) {
		sub, err := NewSubmission("Riverside Duplex", rules.Context{}, 0, 1)

		assert.Error(t, err)
		assert.Nil(t, sub)
	})
}

func TestSubmission_ApplyEvaluation(t *testing.T) {
	sub := draftSubmission(t, 0)

	assert.NoError(t, sub.ApplyEvaluation(0.67))
	assert.Equal(t, 0.67, sub.CompletenessScore())
	assert.False(t, sub.IsComplete())

	assert.NoError(t, sub.ApplyEvaluation(1.0))
	assert.True(t, sub.IsComplete())

	assert.Error(t, sub.ApplyEvaluation(-0.1))
	assert.Error(t, sub.ApplyEvaluation(1.1))
}

func TestSubmission_TransitionTo_ScoreGuard(t *testing.T) {
	t.Run("incomplete draft cannot validate", func(t *testing.T) {
		sub := draftSubmission(t, 0.8)

		assert.False(t, sub.CanTransitionTo(vo.StateValidated))

		err := sub.TransitionTo(vo.StateValidated)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "completeness score is 0.80")
		assert.Equal(t, vo.StateDraft, sub.State())
	})

	t.Run("complete draft validates", func(t *testing.T) {
		sub := draftSubmission(t, 1.0)

		assert.True(t, sub.CanTransitionTo(vo.StateValidated))
		assert.NoError(t, sub.TransitionTo(vo.StateValidated))
		assert.Equal(t, vo.StateValidated, sub.State())
	})

	t.Run("guard applies regardless of origin state", func(t *testing.T) {
		sub := reconstructInState(t, vo.StateNeedsInfo, 0.5)
		require.NoError(t, sub.TransitionTo(vo.StateDraft))

		err := sub.TransitionTo(vo.StateValidated)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "submission is incomplete")
	})
}

func TestSubmission_TransitionTo_GraphLegality(t *testing.T) {
	tests := []struct {
		name    string
		from    vo.SubmissionState
		to      vo.SubmissionState
		score   float64
		wantErr string
	}{
		{"draft to packet ready is illegal", vo.StateDraft, vo.StatePacketReady, 1.0, "no transition path from DRAFT to PACKET_READY"},
		{"validated to packet ready is legal", vo.StateValidated, vo.StatePacketReady, 1.0, ""},
		{"packet ready to submitted is legal", vo.StatePacketReady, vo.StateSubmitted, 1.0, ""},
		{"submitted to approved is legal", vo.StateSubmitted, vo.StateApproved, 1.0, ""},
		{"submitted to needs info is legal", vo.StateSubmitted, vo.StateNeedsInfo, 1.0, ""},
		{"needs info back to draft is legal", vo.StateNeedsInfo, vo.StateDraft, 0.5, ""},
		{"approved is terminal", vo.StateApproved, vo.StateDraft, 1.0, "no transition path from APPROVED to DRAFT"},
		{"skipping validated is illegal", vo.StateDraft, vo.StateSubmitted, 1.0, "no transition path from DRAFT to SUBMITTED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := reconstructInState(t, tt.from, tt.score)

			err := sub.TransitionTo(tt.to)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, sub.State())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.from, sub.State())
		})
	}
}

func TestSubmission_TransitionTo_InvalidTarget(t *testing.T) {
	sub := draftSubmission(t, 1.0)

	err := sub.TransitionTo(vo.SubmissionState("REJECTED"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid target state")
}

func TestSubmission_UpdateDetails(t *testing.T) {
	t.Run("draft accepts edits", func(t *testing.T) {
		sub := draftSubmission(t, 0.5)

		details := rules.Context{ProjectName: "Riverside Duplex Phase 2", BuildingHeightFt: 32}
		require.NoError(t, sub.UpdateDetails("Riverside Duplex Phase 2", details))
		assert.Equal(t, "Riverside Duplex Phase 2", sub.ProjectName())
		assert.Equal(t, 32.0, sub.Details().BuildingHeightFt)
	})

	t.Run("non-draft rejects edits", func(t *testing.T) {
		sub := reconstructInState(t, vo.StateValidated, 1.0)

		err := sub.UpdateDetails("New Name", rules.Context{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only draft submissions can be edited")
	})

	t.Run("empty project name rejected", func(t *testing.T) {
		sub := draftSubmission(t, 0.5)

		err := sub.UpdateDetails("", rules.Context{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project name is required")
	})
}

func TestSubmission_SetID(t *testing.T) {
	sub := draftSubmission(t, 0)

	require.NoError(t, sub.SetID(42))
	assert.Equal(t, uint(42), sub.ID())

	assert.Error(t, sub.SetID(43))
}

func TestSubmission_PersistedState(t *testing.T) {
	sub := reconstructInState(t, vo.StateSubmitted, 1.0)
	assert.Equal(t, vo.StateSubmitted, sub.PersistedState())

	require.NoError(t, sub.TransitionTo(vo.StateApproved))
	assert.Equal(t, vo.StateSubmitted, sub.PersistedState(),
		"transition alone must not move the persisted marker")
	assert.Equal(t, vo.StateApproved, sub.State())

	sub.MarkStatePersisted()
	assert.Equal(t, vo.StateApproved, sub.PersistedState())
}

func TestNewStateTransitionEvent(t *testing.T) {
	event := NewStateTransitionEvent(42, vo.StateDraft, vo.StateValidated, "jane@example.com")

	assert.Equal(t, uint(42), event.SubmissionID)
	assert.Equal(t, EventTypeStateTransition, event.EventType)
	assert.Equal(t, vo.StateDraft, event.FromState)
	assert.Equal(t, vo.StateValidated, event.ToState)
	assert.Equal(t, "jane@example.com", event.Actor)
	assert.False(t, event.CreatedAt.IsZero())
}
