package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"permitflow/internal/domain/packet"
	"permitflow/internal/domain/rules"
	"permitflow/internal/domain/submission"
	vo "permitflow/internal/domain/submission/valueobjects"
	"permitflow/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGeneratePacketUseCase(
	submissionRepo *mockSubmissionRepository,
	eventRepo *mockEventRepository,
	packetRepo *mockPacketRepository,
	jurisdictionRepo *mockJurisdictionRepository,
	renderer *mockRenderer,
	store *mockPacketStore,
) *GeneratePacketUseCase {
	return NewGeneratePacketUseCase(
		submissionRepo, eventRepo, packetRepo, jurisdictionRepo,
		renderer, store, passthroughTxRunner{}, logger.NewLogger())
}

func TestGeneratePacketUseCase_Execute_Success(t *testing.T) {
	sub := testSubmissionInState(t, vo.StateValidated, 1.0)
	jurisdiction, err := rules.ReconstructJurisdiction(7, "ATX", "Austin", time.Now().UTC())
	require.NoError(t, err)

	results := []rules.Result{
		{RuleKey: rules.KeyPlansSubmitted, Passed: true, Message: "ok", Severity: rules.SeverityRequired},
	}

	submissionRepo := new(mockSubmissionRepository)
	eventRepo := new(mockEventRepository)
	packetRepo := new(mockPacketRepository)
	jurisdictionRepo := new(mockJurisdictionRepository)
	renderer := new(mockRenderer)
	store := new(mockPacketStore)

	submissionRepo.On("FindBySID", mock.Anything, "sub_abcdef123456", uint(10)).Return(sub, nil)
	jurisdictionRepo.On("FindByID", mock.Anything, uint(7)).Return(jurisdiction, nil)
	submissionRepo.On("FindRuleResults", mock.Anything, uint(42)).Return(results, nil)
	renderer.On("Render", sub, jurisdiction, results).Return([]byte("<html></html>"), nil)
	store.On("Store", "sub_abcdef123456.html", []byte("<html></html>")).Return("./packets/sub_abcdef123456.html", int64(2048), nil)
	packetRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *packet.Packet) bool {
		return p.SubmissionID() == 42 && p.FileSizeBytes() == 2048
	})).Return(nil)
	submissionRepo.On("Update", mock.Anything, sub).Return(nil)
	eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *submission.WorkflowEvent) bool {
		return e.FromState == vo.StateValidated && e.ToState == vo.StatePacketReady && e.Actor == "system"
	})).Return(nil)

	uc := newGeneratePacketUseCase(submissionRepo, eventRepo, packetRepo, jurisdictionRepo, renderer, store)

	err = uc.Execute(context.Background(), GeneratePacketCommand{
		SubmissionSID:  "sub_abcdef123456",
		OrganizationID: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatePacketReady, sub.State())
	packetRepo.AssertExpectations(t)
	eventRepo.AssertExpectations(t)
}

func TestGeneratePacketUseCase_Execute_SkipsStaleJob(t *testing.T) {
	tests := []struct {
		name  string
		state vo.SubmissionState
	}{
		{"back in draft", vo.StateDraft},
		{"already packet ready", vo.StatePacketReady},
		{"already approved", vo.StateApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := testSubmissionInState(t, tt.state, 1.0)

			submissionRepo := new(mockSubmissionRepository)
			renderer := new(mockRenderer)
			submissionRepo.On("FindBySID", mock.Anything, "sub_abcdef123456", uint(10)).Return(sub, nil)

			uc := newGeneratePacketUseCase(
				submissionRepo, new(mockEventRepository), new(mockPacketRepository),
				new(mockJurisdictionRepository), renderer, new(mockPacketStore))

			err := uc.Execute(context.Background(), GeneratePacketCommand{
				SubmissionSID:  "sub_abcdef123456",
				OrganizationID: 10,
			})

			assert.NoError(t, err)
			renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGeneratePacketUseCase_Execute_DropsUnknownSubmission(t *testing.T) {
	submissionRepo := new(mockSubmissionRepository)
	submissionRepo.On("FindBySID", mock.Anything, "sub_gone00000000", uint(10)).Return(nil, submission.ErrNotFound)

	uc := newGeneratePacketUseCase(
		submissionRepo, new(mockEventRepository), new(mockPacketRepository),
		new(mockJurisdictionRepository), new(mockRenderer), new(mockPacketStore))

	err := uc.Execute(context.Background(), GeneratePacketCommand{
		SubmissionSID:  "sub_gone00000000",
		OrganizationID: 10,
	})

	assert.NoError(t, err)
}

func TestGeneratePacketUseCase_Execute_RenderFailure(t *testing.T) {
	sub := testSubmissionInState(t, vo.StateValidated, 1.0)
	jurisdiction, err := rules.ReconstructJurisdiction(7, "ATX", "Austin", time.Now().UTC())
	require.NoError(t, err)

	submissionRepo := new(mockSubmissionRepository)
	jurisdictionRepo := new(mockJurisdictionRepository)
	renderer := new(mockRenderer)
	packetRepo := new(mockPacketRepository)

	submissionRepo.On("FindBySID", mock.Anything, "sub_abcdef123456", uint(10)).Return(sub, nil)
	jurisdictionRepo.On("FindByID", mock.Anything, uint(7)).Return(jurisdiction, nil)
	submissionRepo.On("FindRuleResults", mock.Anything, uint(42)).Return([]rules.Result{}, nil)
	renderer.On("Render", sub, jurisdiction, mock.Anything).Return(nil, errors.New("template error"))

	uc := newGeneratePacketUseCase(
		submissionRepo, new(mockEventRepository), packetRepo,
		jurisdictionRepo, renderer, new(mockPacketStore))

	err = uc.Execute(context.Background(), GeneratePacketCommand{
		SubmissionSID:  "sub_abcdef123456",
		OrganizationID: 10,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render packet")
	packetRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
