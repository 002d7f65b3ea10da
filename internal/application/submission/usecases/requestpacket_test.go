package usecases

import (
	"context"
	"errors"
	"testing"

	"permitflow/internal/domain/submission"
	vo "permitflow/internal/domain/submission/valueobjects"
	apperrors "permitflow/internal/shared/errors"
	"permitflow/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestPacketUseCase_Execute_Enqueues(t *testing.T) {
	sub := testSubmissionInState(t, vo.StateValidated, 1.0)

	submissionRepo := new(mockSubmissionRepository)
	enqueuer := new(mockEnqueuer)

	submissionRepo.On("FindBySID", mock.Anything, "sub_abcdef123456", uint(10)).Return(sub, nil)
	enqueuer.On("EnqueuePacketGenerate", mock.Anything, "sub_abcdef123456", uint(10)).Return(nil)

	uc := NewRequestPacketUseCase(submissionRepo, enqueuer, logger.NewLogger())

	result, err := uc.Execute(context.Background(), RequestPacketCommand{
		SID:   "sub_abcdef123456",
		Actor: testActor(),
	})

	require.NoError(t, err)
	assert.Equal(t, "sub_abcdef123456", result.SID)
	assert.Equal(t, "VALIDATED", result.State)
	enqueuer.AssertExpectations(t)
}

func TestRequestPacketUseCase_Execute_StateMatrix(t *testing.T) {
	tests := []struct {
		name     string
		state    vo.SubmissionState
		wantType apperrors.ErrorType
	}{
		{"draft is unprocessable", vo.StateDraft, apperrors.ErrorTypeUnprocessable},
		{"needs info is unprocessable", vo.StateNeedsInfo, apperrors.ErrorTypeUnprocessable},
		{"packet ready conflicts", vo.StatePacketReady, apperrors.ErrorTypeConflict},
		{"submitted conflicts", vo.StateSubmitted, apperrors.ErrorTypeConflict},
		{"polling conflicts", vo.StatePolling, apperrors.ErrorTypeConflict},
		{"approved conflicts", vo.StateApproved, apperrors.ErrorTypeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := testSubmissionInState(t, tt.state, 1.0)

			submissionRepo := new(mockSubmissionRepository)
			enqueuer := new(mockEnqueuer)
			submissionRepo.On("FindBySID", mock.Anything, "sub_abcdef123456", uint(10)).Return(sub, nil)

			uc := NewRequestPacketUseCase(submissionRepo, enqueuer, logger.NewLogger())

			result, err := uc.Execute(context.Background(), RequestPacketCommand{
				SID:   "sub_abcdef123456",
				Actor: testActor(),
			})

			assert.Nil(t, result)
			require.Error(t, err)
			appErr, ok := err.(*apperrors.AppError)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, appErr.Type)
			enqueuer.AssertNotCalled(t, "EnqueuePacketGenerate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRequestPacketUseCase_Execute_NotFound(t *testing.T) {
	submissionRepo := new(mockSubmissionRepository)
	submissionRepo.On("FindBySID", mock.Anything, "sub_abcdef123456", uint(10)).Return(nil, submission.ErrNotFound)

	uc := NewRequestPacketUseCase(submissionRepo, new(mockEnqueuer), logger.NewLogger())

	result, err := uc.Execute(context.Background(), RequestPacketCommand{
		SID:   "sub_abcdef123456",
		Actor: testActor(),
	})

	assert.Nil(t, result)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestRequestPacketUseCase_Execute_EnqueueFailure(t *testing.T) {
	sub := testSubmissionInState(t, vo.StateValidated, 1.0)

	submissionRepo := new(mockSubmissionRepository)
	enqueuer := new(mockEnqueuer)

	submissionRepo.On("FindBySID", mock.Anything, "sub_abcdef123456", uint(10)).Return(sub, nil)
	enqueuer.On("EnqueuePacketGenerate", mock.Anything, "sub_abcdef123456", uint(10)).Return(errors.New("redis down"))

	uc := NewRequestPacketUseCase(submissionRepo, enqueuer, logger.NewLogger())

	result, err := uc.Execute(context.Background(), RequestPacketCommand{
		SID:   "sub_abcdef123456",
		Actor: testActor(),
	})

	assert.Nil(t, result)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
}
