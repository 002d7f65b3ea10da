package usecases

import (
	"context"
	"errors"

	"permitflow/internal/domain/submission"
	vo "permitflow/internal/domain/submission/valueobjects"
	"permitflow/internal/shared/actor"
	apperrors "permitflow/internal/shared/errors"
	"permitflow/internal/shared/logger"
)

// PacketJobEnqueuer hands packet generation off to the background worker.
type PacketJobEnqueuer interface {
	EnqueuePacketGenerate(ctx context.Context, submissionSID string, organizationID uint) error
}

type RequestPacketCommand struct {
	SID   string
	Actor actor.Actor
}

type RequestPacketResult struct {
	SID   string `json:"sid"`
	State string `json:"state"`
}

type RequestPacketUseCase struct {
	submissionRepo submission.Repository
	enqueuer       PacketJobEnqueuer
	logger         logger.Interface
}

func NewRequestPacketUseCase(
	submissionRepo submission.Repository,
	enqueuer PacketJobEnqueuer,
	logger logger.Interface,
) *RequestPacketUseCase {
	return &RequestPacketUseCase{
		submissionRepo: submissionRepo,
		enqueuer:       enqueuer,
		logger:         logger,
	}
}

// Execute queues packet generation for a validated submission. States before
// VALIDATED reject with an unprocessable error; states at or past
// PACKET_READY already have a packet and reject with a conflict.
func (uc *RequestPacketUseCase) Execute(ctx context.Context, cmd RequestPacketCommand) (*RequestPacketResult, error) {
	sub, err := uc.submissionRepo.FindBySID(ctx, cmd.SID, cmd.Actor.OrgID)
	if err != nil {
		if errors.Is(err, submission.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("submission not found")
		}
		uc.logger.Errorw("failed to find submission", "sid", cmd.SID, "error", err)
		return nil, apperrors.NewInternalError("failed to find submission")
	}

	switch sub.State() {
	case vo.StateValidated:
		// fall through to enqueue
	case vo.StateDraft, vo.StateNeedsInfo:
		return nil, apperrors.NewUnprocessableError("submission must be validated before a packet can be generated")
	default:
		return nil, apperrors.NewConflictError("packet already generated for this submission")
	}

	if err := uc.enqueuer.EnqueuePacketGenerate(ctx, sub.SID(), cmd.Actor.OrgID); err != nil {
		uc.logger.Errorw("failed to enqueue packet job", "sid", cmd.SID, "error", err)
		return nil, apperrors.NewInternalError("failed to queue packet generation")
	}

	uc.logger.Infow("packet generation queued", "sid", sub.SID())

	return &RequestPacketResult{
		SID:   sub.SID(),
		State: sub.State().String(),
	}, nil
}
