package usecases

import (
	"context"
	"errors"

	"permitflow/internal/application/submission/dto"
	"permitflow/internal/domain/packet"
	"permitflow/internal/domain/submission"
	"permitflow/internal/shared/actor"
	apperrors "permitflow/internal/shared/errors"
	"permitflow/internal/shared/logger"
)

type GetPacketQuery struct {
	SID   string
	Actor actor.Actor
}

type GetPacketUseCase struct {
	submissionRepo submission.Repository
	packetRepo     packet.Repository
	logger         logger.Interface
}

func NewGetPacketUseCase(
	submissionRepo submission.Repository,
	packetRepo packet.Repository,
	logger logger.Interface,
) *GetPacketUseCase {
	return &GetPacketUseCase{
		submissionRepo: submissionRepo,
		packetRepo:     packetRepo,
		logger:         logger,
	}
}

func (uc *GetPacketUseCase) Execute(ctx context.Context, query GetPacketQuery) (*dto.PacketDTO, error) {
	sub, err := uc.submissionRepo.FindBySID(ctx, query.SID, query.Actor.OrgID)
	if err != nil {
		if errors.Is(err, submission.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("submission not found")
		}
		uc.logger.Errorw("failed to find submission", "sid", query.SID, "error", err)
		return nil, apperrors.NewInternalError("failed to find submission")
	}

	p, err := uc.packetRepo.FindBySubmissionID(ctx, sub.ID())
	if err != nil {
		if errors.Is(err, packet.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("packet not generated yet")
		}
		uc.logger.Errorw("failed to find packet", "sid", query.SID, "error", err)
		return nil, apperrors.NewInternalError("failed to find packet")
	}

	return dto.ToPacketDTO(p, sub.SID()), nil
}
