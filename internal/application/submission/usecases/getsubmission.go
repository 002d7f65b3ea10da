package usecases

import (
	"context"
	"errors"

	"permitflow/internal/application/submission/dto"
	"permitflow/internal/domain/submission"
	"permitflow/internal/shared/actor"
	apperrors "permitflow/internal/shared/errors"
	"permitflow/internal/shared/logger"
)

type GetSubmissionQuery struct {
	SID   string
	Actor actor.Actor
}

type GetSubmissionUseCase struct {
	submissionRepo submission.Repository
	logger         logger.Interface
}

func NewGetSubmissionUseCase(submissionRepo submission.Repository, logger logger.Interface) *GetSubmissionUseCase {
	return &GetSubmissionUseCase{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (uc *GetSubmissionUseCase) Execute(ctx context.Context, query GetSubmissionQuery) (*dto.SubmissionDTO, error) {
	sub, err := uc.submissionRepo.FindBySID(ctx, query.SID, query.Actor.OrgID)
	if err != nil {
		if errors.Is(err, submission.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("submission not found")
		}
		uc.logger.Errorw("failed to find submission", "sid", query.SID, "error", err)
		return nil, apperrors.NewInternalError("failed to find submission")
	}

	results, err := uc.submissionRepo.FindRuleResults(ctx, sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to load rule results", "sid", query.SID, "error", err)
		return nil, apperrors.NewInternalError("failed to load rule results")
	}

	return dto.ToSubmissionDTO(sub, results), nil
}
