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

type ListEventsQuery struct {
	SID   string
	Actor actor.Actor
}

type ListEventsUseCase struct {
	submissionRepo submission.Repository
	eventRepo      submission.EventRepository
	logger         logger.Interface
}

func NewListEventsUseCase(
	submissionRepo submission.Repository,
	eventRepo submission.EventRepository,
	logger logger.Interface,
) *ListEventsUseCase {
	return &ListEventsUseCase{
		submissionRepo: submissionRepo,
		eventRepo:      eventRepo,
		logger:         logger,
	}
}

func (uc *ListEventsUseCase) Execute(ctx context.Context, query ListEventsQuery) ([]dto.WorkflowEventDTO, error) {
	sub, err := uc.submissionRepo.FindBySID(ctx, query.SID, query.Actor.OrgID)
	if err != nil {
		if errors.Is(err, submission.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("submission not found")
		}
		uc.logger.Errorw("failed to find submission", "sid", query.SID, "error", err)
		return nil, apperrors.NewInternalError("failed to find submission")
	}

	events, err := uc.eventRepo.ListBySubmission(ctx, sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to list events", "sid", query.SID, "error", err)
		return nil, apperrors.NewInternalError("failed to list events")
	}

	dtos := make([]dto.WorkflowEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, dto.ToWorkflowEventDTO(e))
	}

	return dtos, nil
}
