package usecases

import (
	"context"

	"permitflow/internal/application/submission/dto"
	"permitflow/internal/domain/submission"
	vo "permitflow/internal/domain/submission/valueobjects"
	"permitflow/internal/shared/actor"
	apperrors "permitflow/internal/shared/errors"
	"permitflow/internal/shared/logger"
)

type ListSubmissionsQuery struct {
	State          string
	JurisdictionID *uint
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
	Actor          actor.Actor
}

type ListSubmissionsResult struct {
	Submissions []dto.SubmissionListItemDTO
	Total       int64
}

type ListSubmissionsUseCase struct {
	submissionRepo submission.Repository
	logger         logger.Interface
}

func NewListSubmissionsUseCase(submissionRepo submission.Repository, logger logger.Interface) *ListSubmissionsUseCase {
	return &ListSubmissionsUseCase{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (uc *ListSubmissionsUseCase) Execute(ctx context.Context, query ListSubmissionsQuery) (*ListSubmissionsResult, error) {
	filter := submission.Filter{
		JurisdictionID: query.JurisdictionID,
		Page:           query.Page,
		PageSize:       query.PageSize,
		SortBy:         query.SortBy,
		SortOrder:      query.SortOrder,
	}

	if query.State != "" {
		state, err := vo.NewSubmissionState(query.State)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid state filter")
		}
		filter.State = &state
	}

	submissions, total, err := uc.submissionRepo.List(ctx, query.Actor.OrgID, filter)
	if err != nil {
		uc.logger.Errorw("failed to list submissions", "org_id", query.Actor.OrgID, "error", err)
		return nil, apperrors.NewInternalError("failed to list submissions")
	}

	items := make([]dto.SubmissionListItemDTO, 0, len(submissions))
	for _, s := range submissions {
		items = append(items, dto.ToSubmissionListItemDTO(s))
	}

	return &ListSubmissionsResult{
		Submissions: items,
		Total:       total,
	}, nil
}
