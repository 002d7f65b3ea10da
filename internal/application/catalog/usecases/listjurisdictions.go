package usecases

import (
	"context"
	"time"

	"permitflow/internal/domain/rules"
	apperrors "permitflow/internal/shared/errors"
	"permitflow/internal/shared/logger"
)

type JurisdictionDTO struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ListJurisdictionsUseCase struct {
	jurisdictionRepo rules.JurisdictionRepository
	logger           logger.Interface
}

func NewListJurisdictionsUseCase(jurisdictionRepo rules.JurisdictionRepository, logger logger.Interface) *ListJurisdictionsUseCase {
	return &ListJurisdictionsUseCase{
		jurisdictionRepo: jurisdictionRepo,
		logger:           logger,
	}
}

func (uc *ListJurisdictionsUseCase) Execute(ctx context.Context) ([]JurisdictionDTO, error) {
	jurisdictions, err := uc.jurisdictionRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list jurisdictions", "error", err)
		return nil, apperrors.NewInternalError("failed to list jurisdictions")
	}

	dtos := make([]JurisdictionDTO, 0, len(jurisdictions))
	for _, j := range jurisdictions {
		dtos = append(dtos, JurisdictionDTO{
			ID:        j.ID(),
			Code:      j.Code(),
			Name:      j.Name(),
			CreatedAt: j.CreatedAt(),
		})
	}

	return dtos, nil
}
