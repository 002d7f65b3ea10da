package usecases

import (
	"context"
	"errors"

	"permitflow/internal/application/submission/dto"
	"permitflow/internal/domain/rules"
	"permitflow/internal/domain/submission"
	"permitflow/internal/shared/actor"
	"permitflow/internal/shared/biztime"
	"permitflow/internal/shared/db"
	apperrors "permitflow/internal/shared/errors"
	"permitflow/internal/shared/logger"
)

type UpdateDraftCommand struct {
	SID         string
	ProjectName string
	Details     rules.Context
	Actor       actor.Actor
}

type UpdateDraftUseCase struct {
	submissionRepo submission.Repository
	catalog        *rules.Catalog
	evaluator      *rules.Evaluator
	txManager      db.TxRunner
	logger         logger.Interface
}

func NewUpdateDraftUseCase(
	submissionRepo submission.Repository,
	catalog *rules.Catalog,
	evaluator *rules.Evaluator,
	txManager db.TxRunner,
	logger logger.Interface,
) *UpdateDraftUseCase {
	return &UpdateDraftUseCase{
		submissionRepo: submissionRepo,
		catalog:        catalog,
		evaluator:      evaluator,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute replaces a draft's details, re-evaluates against the submission's
// jurisdiction, and overwrites the stored rule results wholesale. The
// submission stays in DRAFT; advancing is an explicit transition.
func (uc *UpdateDraftUseCase) Execute(ctx context.Context, cmd UpdateDraftCommand) (*dto.SubmissionDTO, error) {
	var (
		sub     *submission.Submission
		results []rules.Result
	)

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		sub, err = uc.submissionRepo.FindBySID(txCtx, cmd.SID, cmd.Actor.OrgID)
		if err != nil {
			if errors.Is(err, submission.ErrNotFound) {
				return apperrors.NewNotFoundError("submission not found")
			}
			return err
		}

		if err := sub.UpdateDetails(cmd.ProjectName, cmd.Details); err != nil {
			return apperrors.NewUnprocessableError(err.Error())
		}

		ruleSet, err := uc.catalog.ResolveActiveByID(txCtx, sub.JurisdictionID(), biztime.NowUTC())
		if err != nil {
			return mapCatalogError(err, uc.logger)
		}

		results = uc.evaluator.Evaluate(cmd.Details, ruleSet)
		if err := sub.ApplyEvaluation(rules.Score(results)); err != nil {
			return err
		}

		if err := uc.submissionRepo.Update(txCtx, sub); err != nil {
			if errors.Is(err, submission.ErrStaleState) {
				return apperrors.NewConflictError("submission state changed concurrently, retry")
			}
			return err
		}

		return uc.submissionRepo.ReplaceRuleResults(txCtx, sub.ID(), results)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update draft", "sid", cmd.SID, "error", err)
		return nil, apperrors.NewInternalError("failed to update submission")
	}

	uc.logger.Infow("draft updated",
		"sid", sub.SID(),
		"completeness_score", sub.CompletenessScore())

	return dto.ToSubmissionDTO(sub, results), nil
}
