package usecases

import (
	"context"
	"errors"

	"permitflow/internal/application/submission/dto"
	"permitflow/internal/domain/rules"
	"permitflow/internal/domain/submission"
	vo "permitflow/internal/domain/submission/valueobjects"
	"permitflow/internal/shared/actor"
	"permitflow/internal/shared/biztime"
	"permitflow/internal/shared/db"
	apperrors "permitflow/internal/shared/errors"
	"permitflow/internal/shared/logger"
)

type CreateSubmissionCommand struct {
	ProjectName      string
	JurisdictionCode string
	Details          rules.Context
	Actor            actor.Actor
}

type CreateSubmissionUseCase struct {
	submissionRepo submission.Repository
	eventRepo      submission.EventRepository
	catalog        *rules.Catalog
	evaluator      *rules.Evaluator
	txManager      db.TxRunner
	logger         logger.Interface
}

func NewCreateSubmissionUseCase(
	submissionRepo submission.Repository,
	eventRepo submission.EventRepository,
	catalog *rules.Catalog,
	evaluator *rules.Evaluator,
	txManager db.TxRunner,
	logger logger.Interface,
) *CreateSubmissionUseCase {
	return &CreateSubmissionUseCase{
		submissionRepo: submissionRepo,
		eventRepo:      eventRepo,
		catalog:        catalog,
		evaluator:      evaluator,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute creates a submission, evaluates it against the jurisdiction's
// active rule set, and advances it to VALIDATED in the same transaction when
// every required rule passes.
func (uc *CreateSubmissionUseCase) Execute(ctx context.Context, cmd CreateSubmissionCommand) (*dto.SubmissionDTO, error) {
	uc.logger.Infow("executing create submission use case",
		"project_name", cmd.ProjectName,
		"jurisdiction_code", cmd.JurisdictionCode,
		"org_id", cmd.Actor.OrgID)

	ruleSet, err := uc.catalog.ResolveActive(ctx, cmd.JurisdictionCode, biztime.NowUTC())
	if err != nil {
		return nil, mapCatalogError(err, uc.logger)
	}

	newSubmission, err := submission.NewSubmission(cmd.ProjectName, cmd.Details, cmd.Actor.OrgID, ruleSet.JurisdictionID())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	results := uc.evaluator.Evaluate(cmd.Details, ruleSet)
	score := rules.Score(results)
	if err := newSubmission.ApplyEvaluation(score); err != nil {
		return nil, apperrors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.submissionRepo.Save(txCtx, newSubmission); err != nil {
			return err
		}

		if err := uc.submissionRepo.ReplaceRuleResults(txCtx, newSubmission.ID(), results); err != nil {
			return err
		}

		if newSubmission.IsComplete() {
			if err := newSubmission.TransitionTo(vo.StateValidated); err != nil {
				return err
			}
			if err := uc.submissionRepo.Update(txCtx, newSubmission); err != nil {
				return err
			}

			event := submission.NewStateTransitionEvent(
				newSubmission.ID(), vo.StateDraft, vo.StateValidated, cmd.Actor.Name)
			if err := uc.eventRepo.Append(txCtx, event); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create submission", "error", err)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to create submission")
	}

	uc.logger.Infow("submission created",
		"sid", newSubmission.SID(),
		"state", newSubmission.State(),
		"completeness_score", newSubmission.CompletenessScore())

	return dto.ToSubmissionDTO(newSubmission, results), nil
}

// mapCatalogError translates rule catalog sentinels onto the API error
// taxonomy: an unknown code is the caller's mistake, a missing rule set is a
// configuration gap on our side.
func mapCatalogError(err error, log logger.Interface) error {
	switch {
	case errors.Is(err, rules.ErrInvalidJurisdiction):
		return apperrors.NewValidationError("unknown jurisdiction code")
	case errors.Is(err, rules.ErrNoActiveRuleSet):
		log.Errorw("jurisdiction has no active rule set", "error", err)
		return apperrors.NewInternalError("jurisdiction has no active rule set")
	default:
		log.Errorw("failed to resolve rule set", "error", err)
		return apperrors.NewInternalError("failed to resolve rule set")
	}
}
