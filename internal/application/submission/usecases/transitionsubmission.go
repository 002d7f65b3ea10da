package usecases

import (
	"context"
	"errors"

	"permitflow/internal/application/submission/dto"
	"permitflow/internal/domain/submission"
	vo "permitflow/internal/domain/submission/valueobjects"
	"permitflow/internal/shared/actor"
	"permitflow/internal/shared/db"
	apperrors "permitflow/internal/shared/errors"
	"permitflow/internal/shared/logger"
)

type TransitionSubmissionCommand struct {
	SID         string
	TargetState string
	Actor       actor.Actor
}

type TransitionSubmissionUseCase struct {
	submissionRepo submission.Repository
	eventRepo      submission.EventRepository
	txManager      db.TxRunner
	logger         logger.Interface
}

func NewTransitionSubmissionUseCase(
	submissionRepo submission.Repository,
	eventRepo submission.EventRepository,
	txManager db.TxRunner,
	logger logger.Interface,
) *TransitionSubmissionUseCase {
	return &TransitionSubmissionUseCase{
		submissionRepo: submissionRepo,
		eventRepo:      eventRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute moves a submission to the target state. The current state is
// re-read inside the transaction so concurrent transitions serialize instead
// of both applying. Every applied transition writes one audit event in the
// same transaction.
func (uc *TransitionSubmissionUseCase) Execute(ctx context.Context, cmd TransitionSubmissionCommand) (*dto.SubmissionDTO, error) {
	target, err := vo.NewSubmissionState(cmd.TargetState)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid target state")
	}

	var sub *submission.Submission

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		sub, err = uc.submissionRepo.FindBySID(txCtx, cmd.SID, cmd.Actor.OrgID)
		if err != nil {
			if errors.Is(err, submission.ErrNotFound) {
				return apperrors.NewNotFoundError("submission not found")
			}
			return err
		}

		from := sub.State()
		if err := sub.TransitionTo(target); err != nil {
			return apperrors.NewUnprocessableError(err.Error())
		}

		if err := uc.submissionRepo.Update(txCtx, sub); err != nil {
			if errors.Is(err, submission.ErrStaleState) {
				return apperrors.NewConflictError("submission state changed concurrently, retry")
			}
			return err
		}

		event := submission.NewStateTransitionEvent(sub.ID(), from, target, cmd.Actor.Name)
		return uc.eventRepo.Append(txCtx, event)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to transition submission", "sid", cmd.SID, "target", target, "error", err)
		return nil, apperrors.NewInternalError("failed to transition submission")
	}

	uc.logger.Infow("submission transitioned",
		"sid", sub.SID(),
		"to", sub.State(),
		"actor", cmd.Actor.Name)

	return dto.ToSubmissionDTO(sub, nil), nil
}
