package usecases

import (
	"context"
	"errors"
	"fmt"

	"permitflow/internal/domain/packet"
	"permitflow/internal/domain/rules"
	"permitflow/internal/domain/submission"
	vo "permitflow/internal/domain/submission/valueobjects"
	"permitflow/internal/shared/actor"
	"permitflow/internal/shared/db"
	"permitflow/internal/shared/logger"
)

// PacketRenderer produces the packet document for a submission.
type PacketRenderer interface {
	Render(sub *submission.Submission, jurisdiction *rules.Jurisdiction, results []rules.Result) ([]byte, error)
}

// PacketStore persists a rendered packet and reports location and size.
type PacketStore interface {
	Store(filename string, data []byte) (string, int64, error)
}

type GeneratePacketCommand struct {
	SubmissionSID  string
	OrganizationID uint
}

type GeneratePacketUseCase struct {
	submissionRepo   submission.Repository
	eventRepo        submission.EventRepository
	packetRepo       packet.Repository
	jurisdictionRepo rules.JurisdictionRepository
	renderer         PacketRenderer
	store            PacketStore
	txManager        db.TxRunner
	logger           logger.Interface
}

func NewGeneratePacketUseCase(
	submissionRepo submission.Repository,
	eventRepo submission.EventRepository,
	packetRepo packet.Repository,
	jurisdictionRepo rules.JurisdictionRepository,
	renderer PacketRenderer,
	store PacketStore,
	txManager db.TxRunner,
	logger logger.Interface,
) *GeneratePacketUseCase {
	return &GeneratePacketUseCase{
		submissionRepo:   submissionRepo,
		eventRepo:        eventRepo,
		packetRepo:       packetRepo,
		jurisdictionRepo: jurisdictionRepo,
		renderer:         renderer,
		store:            store,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute renders and stores the packet, then records it and advances the
// submission to PACKET_READY in one transaction attributed to the system
// actor. A submission that moved out of VALIDATED since the job was queued
// is skipped, not failed, so stale jobs drain quietly.
func (uc *GeneratePacketUseCase) Execute(ctx context.Context, cmd GeneratePacketCommand) error {
	sub, err := uc.submissionRepo.FindBySID(ctx, cmd.SubmissionSID, cmd.OrganizationID)
	if err != nil {
		if errors.Is(err, submission.ErrNotFound) {
			uc.logger.Warnw("packet job for unknown submission, dropping",
				"sid", cmd.SubmissionSID, "org_id", cmd.OrganizationID)
			return nil
		}
		return fmt.Errorf("failed to find submission: %w", err)
	}

	if !sub.State().IsValidated() {
		uc.logger.Infow("submission no longer validated, skipping packet generation",
			"sid", sub.SID(), "state", sub.State())
		return nil
	}

	jurisdiction, err := uc.jurisdictionRepo.FindByID(ctx, sub.JurisdictionID())
	if err != nil {
		return fmt.Errorf("failed to load jurisdiction: %w", err)
	}

	results, err := uc.submissionRepo.FindRuleResults(ctx, sub.ID())
	if err != nil {
		return fmt.Errorf("failed to load rule results: %w", err)
	}

	data, err := uc.renderer.Render(sub, jurisdiction, results)
	if err != nil {
		return fmt.Errorf("failed to render packet: %w", err)
	}

	location, size, err := uc.store.Store(sub.SID()+".html", data)
	if err != nil {
		return fmt.Errorf("failed to store packet: %w", err)
	}

	system := actor.System(cmd.OrganizationID)

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		// Re-read: the state may have moved while we rendered.
		current, err := uc.submissionRepo.FindBySID(txCtx, cmd.SubmissionSID, cmd.OrganizationID)
		if err != nil {
			return err
		}
		if !current.State().IsValidated() {
			uc.logger.Infow("submission transitioned during rendering, skipping",
				"sid", current.SID(), "state", current.State())
			return nil
		}

		p, err := packet.NewPacket(current.ID(), location, size)
		if err != nil {
			return err
		}
		if err := uc.packetRepo.Save(txCtx, p); err != nil {
			return err
		}

		if err := current.TransitionTo(vo.StatePacketReady); err != nil {
			return err
		}
		if err := uc.submissionRepo.Update(txCtx, current); err != nil {
			if errors.Is(err, submission.ErrStaleState) {
				uc.logger.Infow("submission transitioned during rendering, skipping",
					"sid", current.SID(), "state", current.State())
				return submission.ErrStaleState
			}
			return err
		}

		event := submission.NewStateTransitionEvent(
			current.ID(), vo.StateValidated, vo.StatePacketReady, system.Name)
		return uc.eventRepo.Append(txCtx, event)
	})
	if err != nil {
		// A stale-state loss rolls the packet row back; the job is stale,
		// not failed.
		if errors.Is(err, submission.ErrStaleState) {
			return nil
		}
		return fmt.Errorf("failed to record packet: %w", err)
	}

	uc.logger.Infow("packet generated",
		"sid", sub.SID(),
		"location", location,
		"size_bytes", size)

	return nil
}
