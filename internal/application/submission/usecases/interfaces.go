package usecases

import (
	"context"

	"permitflow/internal/application/submission/dto"
)

type CreateSubmissionExecutor interface {
	Execute(ctx context.Context, cmd CreateSubmissionCommand) (*dto.SubmissionDTO, error)
}

type GetSubmissionExecutor interface {
	Execute(ctx context.Context, query GetSubmissionQuery) (*dto.SubmissionDTO, error)
}

type ListSubmissionsExecutor interface {
	Execute(ctx context.Context, query ListSubmissionsQuery) (*ListSubmissionsResult, error)
}

type UpdateDraftExecutor interface {
	Execute(ctx context.Context, cmd UpdateDraftCommand) (*dto.SubmissionDTO, error)
}

type TransitionSubmissionExecutor interface {
	Execute(ctx context.Context, cmd TransitionSubmissionCommand) (*dto.SubmissionDTO, error)
}

type RequestPacketExecutor interface {
	Execute(ctx context.Context, cmd RequestPacketCommand) (*RequestPacketResult, error)
}

type GetPacketExecutor interface {
	Execute(ctx context.Context, query GetPacketQuery) (*dto.PacketDTO, error)
}

type ListEventsExecutor interface {
	Execute(ctx context.Context, query ListEventsQuery) ([]dto.WorkflowEventDTO, error)
}

type GeneratePacketExecutor interface {
	Execute(ctx context.Context, cmd GeneratePacketCommand) error
}
