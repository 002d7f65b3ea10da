package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"permitflow/internal/domain/submission"
	"permitflow/internal/infrastructure/persistence/mappers"
	"permitflow/internal/infrastructure/persistence/models"
	db "permitflow/internal/shared/db"
)

type WorkflowEventRepository struct {
	db     *gorm.DB
	mapper mappers.SubmissionMapper
}

func NewWorkflowEventRepository(db *gorm.DB) *WorkflowEventRepository {
	return &WorkflowEventRepository{
		db:     db,
		mapper: mappers.NewSubmissionMapper(),
	}
}

// Append writes one audit record. Events are append-only; there is no update
// or delete path.
func (r *WorkflowEventRepository) Append(ctx context.Context, event *submission.WorkflowEvent) error {
	model := r.mapper.EventToModel(event)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append workflow event: %w", err)
	}

	event.ID = model.ID
	return nil
}

func (r *WorkflowEventRepository) ListBySubmission(ctx context.Context, submissionID uint) ([]*submission.WorkflowEvent, error) {
	var eventModels []models.WorkflowEventModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("submission_id = ?", submissionID).
		Order("created_at ASC, id ASC").
		Find(&eventModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list workflow events: %w", err)
	}

	events := make([]*submission.WorkflowEvent, 0, len(eventModels))
	for i := range eventModels {
		event, err := r.mapper.EventToDomain(&eventModels[i])
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
