package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"permitflow/internal/domain/rules"
	"permitflow/internal/domain/submission"
	vo "permitflow/internal/domain/submission/valueobjects"
	"permitflow/internal/infrastructure/persistence/models"
)

// SubmissionMapper handles the conversion between Submission domain entities
// and persistence models.
type SubmissionMapper interface {
	ToModel(s *submission.Submission) (*models.SubmissionModel, error)
	ToDomain(model *models.SubmissionModel) (*submission.Submission, error)

	ResultToModel(submissionID uint, r rules.Result) *models.RuleResultModel
	ResultToDomain(model *models.RuleResultModel) (rules.Result, error)

	EventToModel(e *submission.WorkflowEvent) *models.WorkflowEventModel
	EventToDomain(model *models.WorkflowEventModel) (*submission.WorkflowEvent, error)
}

type SubmissionMapperImpl struct{}

func NewSubmissionMapper() SubmissionMapper {
	return &SubmissionMapperImpl{}
}

func (m *SubmissionMapperImpl) ToModel(s *submission.Submission) (*models.SubmissionModel, error) {
	details, err := json.Marshal(s.Details())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission details (sid=%s): %w", s.SID(), err)
	}

	return &models.SubmissionModel{
		ID:                s.ID(),
		SID:               s.SID(),
		ProjectName:       s.ProjectName(),
		State:             s.State().String(),
		CompletenessScore: s.CompletenessScore(),
		Details:           details,
		OrganizationID:    s.OrganizationID(),
		JurisdictionID:    s.JurisdictionID(),
		CreatedAt:         s.CreatedAt().UnixMilli(),
		UpdatedAt:         s.UpdatedAt().UnixMilli(),
	}, nil
}

func (m *SubmissionMapperImpl) ToDomain(model *models.SubmissionModel) (*submission.Submission, error) {
	state, err := vo.NewSubmissionState(model.State)
	if err != nil {
		return nil, fmt.Errorf("corrupt submission state (id=%d): %w", model.ID, err)
	}

	var details rules.Context
	if len(model.Details) > 0 {
		if err := json.Unmarshal(model.Details, &details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal submission details (id=%d): %w", model.ID, err)
		}
	}

	return submission.ReconstructSubmission(
		model.ID,
		model.SID,
		model.ProjectName,
		state,
		model.CompletenessScore,
		details,
		model.OrganizationID,
		model.JurisdictionID,
		time.UnixMilli(model.CreatedAt).UTC(),
		time.UnixMilli(model.UpdatedAt).UTC(),
	)
}

func (m *SubmissionMapperImpl) ResultToModel(submissionID uint, r rules.Result) *models.RuleResultModel {
	return &models.RuleResultModel{
		SubmissionID: submissionID,
		RuleKey:      r.RuleKey,
		Passed:       r.Passed,
		Message:      r.Message,
		Severity:     r.Severity.String(),
	}
}

func (m *SubmissionMapperImpl) ResultToDomain(model *models.RuleResultModel) (rules.Result, error) {
	severity, err := rules.NewSeverity(model.Severity)
	if err != nil {
		return rules.Result{}, fmt.Errorf("corrupt rule result severity (id=%d): %w", model.ID, err)
	}

	return rules.Result{
		RuleKey:  model.RuleKey,
		Passed:   model.Passed,
		Message:  model.Message,
		Severity: severity,
	}, nil
}

func (m *SubmissionMapperImpl) EventToModel(e *submission.WorkflowEvent) *models.WorkflowEventModel {
	return &models.WorkflowEventModel{
		ID:           e.ID,
		SubmissionID: e.SubmissionID,
		EventType:    e.EventType,
		FromState:    e.FromState.String(),
		ToState:      e.ToState.String(),
		Actor:        e.Actor,
		CreatedAt:    e.CreatedAt.UnixMilli(),
	}
}

func (m *SubmissionMapperImpl) EventToDomain(model *models.WorkflowEventModel) (*submission.WorkflowEvent, error) {
	fromState, err := vo.NewSubmissionState(model.FromState)
	if err != nil {
		return nil, fmt.Errorf("corrupt workflow event from-state (id=%d): %w", model.ID, err)
	}
	toState, err := vo.NewSubmissionState(model.ToState)
	if err != nil {
		return nil, fmt.Errorf("corrupt workflow event to-state (id=%d): %w", model.ID, err)
	}

	return &submission.WorkflowEvent{
		ID:           model.ID,
		SubmissionID: model.SubmissionID,
		EventType:    model.EventType,
		FromState:    fromState,
		ToState:      toState,
		Actor:        model.Actor,
		CreatedAt:    time.UnixMilli(model.CreatedAt).UTC(),
	}, nil
}
