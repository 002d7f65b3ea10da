package dto

import (
	"time"

	"permitflow/internal/domain/packet"
	"permitflow/internal/domain/rules"
	"permitflow/internal/domain/submission"
)

type SubmissionDTO struct {
	SID               string          `json:"sid"`
	ProjectName       string          `json:"project_name"`
	State             string          `json:"state"`
	CompletenessScore float64         `json:"completeness_score"`
	JurisdictionID    uint            `json:"jurisdiction_id"`
	Details           rules.Context   `json:"details"`
	RuleResults       []RuleResultDTO `json:"rule_results,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type SubmissionListItemDTO struct {
	SID               string    `json:"sid"`
	ProjectName       string    `json:"project_name"`
	State             string    `json:"state"`
	CompletenessScore float64   `json:"completeness_score"`
	JurisdictionID    uint      `json:"jurisdiction_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type RuleResultDTO struct {
	RuleKey  string `json:"rule_key"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type WorkflowEventDTO struct {
	EventType string    `json:"event_type"`
	FromState string    `json:"from_state"`
	ToState   string    `json:"to_state"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

type PacketDTO struct {
	SID           string    `json:"sid"`
	SubmissionSID string    `json:"submission_sid"`
	FileLocation  string    `json:"file_location"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToSubmissionDTO(s *submission.Submission, results []rules.Result) *SubmissionDTO {
	if s == nil {
		return nil
	}

	return &SubmissionDTO{
		SID:               s.SID(),
		ProjectName:       s.ProjectName(),
		State:             s.State().String(),
		CompletenessScore: s.CompletenessScore(),
		JurisdictionID:    s.JurisdictionID(),
		Details:           s.Details(),
		RuleResults:       ToRuleResultDTOs(results),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
	}
}

func ToSubmissionListItemDTO(s *submission.Submission) SubmissionListItemDTO {
	return SubmissionListItemDTO{
		SID:               s.SID(),
		ProjectName:       s.ProjectName(),
		State:             s.State().String(),
		CompletenessScore: s.CompletenessScore(),
		JurisdictionID:    s.JurisdictionID(),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
	}
}

func ToRuleResultDTOs(results []rules.Result) []RuleResultDTO {
	dtos := make([]RuleResultDTO, 0, len(results))
	for _, r := range results {
		dtos = append(dtos, RuleResultDTO{
			RuleKey:  r.RuleKey,
			Passed:   r.Passed,
			Message:  r.Message,
			Severity: r.Severity.String(),
		})
	}
	return dtos
}

func ToWorkflowEventDTO(e *submission.WorkflowEvent) WorkflowEventDTO {
	return WorkflowEventDTO{
		EventType: e.EventType,
		FromState: e.FromState.String(),
		ToState:   e.ToState.String(),
		Actor:     e.Actor,
		CreatedAt: e.CreatedAt,
	}
}

func ToPacketDTO(p *packet.Packet, submissionSID string) *PacketDTO {
	if p == nil {
		return nil
	}

	return &PacketDTO{
		SID:           p.SID(),
		SubmissionSID: submissionSID,
		FileLocation:  p.FileLocation(),
		FileSizeBytes: p.FileSizeBytes(),
		CreatedAt:     p.CreatedAt(),
	}
}
