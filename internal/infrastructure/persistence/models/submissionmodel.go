package models

import "gorm.io/datatypes"

type SubmissionModel struct {
	ID                uint           `gorm:"primaryKey"`
	SID               string         `gorm:"column:sid;uniqueIndex;size:20;not null"`
	ProjectName       string         `gorm:"size:200;not null"`
	State             string         `gorm:"size:20;not null;index"`
	CompletenessScore float64        `gorm:"not null;default:0"`
	Details           datatypes.JSON `gorm:"not null"`
	OrganizationID    uint           `gorm:"not null;index"`
	JurisdictionID    uint           `gorm:"not null;index"`
	CreatedAt         int64          `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt         int64          `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (SubmissionModel) TableName() string {
	return "permit_submissions"
}

type RuleResultModel struct {
	ID           uint   `gorm:"primaryKey"`
	SubmissionID uint   `gorm:"not null;index"`
	RuleKey      string `gorm:"size:100;not null"`
	Passed       bool   `gorm:"not null"`
	Message      string `gorm:"size:500;not null"`
	Severity     string `gorm:"size:20;not null"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
}

func (RuleResultModel) TableName() string {
	return "rule_results"
}

type WorkflowEventModel struct {
	ID           uint   `gorm:"primaryKey"`
	SubmissionID uint   `gorm:"not null;index"`
	EventType    string `gorm:"size:50;not null"`
	FromState    string `gorm:"size:20;not null"`
	ToState      string `gorm:"size:20;not null"`
	Actor        string `gorm:"size:100;not null"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (WorkflowEventModel) TableName() string {
	return "workflow_events"
}
