package submission

import (
	"context"
	"errors"

	"permitflow/internal/domain/rules"
	vo "permitflow/internal/domain/submission/valueobjects"
)

// ErrNotFound is returned when a submission does not exist or is owned by a
// different tenant. The two causes are deliberately indistinguishable so
// tenants cannot be enumerated.
var ErrNotFound = errors.New("submission not found")

// ErrStaleState is returned when an update loses a concurrent race: the row's
// state no longer matches the state the aggregate was loaded with, so the
// write was not applied.
var ErrStaleState = errors.New("submission state changed concurrently")

// Filter narrows and paginates submission listings. Every listing is already
// scoped to the caller's organization by the repository method itself.
type Filter struct {
	State          *vo.SubmissionState
	JurisdictionID *uint
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

// Repository persists submissions, their rule results, and workflow events.
// Every read and write is scoped by organization ID; a mismatch surfaces as
// ErrNotFound.
type Repository interface {
	Save(ctx context.Context, s *Submission) error
	Update(ctx context.Context, s *Submission) error
	FindBySID(ctx context.Context, sid string, organizationID uint) (*Submission, error)
	List(ctx context.Context, organizationID uint, filter Filter) ([]*Submission, int64, error)

	// ReplaceRuleResults removes all persisted rule results of a submission
	// and inserts the given set: re-evaluation replaces results wholesale,
	// never patches them.
	ReplaceRuleResults(ctx context.Context, submissionID uint, results []rules.Result) error
	FindRuleResults(ctx context.Context, submissionID uint) ([]rules.Result, error)
}

// EventRepository appends and reads the audit trail.
type EventRepository interface {
	Append(ctx context.Context, event *WorkflowEvent) error
	ListBySubmission(ctx context.Context, submissionID uint) ([]*WorkflowEvent, error)
}
