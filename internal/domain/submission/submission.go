package submission

import (
	"fmt"
	"time"

	"permitflow/internal/domain/rules"
	vo "permitflow/internal/domain/submission/valueobjects"
	"permitflow/internal/shared/id"
)

// Submission is the aggregate root of the permit workflow. Its state only
// ever changes through a validated transition, and its completeness score is
// always the REQUIRED-rule fraction from the last evaluation.
type Submission struct {
	dbID              uint
	sid               string
	projectName       string
	state             vo.SubmissionState
	persistedState    vo.SubmissionState
	completenessScore float64
	details           rules.Context
	organizationID    uint
	jurisdictionID    uint
	createdAt         time.Time
	updatedAt         time.Time
}

func NewSubmission(projectName string, details rules.Context, organizationID, jurisdictionID uint) (*Submission, error) {
	if projectName == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if len(projectName) > 200 {
		return nil, fmt.Errorf("project name exceeds maximum length of 200 characters")
	}
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}
	if jurisdictionID == 0 {
		return nil, fmt.Errorf("jurisdiction ID is required")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixSubmission, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate submission ID: %w", err)
	}

	now := time.Now().UTC()
	return &Submission{
		sid:            sid,
		projectName:    projectName,
		state:          vo.StateDraft,
		persistedState: vo.StateDraft,
		details:        details,
		organizationID: organizationID,
		jurisdictionID: jurisdictionID,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructSubmission(
	dbID uint,
	sid string,
	projectName string,
	state vo.SubmissionState,
	completenessScore float64,
	details rules.Context,
	organizationID uint,
	jurisdictionID uint,
	createdAt, updatedAt time.Time,
) (*Submission, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("submission ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("submission SID is required")
	}
	if !state.IsValid() {
		return nil, fmt.Errorf("invalid submission state: %s", state)
	}
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}

	return &Submission{
		dbID:              dbID,
		sid:               sid,
		projectName:       projectName,
		state:             state,
		persistedState:    state,
		completenessScore: completenessScore,
		details:           details,
		organizationID:    organizationID,
		jurisdictionID:    jurisdictionID,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (s *Submission) ID() uint {
	return s.dbID
}

func (s *Submission) SID() string {
	return s.sid
}

func (s *Submission) ProjectName() string {
	return s.projectName
}

func (s *Submission) State() vo.SubmissionState {
	return s.state
}

func (s *Submission) CompletenessScore() float64 {
	return s.completenessScore
}

func (s *Submission) Details() rules.Context {
	return s.details
}

func (s *Submission) OrganizationID() uint {
	return s.organizationID
}

func (s *Submission) JurisdictionID() uint {
	return s.jurisdictionID
}

func (s *Submission) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Submission) UpdatedAt() time.Time {
	return s.updatedAt
}

// PersistedState is the state this aggregate was loaded (or last written)
// with. Writes use it as a compare-and-set predicate: a row whose state moved
// since the read must not be overwritten.
func (s *Submission) PersistedState() vo.SubmissionState {
	return s.persistedState
}

// MarkStatePersisted records that the current state has been written. Called
// by the repository after a successful update.
func (s *Submission) MarkStatePersisted() {
	s.persistedState = s.state
}

func (s *Submission) SetID(dbID uint) error {
	if s.dbID != 0 {
		return fmt.Errorf("submission ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("submission ID cannot be zero")
	}
	s.dbID = dbID
	return nil
}

// ApplyEvaluation records the completeness score computed from the latest
// rule evaluation.
func (s *Submission) ApplyEvaluation(score float64) error {
	if score < 0 || score > 1 {
		return fmt.Errorf("completeness score %v outside [0,1]", score)
	}
	s.completenessScore = score
	s.updatedAt = time.Now().UTC()
	return nil
}

// IsComplete reports whether every required rule passed at last evaluation.
func (s *Submission) IsComplete() bool {
	return s.completenessScore == 1.0
}

// CanTransitionTo evaluates the score guard before the transition table:
// a transition to VALIDATED is illegal while the submission is incomplete,
// regardless of table membership.
func (s *Submission) CanTransitionTo(target vo.SubmissionState) bool {
	if target == vo.StateValidated && !s.IsComplete() {
		return false
	}
	return s.state.CanTransitionTo(target)
}

// TransitionTo mutates the state after re-validating the guard and table.
// The error message distinguishes score-incompleteness from graph
// illegality.
func (s *Submission) TransitionTo(target vo.SubmissionState) error {
	if !target.IsValid() {
		return fmt.Errorf("invalid target state: %s", target)
	}

	if target == vo.StateValidated && !s.IsComplete() {
		return fmt.Errorf("submission is incomplete: completeness score is %.2f, must be 1.00 to validate", s.completenessScore)
	}

	if !s.state.CanTransitionTo(target) {
		return fmt.Errorf("no transition path from %s to %s", s.state, target)
	}

	s.state = target
	s.updatedAt = time.Now().UTC()
	return nil
}

// UpdateDetails replaces the submission details while in DRAFT. Callers
// re-evaluate and re-score afterwards.
func (s *Submission) UpdateDetails(projectName string, details rules.Context) error {
	if !s.state.IsDraft() {
		return fmt.Errorf("only draft submissions can be edited, current state is %s", s.state)
	}
	if projectName == "" {
		return fmt.Errorf("project name is required")
	}

	s.projectName = projectName
	s.details = details
	s.updatedAt = time.Now().UTC()
	return nil
}
