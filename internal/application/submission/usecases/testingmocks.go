package usecases

import (
	"context"
	"time"

	"permitflow/internal/domain/packet"
	"permitflow/internal/domain/rules"
	"permitflow/internal/domain/submission"

	"github.com/stretchr/testify/mock"
)

type mockSubmissionRepository struct {
	mock.Mock
}

func (m *mockSubmissionRepository) Save(ctx context.Context, s *submission.Submission) error {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		if s.ID() == 0 {
			_ = s.SetID(1)
		}
		return nil
	}
	return args.Error(0)
}

func (m *mockSubmissionRepository) Update(ctx context.Context, s *submission.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSubmissionRepository) FindBySID(ctx context.Context, sid string, organizationID uint) (*submission.Submission, error) {
	args := m.Called(ctx, sid, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*submission.Submission), args.Error(1)
}

func (m *mockSubmissionRepository) List(ctx context.Context, organizationID uint, filter submission.Filter) ([]*submission.Submission, int64, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*submission.Submission), args.Get(1).(int64), args.Error(2)
}

func (m *mockSubmissionRepository) ReplaceRuleResults(ctx context.Context, submissionID uint, results []rules.Result) error {
	args := m.Called(ctx, submissionID, results)
	return args.Error(0)
}

func (m *mockSubmissionRepository) FindRuleResults(ctx context.Context, submissionID uint) ([]rules.Result, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rules.Result), args.Error(1)
}

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Append(ctx context.Context, event *submission.WorkflowEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventRepository) ListBySubmission(ctx context.Context, submissionID uint) ([]*submission.WorkflowEvent, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*submission.WorkflowEvent), args.Error(1)
}

type mockPacketRepository struct {
	mock.Mock
}

func (m *mockPacketRepository) Save(ctx context.Context, p *packet.Packet) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPacketRepository) FindBySubmissionID(ctx context.Context, submissionID uint) (*packet.Packet, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packet.Packet), args.Error(1)
}

type mockJurisdictionRepository struct {
	mock.Mock
}

func (m *mockJurisdictionRepository) Save(ctx context.Context, j *rules.Jurisdiction) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *mockJurisdictionRepository) FindByCode(ctx context.Context, code string) (*rules.Jurisdiction, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rules.Jurisdiction), args.Error(1)
}

func (m *mockJurisdictionRepository) FindByID(ctx context.Context, id uint) (*rules.Jurisdiction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rules.Jurisdiction), args.Error(1)
}

func (m *mockJurisdictionRepository) List(ctx context.Context) ([]*rules.Jurisdiction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rules.Jurisdiction), args.Error(1)
}

type mockRuleSetRepository struct {
	mock.Mock
}

func (m *mockRuleSetRepository) Save(ctx context.Context, rs *rules.RuleSet) error {
	args := m.Called(ctx, rs)
	return args.Error(0)
}

func (m *mockRuleSetRepository) FindActive(ctx context.Context, jurisdictionID uint, asOf time.Time) (*rules.RuleSet, error) {
	args := m.Called(ctx, jurisdictionID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rules.RuleSet), args.Error(1)
}

func (m *mockRuleSetRepository) FindByVersion(ctx context.Context, jurisdictionID uint, version int) (*rules.RuleSet, error) {
	args := m.Called(ctx, jurisdictionID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rules.RuleSet), args.Error(1)
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueuePacketGenerate(ctx context.Context, submissionSID string, organizationID uint) error {
	args := m.Called(ctx, submissionSID, organizationID)
	return args.Error(0)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(sub *submission.Submission, jurisdiction *rules.Jurisdiction, results []rules.Result) ([]byte, error) {
	args := m.Called(sub, jurisdiction, results)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockPacketStore struct {
	mock.Mock
}

func (m *mockPacketStore) Store(filename string, data []byte) (string, int64, error) {
	args := m.Called(filename, data)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

// passthroughTxRunner executes the function without a real transaction so use
// cases can be tested against mock repositories.
type passthroughTxRunner struct{}

func (passthroughTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
