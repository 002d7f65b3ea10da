package rules

import (
	"context"
	"errors"
	"testing"
	"time"

	"permitflow/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJurisdictionRepo struct {
	findByCode func(ctx context.Context, code string) (*Jurisdiction, error)
	findByID   func(ctx context.Context, id uint) (*Jurisdiction, error)
}

func (f *fakeJurisdictionRepo) Save(ctx context.Context, j *Jurisdiction) error {
	return nil
}

func (f *fakeJurisdictionRepo) FindByCode(ctx context.Context, code string) (*Jurisdiction, error) {
	return f.findByCode(ctx, code)
}

func (f *fakeJurisdictionRepo) FindByID(ctx context.Context, id uint) (*Jurisdiction, error) {
	return f.findByID(ctx, id)
}

func (f *fakeJurisdictionRepo) List(ctx context.Context) ([]*Jurisdiction, error) {
	return nil, nil
}

type fakeRuleSetRepo struct {
	findActive func(ctx context.Context, jurisdictionID uint, asOf time.Time) (*RuleSet, error)
}

func (f *fakeRuleSetRepo) Save(ctx context.Context, rs *RuleSet) error {
	return nil
}

func (f *fakeRuleSetRepo) FindActive(ctx context.Context, jurisdictionID uint, asOf time.Time) (*RuleSet, error) {
	return f.findActive(ctx, jurisdictionID, asOf)
}

func (f *fakeRuleSetRepo) FindByVersion(ctx context.Context, jurisdictionID uint, version int) (*RuleSet, error) {
	return nil, ErrRuleSetNotFound
}

func testJurisdiction(t *testing.T) *Jurisdiction {
	t.Helper()
	j, err := ReconstructJurisdiction(7, "ATX", "Austin", time.Now().UTC())
	require.NoError(t, err)
	return j
}

func TestCatalog_ResolveActive_Success(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	active, err := ReconstructRuleSet(3, 7, 2, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	jurisdictions := &fakeJurisdictionRepo{
		findByCode: func(ctx context.Context, code string) (*Jurisdiction, error) {
			assert.Equal(t, "ATX", code)
			return testJurisdiction(t), nil
		},
	}
	ruleSets := &fakeRuleSetRepo{
		findActive: func(ctx context.Context, jurisdictionID uint, got time.Time) (*RuleSet, error) {
			assert.Equal(t, uint(7), jurisdictionID)
			assert.Equal(t, asOf, got)
			return active, nil
		},
	}

	catalog := NewCatalog(jurisdictions, ruleSets, logger.NewLogger())

	rs, err := catalog.ResolveActive(context.Background(), "ATX", asOf)
	require.NoError(t, err)
	assert.Equal(t, uint(3), rs.ID())
	assert.Equal(t, 2, rs.Version())
}

func TestCatalog_ResolveActive_UnknownJurisdiction(t *testing.T) {
	jurisdictions := &fakeJurisdictionRepo{
		findByCode: func(ctx context.Context, code string) (*Jurisdiction, error) {
			return nil, ErrJurisdictionNotFound
		},
	}
	ruleSets := &fakeRuleSetRepo{}

	catalog := NewCatalog(jurisdictions, ruleSets, logger.NewLogger())

	rs, err := catalog.ResolveActive(context.Background(), "NOPE", time.Now().UTC())
	assert.Nil(t, rs)
	assert.ErrorIs(t, err, ErrInvalidJurisdiction)
}

func TestCatalog_ResolveActive_NoActiveRuleSet(t *testing.T) {
	jurisdictions := &fakeJurisdictionRepo{
		findByCode: func(ctx context.Context, code string) (*Jurisdiction, error) {
			return testJurisdiction(t), nil
		},
	}
	ruleSets := &fakeRuleSetRepo{
		findActive: func(ctx context.Context, jurisdictionID uint, asOf time.Time) (*RuleSet, error) {
			return nil, ErrRuleSetNotFound
		},
	}

	catalog := NewCatalog(jurisdictions, ruleSets, logger.NewLogger())

	rs, err := catalog.ResolveActive(context.Background(), "ATX", time.Now().UTC())
	assert.Nil(t, rs)
	assert.ErrorIs(t, err, ErrNoActiveRuleSet)
}

func TestCatalog_ResolveActive_RepositoryFailure(t *testing.T) {
	dbErr := errors.New("connection reset")
	jurisdictions := &fakeJurisdictionRepo{
		findByCode: func(ctx context.Context, code string) (*Jurisdiction, error) {
			return nil, dbErr
		},
	}
	ruleSets := &fakeRuleSetRepo{}

	catalog := NewCatalog(jurisdictions, ruleSets, logger.NewLogger())

	rs, err := catalog.ResolveActive(context.Background(), "ATX", time.Now().UTC())
	assert.Nil(t, rs)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidJurisdiction)
}

func TestCatalog_ResolveActiveByID(t *testing.T) {
	active, err := ReconstructRuleSet(5, 7, 1, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	ruleSets := &fakeRuleSetRepo{
		findActive: func(ctx context.Context, jurisdictionID uint, asOf time.Time) (*RuleSet, error) {
			assert.Equal(t, uint(7), jurisdictionID)
			return active, nil
		},
	}

	catalog := NewCatalog(&fakeJurisdictionRepo{}, ruleSets, logger.NewLogger())

	rs, err := catalog.ResolveActiveByID(context.Background(), 7, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, uint(5), rs.ID())
}

func TestCatalog_ResolveActiveByID_NoActiveRuleSet(t *testing.T) {
	ruleSets := &fakeRuleSetRepo{
		findActive: func(ctx context.Context, jurisdictionID uint, asOf time.Time) (*RuleSet, error) {
			return nil, ErrRuleSetNotFound
		},
	}

	catalog := NewCatalog(&fakeJurisdictionRepo{}, ruleSets, logger.NewLogger())

	rs, err := catalog.ResolveActiveByID(context.Background(), 7, time.Now().UTC())
	assert.Nil(t, rs)
	assert.ErrorIs(t, err, ErrNoActiveRuleSet)
}
