package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"permitflow/internal/domain/rules"
)

func createTestRuleSet(t *testing.T, jurisdictionID uint, version int, effectiveDate time.Time) *rules.RuleSet {
	heightRule, err := rules.NewRule("zoning_height_max", rules.SeverityRequired, "Building height limit")
	require.NoError(t, err)
	treeRule, err := rules.NewRule("heritage_tree_survey", rules.SeverityWarning, "Heritage tree survey")
	require.NoError(t, err)

	rs, err := rules.NewRuleSet(jurisdictionID, version, effectiveDate, []rules.Rule{heightRule, treeRule})
	require.NoError(t, err)
	return rs
}

func TestRuleSetRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRuleSetRepository(db)
	ctx := context.Background()

	rs := createTestRuleSet(t, 1, 1, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	err := repo.Save(ctx, rs)
	assert.NoError(t, err)
	assert.NotZero(t, rs.ID())

	found, err := repo.FindByVersion(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, rs.ID(), found.ID())
	require.Len(t, found.Rules(), 2)
	assert.Equal(t, "zoning_height_max", found.Rules()[0].Key())
	assert.Equal(t, rules.SeverityWarning, found.Rules()[1].Severity())
}

func TestRuleSetRepository_FindActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRuleSetRepository(db)
	ctx := context.Background()

	v1 := createTestRuleSet(t, 1, 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	v2 := createTestRuleSet(t, 1, 2, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	v3 := createTestRuleSet(t, 1, 3, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, v1))
	require.NoError(t, repo.Save(ctx, v2))
	require.NoError(t, repo.Save(ctx, v3))

	t.Run("picks greatest effective date not after asOf", func(t *testing.T) {
		found, err := repo.FindActive(ctx, 1, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 2, found.Version())
	})

	t.Run("ignores future-dated rule sets", func(t *testing.T) {
		found, err := repo.FindActive(ctx, 1, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 1, found.Version())
	})

	t.Run("boundary date is inclusive", func(t *testing.T) {
		found, err := repo.FindActive(ctx, 1, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 2, found.Version())
	})

	t.Run("no rule set yet effective", func(t *testing.T) {
		_, err := repo.FindActive(ctx, 1, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, rules.ErrRuleSetNotFound)
	})

	t.Run("unknown jurisdiction", func(t *testing.T) {
		_, err := repo.FindActive(ctx, 42, time.Now().UTC())
		assert.ErrorIs(t, err, rules.ErrRuleSetNotFound)
	})
}

func TestRuleSetRepository_FindByVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRuleSetRepository(db)
	ctx := context.Background()

	rs := createTestRuleSet(t, 1, 7, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, rs))

	found, err := repo.FindByVersion(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, found.Version())

	_, err = repo.FindByVersion(ctx, 1, 8)
	assert.ErrorIs(t, err, rules.ErrRuleSetNotFound)
}

func TestJurisdictionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJurisdictionRepository(db)
	ctx := context.Background()

	atx, err := rules.NewJurisdiction("ATX", "Austin, TX")
	require.NoError(t, err)
	sea, err := rules.NewJurisdiction("SEA", "Seattle, WA")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, atx))
	require.NoError(t, repo.Save(ctx, sea))

	t.Run("find by code is case insensitive", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "atx")
		require.NoError(t, err)
		assert.Equal(t, atx.ID(), found.ID())
		assert.Equal(t, "Austin, TX", found.Name())
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := repo.FindByCode(ctx, "NYC")
		assert.ErrorIs(t, err, rules.ErrJurisdictionNotFound)
	})

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, sea.ID())
		require.NoError(t, err)
		assert.Equal(t, "SEA", found.Code())
	})

	t.Run("list ordered by code", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "ATX", all[0].Code())
		assert.Equal(t, "SEA", all[1].Code())
	})
}
