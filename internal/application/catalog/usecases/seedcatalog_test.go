package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"permitflow/internal/infrastructure/persistence/models"
	"permitflow/internal/infrastructure/repository"
	"permitflow/internal/shared/logger"
)

type passthroughTxRunner struct{}

func (passthroughTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func setupSeedTest(t *testing.T) (*SeedCatalogUseCase, *repository.JurisdictionRepository, *repository.RuleSetRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.JurisdictionModel{},
		&models.RuleSetModel{},
		&models.RuleModel{},
	))

	jurisdictionRepo := repository.NewJurisdictionRepository(db)
	ruleSetRepo := repository.NewRuleSetRepository(db)
	uc := NewSeedCatalogUseCase(jurisdictionRepo, ruleSetRepo, passthroughTxRunner{}, logger.NewLogger())

	return uc, jurisdictionRepo, ruleSetRepo
}

func seedCommand() SeedCatalogCommand {
	return SeedCatalogCommand{
		Jurisdictions: []JurisdictionSeed{
			{
				Code: "ATX",
				Name: "Austin, TX",
				RuleSets: []RuleSetSeed{
					{
						Version:       1,
						EffectiveDate: "2025-01-01",
						Rules: []RuleSeed{
							{Key: "zoning_height_max", Severity: "REQUIRED", Description: "Building height limit"},
							{Key: "heritage_tree_survey", Severity: "WARNING", Description: "Heritage tree survey"},
						},
					},
				},
			},
		},
	}
}

func TestSeedCatalogUseCase_Execute(t *testing.T) {
	t.Run("seeds fresh catalog", func(t *testing.T) {
		uc, jurisdictionRepo, ruleSetRepo := setupSeedTest(t)
		ctx := context.Background()

		err := uc.Execute(ctx, seedCommand())
		require.NoError(t, err)

		j, err := jurisdictionRepo.FindByCode(ctx, "ATX")
		require.NoError(t, err)
		assert.Equal(t, "Austin, TX", j.Name())

		rs, err := ruleSetRepo.FindActive(ctx, j.ID(), time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 1, rs.Version())
		assert.Len(t, rs.Rules(), 2)
	})

	t.Run("re-running is a no-op", func(t *testing.T) {
		uc, jurisdictionRepo, ruleSetRepo := setupSeedTest(t)
		ctx := context.Background()

		require.NoError(t, uc.Execute(ctx, seedCommand()))
		require.NoError(t, uc.Execute(ctx, seedCommand()))

		all, err := jurisdictionRepo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		rs, err := ruleSetRepo.FindByVersion(ctx, all[0].ID(), 1)
		require.NoError(t, err)
		assert.Len(t, rs.Rules(), 2)
	})

	t.Run("new rule set version for existing jurisdiction", func(t *testing.T) {
		uc, jurisdictionRepo, ruleSetRepo := setupSeedTest(t)
		ctx := context.Background()

		require.NoError(t, uc.Execute(ctx, seedCommand()))

		cmd := seedCommand()
		cmd.Jurisdictions[0].RuleSets = append(cmd.Jurisdictions[0].RuleSets, RuleSetSeed{
			Version:       2,
			EffectiveDate: "2026-01-01",
			Rules: []RuleSeed{
				{Key: "zoning_height_max", Severity: "REQUIRED", Description: "Building height limit"},
			},
		})
		require.NoError(t, uc.Execute(ctx, cmd))

		j, err := jurisdictionRepo.FindByCode(ctx, "ATX")
		require.NoError(t, err)

		rs, err := ruleSetRepo.FindByVersion(ctx, j.ID(), 2)
		require.NoError(t, err)
		assert.Len(t, rs.Rules(), 1)
	})

	t.Run("invalid severity fails the seed", func(t *testing.T) {
		uc, _, _ := setupSeedTest(t)

		cmd := seedCommand()
		cmd.Jurisdictions[0].RuleSets[0].Rules[0].Severity = "CRITICAL"

		err := uc.Execute(context.Background(), cmd)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "zoning_height_max")
	})

	t.Run("invalid effective date fails the seed", func(t *testing.T) {
		uc, _, _ := setupSeedTest(t)

		cmd := seedCommand()
		cmd.Jurisdictions[0].RuleSets[0].EffectiveDate = "not-a-date"

		err := uc.Execute(context.Background(), cmd)
		assert.Error(t, err)
	})
}
