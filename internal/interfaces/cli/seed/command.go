package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"permitflow/internal/application/catalog/usecases"
	"permitflow/internal/infrastructure/config"
	"permitflow/internal/infrastructure/database"
	"permitflow/internal/infrastructure/repository"
	"permitflow/internal/shared/db"
	"permitflow/internal/shared/logger"
	"permitflow/internal/shared/utils"
)

var (
	env  string
	file string
)

type seedFile struct {
	Jurisdictions []usecases.JurisdictionSeed `yaml:"jurisdictions"`
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load jurisdictions and rule sets from a YAML file",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&file, "file", "f", "./configs/jurisdictions.yaml", "Path to the seed file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seeds seedFile
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(seeds.Jurisdictions) == 0 {
		return fmt.Errorf("seed file contains no jurisdictions")
	}
	for _, j := range seeds.Jurisdictions {
		if err := utils.ValidateStruct(j); err != nil {
			return fmt.Errorf("invalid seed entry %s: %w", j.Code, err)
		}
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log := logger.NewLogger().Named("seed")
	txManager := db.NewTransactionManager(database.Get())
	jurisdictionRepo := repository.NewJurisdictionRepository(database.Get())
	ruleSetRepo := repository.NewRuleSetRepository(database.Get())

	seedUC := usecases.NewSeedCatalogUseCase(jurisdictionRepo, ruleSetRepo, txManager, log)

	if err := seedUC.Execute(context.Background(), usecases.SeedCatalogCommand{
		Jurisdictions: seeds.Jurisdictions,
	}); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	log.Infow("seed completed", "jurisdictions", len(seeds.Jurisdictions))
	return nil
}
