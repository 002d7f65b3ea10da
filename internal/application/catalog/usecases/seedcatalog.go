package usecases

import (
	"context"
	"errors"
	"fmt"

	"permitflow/internal/domain/rules"
	"permitflow/internal/shared/biztime"
	"permitflow/internal/shared/db"
	"permitflow/internal/shared/logger"
)

// Seed definitions mirror the jurisdictions YAML file shape.
type RuleSeed struct {
	Key         string `yaml:"key" validate:"required,max=100"`
	Severity    string `yaml:"severity" validate:"required,oneof=REQUIRED WARNING"`
	Description string `yaml:"description" validate:"max=500"`
}

type RuleSetSeed struct {
	Version       int        `yaml:"version" validate:"gt=0"`
	EffectiveDate string     `yaml:"effective_date" validate:"required"`
	Rules         []RuleSeed `yaml:"rules" validate:"required,dive"`
}

type JurisdictionSeed struct {
	Code     string        `yaml:"code" validate:"required,max=10"`
	Name     string        `yaml:"name" validate:"required,max=200"`
	RuleSets []RuleSetSeed `yaml:"rule_sets" validate:"dive"`
}

type SeedCatalogCommand struct {
	Jurisdictions []JurisdictionSeed
}

type SeedCatalogUseCase struct {
	jurisdictionRepo rules.JurisdictionRepository
	ruleSetRepo      rules.RuleSetRepository
	txManager        db.TxRunner
	logger           logger.Interface
}

func NewSeedCatalogUseCase(
	jurisdictionRepo rules.JurisdictionRepository,
	ruleSetRepo rules.RuleSetRepository,
	txManager db.TxRunner,
	logger logger.Interface,
) *SeedCatalogUseCase {
	return &SeedCatalogUseCase{
		jurisdictionRepo: jurisdictionRepo,
		ruleSetRepo:      ruleSetRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute loads jurisdictions and rule sets, skipping any that already
// exist. Re-running the seed against a populated database is a no-op.
func (uc *SeedCatalogUseCase) Execute(ctx context.Context, cmd SeedCatalogCommand) error {
	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, seed := range cmd.Jurisdictions {
			if err := uc.seedJurisdiction(txCtx, seed); err != nil {
				return fmt.Errorf("failed to seed jurisdiction %s: %w", seed.Code, err)
			}
		}
		return nil
	})
}

func (uc *SeedCatalogUseCase) seedJurisdiction(ctx context.Context, seed JurisdictionSeed) error {
	jurisdiction, err := uc.jurisdictionRepo.FindByCode(ctx, seed.Code)
	if errors.Is(err, rules.ErrJurisdictionNotFound) {
		jurisdiction, err = rules.NewJurisdiction(seed.Code, seed.Name)
		if err != nil {
			return err
		}
		if err := uc.jurisdictionRepo.Save(ctx, jurisdiction); err != nil {
			return err
		}
		uc.logger.Infow("jurisdiction created", "code", jurisdiction.Code())
	} else if err != nil {
		return err
	}

	for _, rsSeed := range seed.RuleSets {
		if err := uc.seedRuleSet(ctx, jurisdiction.ID(), rsSeed); err != nil {
			return err
		}
	}

	return nil
}

func (uc *SeedCatalogUseCase) seedRuleSet(ctx context.Context, jurisdictionID uint, seed RuleSetSeed) error {
	_, err := uc.ruleSetRepo.FindByVersion(ctx, jurisdictionID, seed.Version)
	if err == nil {
		return nil
	}
	if !errors.Is(err, rules.ErrRuleSetNotFound) {
		return err
	}

	effectiveDate, err := biztime.ParseDateUTC(seed.EffectiveDate)
	if err != nil {
		return err
	}

	ruleDefs := make([]rules.Rule, 0, len(seed.Rules))
	for _, r := range seed.Rules {
		severity, err := rules.NewSeverity(r.Severity)
		if err != nil {
			return fmt.Errorf("rule %s: %w", r.Key, err)
		}
		rule, err := rules.NewRule(r.Key, severity, r.Description)
		if err != nil {
			return err
		}
		ruleDefs = append(ruleDefs, rule)
	}

	ruleSet, err := rules.NewRuleSet(jurisdictionID, seed.Version, effectiveDate, ruleDefs)
	if err != nil {
		return err
	}

	if err := uc.ruleSetRepo.Save(ctx, ruleSet); err != nil {
		return err
	}

	uc.logger.Infow("rule set created",
		"jurisdiction_id", jurisdictionID,
		"version", seed.Version,
		"rules", len(ruleDefs))

	return nil
}
