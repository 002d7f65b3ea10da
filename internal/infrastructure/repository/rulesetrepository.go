package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"permitflow/internal/domain/rules"
	"permitflow/internal/infrastructure/persistence/mappers"
	"permitflow/internal/infrastructure/persistence/models"
	db "permitflow/internal/shared/db"
)

type RuleSetRepository struct {
	db     *gorm.DB
	mapper mappers.RuleSetMapper
}

func NewRuleSetRepository(db *gorm.DB) *RuleSetRepository {
	return &RuleSetRepository{
		db:     db,
		mapper: mappers.NewRuleSetMapper(),
	}
}

// Save persists a rule set together with its rules.
func (r *RuleSetRepository) Save(ctx context.Context, rs *rules.RuleSet) error {
	model := r.mapper.RuleSetToModel(rs)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save rule set: %w", err)
	}

	if err := rs.SetID(model.ID); err != nil {
		return err
	}

	ruleModels := r.mapper.RuleToModels(model.ID, rs.Rules())
	if len(ruleModels) > 0 {
		if err := tx.Create(&ruleModels).Error; err != nil {
			return fmt.Errorf("failed to save rules: %w", err)
		}
	}

	return nil
}

// FindActive selects the rule set with the greatest effective date not
// exceeding asOf. The ordering makes resolution deterministic for a fixed
// asOf even when future-dated rule sets are inserted concurrently.
func (r *RuleSetRepository) FindActive(ctx context.Context, jurisdictionID uint, asOf time.Time) (*rules.RuleSet, error) {
	var model models.RuleSetModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("jurisdiction_id = ? AND effective_date <= ?", jurisdictionID, asOf.UnixMilli()).
		Order("effective_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rules.ErrRuleSetNotFound
		}
		return nil, fmt.Errorf("failed to find active rule set: %w", err)
	}

	return r.loadWithRules(ctx, &model)
}

func (r *RuleSetRepository) FindByVersion(ctx context.Context, jurisdictionID uint, version int) (*rules.RuleSet, error) {
	var model models.RuleSetModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("jurisdiction_id = ? AND version = ?", jurisdictionID, version).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rules.ErrRuleSetNotFound
		}
		return nil, fmt.Errorf("failed to find rule set: %w", err)
	}

	return r.loadWithRules(ctx, &model)
}

func (r *RuleSetRepository) loadWithRules(ctx context.Context, model *models.RuleSetModel) (*rules.RuleSet, error) {
	var ruleModels []*models.RuleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("rule_set_id = ?", model.ID).
		Order("id ASC").
		Find(&ruleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	return r.mapper.RuleSetToDomain(model, ruleModels)
}
