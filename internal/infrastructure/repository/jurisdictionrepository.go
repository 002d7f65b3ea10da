package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"permitflow/internal/domain/rules"
	"permitflow/internal/infrastructure/persistence/mappers"
	"permitflow/internal/infrastructure/persistence/models"
	db "permitflow/internal/shared/db"
)

type JurisdictionRepository struct {
	db     *gorm.DB
	mapper mappers.RuleSetMapper
}

func NewJurisdictionRepository(db *gorm.DB) *JurisdictionRepository {
	return &JurisdictionRepository{
		db:     db,
		mapper: mappers.NewRuleSetMapper(),
	}
}

func (r *JurisdictionRepository) Save(ctx context.Context, j *rules.Jurisdiction) error {
	model := r.mapper.JurisdictionToModel(j)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save jurisdiction: %w", err)
	}

	return j.SetID(model.ID)
}

func (r *JurisdictionRepository) FindByCode(ctx context.Context, code string) (*rules.Jurisdiction, error) {
	var model models.JurisdictionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rules.ErrJurisdictionNotFound
		}
		return nil, fmt.Errorf("failed to find jurisdiction: %w", err)
	}

	return r.mapper.JurisdictionToDomain(&model)
}

func (r *JurisdictionRepository) FindByID(ctx context.Context, id uint) (*rules.Jurisdiction, error) {
	var model models.JurisdictionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rules.ErrJurisdictionNotFound
		}
		return nil, fmt.Errorf("failed to find jurisdiction: %w", err)
	}

	return r.mapper.JurisdictionToDomain(&model)
}

func (r *JurisdictionRepository) List(ctx context.Context) ([]*rules.Jurisdiction, error) {
	var modelRows []models.JurisdictionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Order("code ASC").
		Find(&modelRows).Error; err != nil {
		return nil, fmt.Errorf("failed to list jurisdictions: %w", err)
	}

	jurisdictions := make([]*rules.Jurisdiction, 0, len(modelRows))
	for i := range modelRows {
		j, err := r.mapper.JurisdictionToDomain(&modelRows[i])
		if err != nil {
			return nil, err
		}
		jurisdictions = append(jurisdictions, j)
	}

	return jurisdictions, nil
}
