package mappers

import (
	"fmt"
	"time"

	"permitflow/internal/domain/rules"
	"permitflow/internal/infrastructure/persistence/models"
)

// RuleSetMapper handles the conversion between rule-catalog domain entities
// and persistence models.
type RuleSetMapper interface {
	JurisdictionToModel(j *rules.Jurisdiction) *models.JurisdictionModel
	JurisdictionToDomain(model *models.JurisdictionModel) (*rules.Jurisdiction, error)

	RuleSetToModel(rs *rules.RuleSet) *models.RuleSetModel
	RuleToModels(ruleSetID uint, ruleDefs []rules.Rule) []*models.RuleModel
	RuleSetToDomain(model *models.RuleSetModel, ruleModels []*models.RuleModel) (*rules.RuleSet, error)
}

type RuleSetMapperImpl struct{}

func NewRuleSetMapper() RuleSetMapper {
	return &RuleSetMapperImpl{}
}

func (m *RuleSetMapperImpl) JurisdictionToModel(j *rules.Jurisdiction) *models.JurisdictionModel {
	return &models.JurisdictionModel{
		ID:        j.ID(),
		Code:      j.Code(),
		Name:      j.Name(),
		CreatedAt: j.CreatedAt().UnixMilli(),
	}
}

func (m *RuleSetMapperImpl) JurisdictionToDomain(model *models.JurisdictionModel) (*rules.Jurisdiction, error) {
	return rules.ReconstructJurisdiction(
		model.ID,
		model.Code,
		model.Name,
		time.UnixMilli(model.CreatedAt).UTC(),
	)
}

func (m *RuleSetMapperImpl) RuleSetToModel(rs *rules.RuleSet) *models.RuleSetModel {
	return &models.RuleSetModel{
		ID:             rs.ID(),
		JurisdictionID: rs.JurisdictionID(),
		Version:        rs.Version(),
		EffectiveDate:  rs.EffectiveDate().UnixMilli(),
	}
}

func (m *RuleSetMapperImpl) RuleToModels(ruleSetID uint, ruleDefs []rules.Rule) []*models.RuleModel {
	ruleModels := make([]*models.RuleModel, 0, len(ruleDefs))
	for _, rule := range ruleDefs {
		ruleModels = append(ruleModels, &models.RuleModel{
			ID:          rule.ID(),
			RuleSetID:   ruleSetID,
			RuleKey:     rule.Key(),
			Severity:    rule.Severity().String(),
			Description: rule.Description(),
		})
	}
	return ruleModels
}

func (m *RuleSetMapperImpl) RuleSetToDomain(model *models.RuleSetModel, ruleModels []*models.RuleModel) (*rules.RuleSet, error) {
	ruleDefs := make([]rules.Rule, 0, len(ruleModels))
	for _, rm := range ruleModels {
		severity, err := rules.NewSeverity(rm.Severity)
		if err != nil {
			return nil, fmt.Errorf("corrupt rule severity (id=%d): %w", rm.ID, err)
		}
		rule, err := rules.ReconstructRule(rm.ID, rm.RuleKey, severity, rm.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct rule (id=%d): %w", rm.ID, err)
		}
		ruleDefs = append(ruleDefs, rule)
	}

	return rules.ReconstructRuleSet(
		model.ID,
		model.JurisdictionID,
		model.Version,
		time.UnixMilli(model.EffectiveDate).UTC(),
		ruleDefs,
	)
}
