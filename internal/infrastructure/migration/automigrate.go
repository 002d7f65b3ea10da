package migration

import (
	"permitflow/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persisted model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.JurisdictionModel{},
		&models.RuleSetModel{},
		&models.RuleModel{},
		&models.SubmissionModel{},
		&models.RuleResultModel{},
		&models.WorkflowEventModel{},
		&models.PacketModel{},
	}
}
