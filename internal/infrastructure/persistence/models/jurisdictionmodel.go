package models

type JurisdictionModel struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"uniqueIndex;size:10;not null"`
	Name      string `gorm:"size:200;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (JurisdictionModel) TableName() string {
	return "jurisdictions"
}
