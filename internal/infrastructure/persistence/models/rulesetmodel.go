package models

type RuleSetModel struct {
	ID             uint  `gorm:"primaryKey"`
	JurisdictionID uint  `gorm:"not null;index;uniqueIndex:ux_jurisdiction_version,priority:1"`
	Version        int   `gorm:"not null;uniqueIndex:ux_jurisdiction_version,priority:2"`
	EffectiveDate  int64 `gorm:"not null;index"`
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null"`
}

func (RuleSetModel) TableName() string {
	return "rule_sets"
}

type RuleModel struct {
	ID          uint   `gorm:"primaryKey"`
	RuleSetID   uint   `gorm:"not null;index"`
	RuleKey     string `gorm:"size:100;not null"`
	Severity    string `gorm:"size:20;not null"`
	Description string `gorm:"size:500"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (RuleModel) TableName() string {
	return "rules"
}
