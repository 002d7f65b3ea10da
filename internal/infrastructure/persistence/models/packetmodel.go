package models

type PacketModel struct {
	ID            uint   `gorm:"primaryKey"`
	SID           string `gorm:"column:sid;uniqueIndex;size:20;not null"`
	SubmissionID  uint   `gorm:"not null;uniqueIndex"`
	FileLocation  string `gorm:"size:500;not null"`
	FileSizeBytes int64  `gorm:"not null"`
	CreatedAt     int64  `gorm:"autoCreateTime:milli;not null"`
}

func (PacketModel) TableName() string {
	return "packets"
}
