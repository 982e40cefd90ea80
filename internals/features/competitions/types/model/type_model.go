package model

import "github.com/google/uuid"

// CompetitionTypeModel adalah "bidang" lomba (tag klasifikasi, many-to-many).
type CompetitionTypeModel struct {
	ID   uuid.UUID `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
}

func (CompetitionTypeModel) TableName() string {
	return "competition_types"
}
