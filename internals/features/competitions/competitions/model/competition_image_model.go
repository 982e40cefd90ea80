package model

import "github.com/google/uuid"

// CompetitionImageModel adalah satu slide galeri milik satu lomba
// (maks 4 per lomba di kontrak UI; ikut terhapus bersama lombanya
// lewat FK ON DELETE CASCADE).
type CompetitionImageModel struct {
	ID            uuid.UUID `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CompetitionID uuid.UUID `gorm:"column:competition_id;type:uuid;not null;index" json:"competition_id"`
	URL           string    `gorm:"column:url;type:text;not null" json:"url"`
	Path          *string   `gorm:"column:path;type:text" json:"path,omitempty"`
	Source        string    `gorm:"column:source;type:varchar(8);not null;default:url" json:"source"`
	Order         int       `gorm:"column:order;not null;default:0" json:"order"`
}

func (CompetitionImageModel) TableName() string {
	return "competition_images"
}
