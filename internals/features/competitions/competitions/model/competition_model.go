package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	typeModel "lombain_backend/internals/features/competitions/types/model"
)

// Kategori lomba
const (
	CategoryInternal = "Internal"
	CategoryExternal = "External"
)

// Sumber gambar (upload sendiri vs URL eksternal)
const (
	ImageSourceFile = "file"
	ImageSourceURL  = "url"
)

type CompetitionModel struct {
	ID          uuid.UUID      `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title       string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string         `gorm:"column:description;type:text;not null" json:"description"`
	Category    string         `gorm:"column:category;type:varchar(16);not null" json:"category"`
	Location    *string        `gorm:"column:location;type:varchar(255)" json:"location,omitempty"`
	Deadline    datatypes.Date `gorm:"column:deadline;type:date;not null" json:"deadline"`
	Link        string         `gorm:"column:link;type:text" json:"link"`
	IsPriority  bool           `gorm:"column:is_priority;not null;default:false" json:"is_priority"`

	// Gambar utama selalu ada; image_path NULL berarti sumbernya URL
	// eksternal (tidak ada object di storage yang perlu dihapus).
	ImageURL    string  `gorm:"column:image_url;type:text;not null;default:''" json:"image_url"`
	ImagePath   *string `gorm:"column:image_path;type:text" json:"image_path,omitempty"`
	ImageSource string  `gorm:"column:image_source;type:varchar(8);not null;default:url" json:"image_source"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Types []typeModel.CompetitionTypeModel `gorm:"many2many:competition_type_pivot;foreignKey:ID;joinForeignKey:CompetitionID;references:ID;joinReferences:TypeID" json:"bidang"`
	Images []CompetitionImageModel         `gorm:"foreignKey:CompetitionID;references:ID" json:"additional_images"`
}

func (CompetitionModel) TableName() string {
	return "competitions"
}

// DeadlineTime mengembalikan deadline sebagai time.Time biasa.
func (m CompetitionModel) DeadlineTime() time.Time {
	return time.Time(m.Deadline)
}

// StoragePaths mengumpulkan semua object path di storage milik lomba ini
// (poster utama + seluruh gambar galeri yang bersumber upload).
func (m CompetitionModel) StoragePaths() []string {
	var paths []string
	if m.ImagePath != nil && *m.ImagePath != "" {
		paths = append(paths, *m.ImagePath)
	}
	for _, img := range m.Images {
		if img.Path != nil && *img.Path != "" {
			paths = append(paths, *img.Path)
		}
	}
	return paths
}

// CompetitionTypePivot adalah join table lomba ↔ bidang.
type CompetitionTypePivot struct {
	CompetitionID uuid.UUID `gorm:"column:competition_id;primaryKey;type:uuid" json:"competition_id"`
	TypeID        uuid.UUID `gorm:"column:type_id;primaryKey;type:uuid" json:"type_id"`
}

func (CompetitionTypePivot) TableName() string {
	return "competition_type_pivot"
}
