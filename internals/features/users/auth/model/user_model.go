package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel = akun admin pengelola konten. Tidak ada registrasi
// publik; akun dibuat lewat seeder atau manual di database.
type UserModel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email    string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Password *string   `gorm:"column:password;type:varchar(255)" json:"-"` // null untuk akun Google-only
	GoogleID *string   `gorm:"column:google_id;type:varchar(64);uniqueIndex" json:"-"`
	IsActive bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
