package model

import "time"

// SettingModel menyimpan konfigurasi situs key-value
// (judul hero, kontak, link sosial media, dsb).
type SettingModel struct {
	SettingKey   string    `gorm:"column:setting_key;primaryKey;type:varchar(100)" json:"setting_key"`
	SettingValue string    `gorm:"column:setting_value;type:text;not null" json:"setting_value"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SettingModel) TableName() string {
	return "settings"
}
