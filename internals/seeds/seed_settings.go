package seeds

import (
	"log"

	"gorm.io/gorm"

	settingModel "lombain_backend/internals/features/settings/model"
)

var defaultSettings = map[string]string{
	"site_title":       "Lomba-In",
	"site_tagline":     "Temukan lomba terbaikmu",
	"hero_title":       "Jelajahi Lomba & Kompetisi",
	"hero_subtitle":    "Informasi lomba internal dan eksternal dalam satu tempat",
	"contact_email":    "halo@lomba-in.id",
	"instagram_url":    "https://instagram.com/lombain.id",
	"footer_text":      "© Lomba-In. Semua hak dilindungi.",
	"max_gallery_size": "4",
}

func SeedSettings(db *gorm.DB) {
	for key, value := range defaultSettings {
		var count int64
		if err := db.Model(&settingModel.SettingModel{}).
			Where("setting_key = ?", key).
			Count(&count).Error; err != nil {
			log.Printf("❌ Gagal cek setting '%s': %v", key, err)
			continue
		}
		if count > 0 {
			log.Printf("ℹ️ Setting '%s' sudah ada, dilewati.", key)
			continue
		}

		if err := db.Create(&settingModel.SettingModel{
			SettingKey:   key,
			SettingValue: value,
		}).Error; err != nil {
			log.Printf("❌ Gagal seed setting '%s': %v", key, err)
			continue
		}
		log.Printf("✅ Setting '%s' berhasil di-seed", key)
	}
}
