package seeds

import (
	"log"

	"gorm.io/gorm"

	typeModel "lombain_backend/internals/features/competitions/types/model"
)

// Bidang bawaan; admin bisa menambah/mengubah lewat panel.
var defaultTypeNames = []string{
	"Akademik",
	"Teknologi",
	"Desain",
	"Bisnis",
	"Olahraga",
	"Seni",
	"Fotografi",
	"Penulisan",
}

func SeedCompetitionTypes(db *gorm.DB) {
	var existing []typeModel.CompetitionTypeModel
	if err := db.Find(&existing).Error; err != nil {
		log.Printf("❌ Gagal mengambil bidang yang sudah ada: %v", err)
		return
	}

	existingMap := make(map[string]bool, len(existing))
	for _, t := range existing {
		existingMap[t.Name] = true
	}

	var newTypes []typeModel.CompetitionTypeModel
	for _, name := range defaultTypeNames {
		if existingMap[name] {
			log.Printf("ℹ️ Bidang '%s' sudah ada, dilewati.", name)
			continue
		}
		newTypes = append(newTypes, typeModel.CompetitionTypeModel{Name: name})
	}

	if len(newTypes) == 0 {
		return
	}
	if err := db.Create(&newTypes).Error; err != nil {
		log.Printf("❌ Gagal seed bidang: %v", err)
		return
	}
	log.Printf("✅ %d bidang baru berhasil di-seed", len(newTypes))
}
