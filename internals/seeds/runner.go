package seeds

import (
	"log"

	"gorm.io/gorm"
)

// RunAllSeeds mengisi data awal: bidang lomba, setting situs,
// dan satu akun admin. Semua seeder idempotent (skip kalau sudah ada).
func RunAllSeeds(db *gorm.DB) {
	log.Println("🌱 Menjalankan seeder...")

	SeedCompetitionTypes(db)
	SeedSettings(db)
	SeedAdminUser(db)

	log.Println("✅ Seeder selesai")
}
