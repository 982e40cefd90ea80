package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lombain_backend/internals/features/competitions/competitions/controller"
	"lombain_backend/internals/features/competitions/competitions/service"
	"lombain_backend/internals/helpers/storage"
)

// newCompetitionService merakit service dari DB + Supabase Storage.
// Kalau storage belum dikonfigurasi, server tetap jalan tapi upload
// file akan gagal (URL eksternal tetap bisa).
func newCompetitionService(db *gorm.DB) *service.CompetitionService {
	store, err := storage.NewSupabaseStorageFromEnv()
	if err != nil {
		log.Printf("[WARN] Supabase Storage tidak siap: %v", err)
	}
	return service.NewCompetitionService(service.NewGormCompetitionRepository(db), store)
}

func CompetitionAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCompetitionAdminController(newCompetitionService(db))

	competition := api.Group("/competitions")
	competition.Get("/", ctrl.List)         // 📄 Semua lomba (tanpa filter visibility)
	competition.Get("/:id", ctrl.GetByID)   // 🔍 Detail lomba
	competition.Post("/", ctrl.Create)      // ➕ Buat lomba (multipart)
	competition.Put("/:id", ctrl.Update)    // 🔄 Perbarui lomba
	competition.Delete("/:id", ctrl.Delete) // 🗑️ Hapus lomba + object storage

	api.Get("/dashboard", ctrl.Dashboard) // 📊 Ringkasan status
}
