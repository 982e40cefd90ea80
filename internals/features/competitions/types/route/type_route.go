package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lombain_backend/internals/features/competitions/competitions/service"
	"lombain_backend/internals/features/competitions/types/controller"
)

func newTypeController(db *gorm.DB) *controller.CompetitionTypeController {
	// manajemen bidang tidak menyentuh storage
	svc := service.NewCompetitionService(service.NewGormCompetitionRepository(db), nil)
	return controller.NewCompetitionTypeController(svc)
}

func TypeUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := newTypeController(db)
	api.Get("/types", ctrl.List) // 📄 Daftar bidang untuk filter
}

func TypeAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := newTypeController(db)

	types := api.Group("/types")
	types.Post("/", ctrl.Create)      // ➕ Tambah bidang
	types.Put("/:id", ctrl.Update)    // 🔄 Ganti nama bidang
	types.Delete("/:id", ctrl.Delete) // 🗑️ Hapus bidang (ditolak kalau masih dipakai)
}
