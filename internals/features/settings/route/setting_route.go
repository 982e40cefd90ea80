package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lombain_backend/internals/features/settings/controller"
)

func SettingUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSettingController(db)
	api.Get("/settings/:key", ctrl.GetByKey) // 🔍 Satu setting by key
}

func SettingAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSettingController(db)

	settings := api.Group("/settings")
	settings.Get("/", ctrl.List)        // 📄 Semua setting
	settings.Put("/:key", ctrl.Upsert)  // 🔄 Simpan (insert/update)
}
