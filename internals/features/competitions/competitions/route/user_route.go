package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lombain_backend/internals/features/competitions/competitions/controller"
)

func CompetitionUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCompetitionUserController(newCompetitionService(db))

	competition := api.Group("/competitions")
	competition.Get("/", ctrl.List)              // 📄 Lomba yang masih visible (+ filter & pagination)
	competition.Get("/featured", ctrl.Featured)  // ⭐ Lomba prioritas
	competition.Get("/:id", ctrl.GetByID)        // 🔍 Detail lomba
}
