// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lombain_backend/internals/configs"
	competitionRoutes "lombain_backend/internals/features/competitions/competitions/route"
	typeRoutes "lombain_backend/internals/features/competitions/types/route"
	settingRoutes "lombain_backend/internals/features/settings/route"
	authRoutes "lombain_backend/internals/features/users/auth/route"
	authMiddleware "lombain_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoutes.AuthRoutes(app, db)

	// ===================== PUBLIC =====================
	// Tanpa token: listing lomba, bidang, setting situs
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	competitionRoutes.CompetitionUserRoutes(public, db)
	typeRoutes.TypeUserRoutes(public, db)
	settingRoutes.SettingUserRoutes(public, db)

	// ===================== ADMIN =====================
	// Semua mutasi konten di belakang JWT
	log.Println("[INFO] Setting up ADMIN group (AuthJWT)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)
	competitionRoutes.CompetitionAdminRoutes(admin, db)
	typeRoutes.TypeAdminRoutes(admin, db)
	settingRoutes.SettingAdminRoutes(admin, db)
}
