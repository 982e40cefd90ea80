package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lombain_backend/internals/configs"
	"lombain_backend/internals/features/users/auth/controller"
	"lombain_backend/internals/middlewares"
	authMiddleware "lombain_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)              // 🔐 Email + password
	auth.Post("/login-google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle) // 🔐 Google ID token (whitelist)
	auth.Post("/logout", ctrl.Logout)                                            // 🚪 Hapus cookie sesi

	auth.Get("/me",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		ctrl.Me,
	)
}
