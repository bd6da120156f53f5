package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userapi "shuttleku_backend/internals/features/users/controller"
	"shuttleku_backend/internals/middlewares"
	"shuttleku_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the public login/refresh endpoints plus the
// authenticated profile and admin-only registration endpoints.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	h := userapi.NewAuthHandler(db)

	grp := api.Group("/auth")
	{
		grp.Post("/login", middlewares.LoginRateLimiter(), h.Login)
		grp.Post("/refresh", h.Refresh)
		grp.Get("/me", auth.AuthMiddleware(), h.Me)
		grp.Post("/register", auth.AuthMiddleware(), auth.AdminOnly(), h.Register)
	}
}
