package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	memberapi "shuttleku_backend/internals/features/members/controller"
)

func MembersAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &memberapi.MemberHandler{DB: db}

	grp := admin.Group("/members")
	{
		grp.Get("/", h.List)
		grp.Get("/:id", h.Get)
		grp.Post("/", h.Create)
		grp.Patch("/:id", h.Update)
		grp.Delete("/:id", h.Delete)
	}
}
