package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	matchapi "shuttleku_backend/internals/features/matches/controller"
)

func MatchesAdminRoutes(admin fiber.Router, db *gorm.DB, rdb *redis.Client) {
	h := matchapi.NewMatchHandler(db, rdb)

	grp := admin.Group("/matches")
	{
		grp.Get("/next-session", h.NextSession)
		grp.Get("/", h.List)
		grp.Get("/:id", h.Get)
		grp.Post("/", h.Create)
	}
}
