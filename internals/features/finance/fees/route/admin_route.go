package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	feesapi "shuttleku_backend/internals/features/finance/fees/controller"
	middlewares "shuttleku_backend/internals/middlewares"
)

/*
Admin routes for the fee engine. The caller already wrapped the group in
auth; the cleanup sweep gets its own tighter limiter.
*/
func FeesAdminRoutes(admin fiber.Router, db *gorm.DB, rdb *redis.Client) {
	h := feesapi.NewFeesHandler(db, rdb)

	grp := admin.Group("/fees")
	{
		grp.Post("/calculate", h.Calculate)
		grp.Post("/charge", h.Charge)
		grp.Post("/membership/bill", h.BillMembership)

		grp.Get("/duplicates/precheck", h.Precheck)
		grp.Post("/duplicates/resolve", h.ResolveDuplicates)
		grp.Post("/duplicates/cleanup", middlewares.CleanupRateLimiter(), h.SystemWideCleanup)
	}
}
