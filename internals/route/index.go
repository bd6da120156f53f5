// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shuttleku_backend/internals/configs"
	feesroute "shuttleku_backend/internals/features/finance/fees/route"
	paymentsroute "shuttleku_backend/internals/features/finance/payments/route"
	matchesroute "shuttleku_backend/internals/features/matches/route"
	membersroute "shuttleku_backend/internals/features/members/route"
	usersroute "shuttleku_backend/internals/features/users/route"
	"shuttleku_backend/internals/middlewares/auth"
)

// SetupRoutes mounts every feature under /api. Mutating surfaces sit behind
// the auth middleware and require the admin role.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	rdb := newRedisClient()

	api := app.Group("/api")

	usersroute.AuthRoutes(api, db)

	admin := api.Group("/a", auth.AuthMiddleware(), auth.AdminOnly())
	{
		membersroute.MembersAdminRoutes(admin, db)
		matchesroute.MatchesAdminRoutes(admin, db, rdb)
		paymentsroute.PaymentsAdminRoutes(admin, db)
		feesroute.FeesAdminRoutes(admin, db, rdb)
	}
}

// newRedisClient returns nil when REDIS_ADDR is unset. The fee engine treats
// a nil client as "no duplicate guard" and stays correct without it.
func newRedisClient() *redis.Client {
	addr := configs.GetEnv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, duplicate guard disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: configs.GetEnv("REDIS_PASSWORD"),
	})
}
