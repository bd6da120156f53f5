package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	payapi "shuttleku_backend/internals/features/finance/payments/controller"
)

/*
Admin routes (ledger CRUD & settlement actions).
No DELETE here: only the duplicate resolver removes payment rows.
*/
func PaymentsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &payapi.PaymentHandler{DB: db}

	grp := admin.Group("/payments")
	{
		grp.Get("/", h.List)
		grp.Get("/:id", h.Get)
		grp.Post("/", h.Create)
		grp.Patch("/:id", h.Update)

		grp.Post("/:id/mark-paid", h.MarkPaid)
		grp.Post("/:id/mark-pending", h.MarkPending)
		grp.Post("/:id/mark-overdue", h.MarkOverdue)
		grp.Post("/:id/mark-partial", h.MarkPartial)
	}
}
