// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"shuttleku_backend/internals/features/finance/payments/dto"
	paymodel "shuttleku_backend/internals/features/finance/payments/model"
	helper "shuttleku_backend/internals/helpers"
)

type PaymentHandler struct {
	DB *gorm.DB
}

func buildOrderClause(p helper.Params) string {
	// whitelist of sortable keys → physical columns
	allowed := map[string]string{
		"created_at": "payment_created_at",
		"updated_at": "payment_updated_at",
		"amount":     "payment_amount_idr",
		"status":     "payment_status",
		"due_date":   "payment_due_date",
	}
	col, ok := allowed[strings.ToLower(p.SortBy)]
	if !ok {
		col = allowed["created_at"]
	}
	dir := "DESC"
	if strings.ToLower(p.SortOrder) == "asc" {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s", col, dir)
}

// -----------------------------------------
// List (GET /payments)
// Query filters (optional):
// - member_id, match_id
// - category (session|membership|shuttlecock|other), status
// - due_from, due_to (YYYY-MM-DD)
// - sort_by (created_at|updated_at|amount|status|due_date), order (asc|desc)
// - page, per_page
// -----------------------------------------
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&paymodel.Payment{})

	if v := c.Query("member_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("payment_member_id = ?", id)
		}
	}
	if v := c.Query("match_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("payment_match_id = ?", id)
		}
	}
	if v := c.Query("category"); v != "" {
		q = q.Where("payment_category = ?", strings.ToLower(v))
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("payment_status = ?", v)
	}
	if v := c.Query("due_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("payment_due_date >= ?", t)
		}
	}
	if v := c.Query("due_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("payment_due_date <= ?", t)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []paymodel.Payment
	if err := q.
		Order(buildOrderClause(p)).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.ToPaymentResponses(list)
	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "payments", resp, meta)
}

// -----------------------------------------
// Detail (GET /payments/:id)
// -----------------------------------------
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m paymodel.Payment
	if err := h.DB.First(&m, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "payment", dto.ToPaymentResponse(m))
}

// -----------------------------------------
// Create (POST /payments) — manual admin entry
// -----------------------------------------
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.PaymentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	m := dto.PaymentCreateDTOToModel(in)
	if err := h.DB.Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "a payment for this member/category/due date already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "created", dto.ToPaymentResponse(m))
}

// -----------------------------------------
// Update (PATCH /payments/:id) — never a status change, and correction is
// always delete-then-recreate or an explicit status transition, so rows
// are never silently overwritten with a different category/member.
// -----------------------------------------
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.PaymentUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	var m paymodel.Payment
	if err := h.DB.First(&m, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	dto.ApplyPaymentUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "updated", dto.ToPaymentResponse(m))
}

// -----------------------------------------
// Settlement transitions. Deletion is NOT exposed here: only the
// duplicate resolver removes payment rows.
// -----------------------------------------

// MarkPaid (POST /payments/:id/mark-paid)
func (h *PaymentHandler) MarkPaid(c *fiber.Ctx) error {
	return h.markStatus(c, paymodel.PaymentStatusPaid, "marked as paid")
}

// MarkPending (POST /payments/:id/mark-pending)
func (h *PaymentHandler) MarkPending(c *fiber.Ctx) error {
	return h.markStatus(c, paymodel.PaymentStatusPending, "marked as pending")
}

// MarkOverdue (POST /payments/:id/mark-overdue)
func (h *PaymentHandler) MarkOverdue(c *fiber.Ctx) error {
	return h.markStatus(c, paymodel.PaymentStatusOverdue, "marked as overdue")
}

// MarkPartial (POST /payments/:id/mark-partial)
func (h *PaymentHandler) MarkPartial(c *fiber.Ctx) error {
	return h.markStatus(c, paymodel.PaymentStatusPartial, "marked as partial")
}

func (h *PaymentHandler) markStatus(c *fiber.Ctx, status, message string) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	// body is optional for status transitions
	var in dto.PaymentMarkStatusDTO
	_ = c.BodyParser(&in)

	var m paymodel.Payment
	if err := h.DB.First(&m, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	m.PaymentStatus = status
	if in.Note != nil {
		m.PaymentNotes = in.Note
	}
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, message, dto.ToPaymentResponse(m))
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}
