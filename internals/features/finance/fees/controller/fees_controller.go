// file: internals/features/finance/fees/controller/fees_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shuttleku_backend/internals/features/finance/fees/dto"
	"shuttleku_backend/internals/features/finance/fees/service"
	paymodel "shuttleku_backend/internals/features/finance/payments/model"
	helper "shuttleku_backend/internals/helpers"
)

type FeesHandler struct {
	DB      *gorm.DB
	Service *service.FeeService
}

func NewFeesHandler(db *gorm.DB, rdb *redis.Client) *FeesHandler {
	return &FeesHandler{
		DB:      db,
		Service: service.NewFeeService(db, rdb),
	}
}

// -----------------------------------------
// Calculate (POST /fees/calculate) — read-only breakdown
// -----------------------------------------
func (h *FeesHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateSessionFeeRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	breakdown, err := h.Service.Calculate(c.UserContext(), in.MemberID, in.SessionDate, in.ShuttlecocksUsed)
	if err != nil {
		return feeServiceError(c, err)
	}
	return helper.JsonOK(c, "fee breakdown", breakdown)
}

// -----------------------------------------
// Charge (POST /fees/charge) — writer path for one participant
// -----------------------------------------
func (h *FeesHandler) Charge(c *fiber.Ctx) error {
	var in dto.ChargeParticipantRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	res, err := h.Service.ChargeParticipant(c.UserContext(), in.MemberID, in.SessionDate, in.ShuttlecocksUsed, in.MatchID)
	if err != nil {
		return feeServiceError(c, err)
	}
	return helper.JsonCreated(c, "participant charged", res)
}

// -----------------------------------------
// Bill membership (POST /fees/membership/bill)
// -----------------------------------------
func (h *FeesHandler) BillMembership(c *fiber.Ctx) error {
	var in dto.BillMembershipRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	row, err := h.Service.BillMembershipMonth(c.UserContext(), in.MemberID, in.Year, time.Month(in.Month))
	if err != nil {
		if errors.Is(err, service.ErrMembershipAlreadyBilled) {
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
		return feeServiceError(c, err)
	}
	return helper.JsonCreated(c, "membership billed", row)
}

// -----------------------------------------
// Resolve duplicates (POST /fees/duplicates/resolve)
// -----------------------------------------
func (h *FeesHandler) ResolveDuplicates(c *fiber.Ctx) error {
	var in dto.ResolveDuplicatesRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	report, err := h.Service.ResolveForMember(c.UserContext(), in.MemberID, in.ReferenceDate)
	if err != nil {
		return feeServiceError(c, err)
	}
	return helper.JsonOK(c, "duplicates resolved", report)
}

// -----------------------------------------
// System-wide cleanup (POST /fees/duplicates/cleanup?dry_run=true)
// -----------------------------------------
func (h *FeesHandler) SystemWideCleanup(c *fiber.Ctx) error {
	dryRun := strings.EqualFold(c.Query("dry_run"), "true")

	report, err := h.Service.SystemWideCleanup(c.UserContext(), dryRun)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	msg := "cleanup finished"
	if dryRun {
		msg = "cleanup dry run finished"
	}
	return helper.JsonOK(c, msg, report)
}

// -----------------------------------------
// Pre-check (GET /fees/duplicates/precheck?member_id=&category=&due_date=)
// -----------------------------------------
func (h *FeesHandler) Precheck(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Query("member_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid member_id")
	}
	category := c.Query("category")
	if category != paymodel.PaymentCategorySession && category != paymodel.PaymentCategoryMembership {
		return helper.JsonError(c, fiber.StatusBadRequest, "category must be session or membership")
	}
	dueDate, err := time.Parse("2006-01-02", c.Query("due_date"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid due_date (want YYYY-MM-DD)")
	}

	dup, err := h.Service.WouldCreateDuplicate(c.UserContext(), memberID, category, dueDate)
	if err != nil {
		return feeServiceError(c, err)
	}
	return helper.JsonOK(c, "precheck", fiber.Map{
		"member_id":              memberID,
		"category":               category,
		"due_date":               dueDate.Format("2006-01-02"),
		"would_create_duplicate": dup,
	})
}

// feeServiceError maps engine errors onto the response envelope:
// validation failures 400, everything else 500.
func feeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidMemberID),
		errors.Is(err, service.ErrNegativeShuttlecocks),
		errors.Is(err, service.ErrInvalidMonth):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}
