// file: internals/features/members/controller/member_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"shuttleku_backend/internals/features/members/dto"
	membermodel "shuttleku_backend/internals/features/members/model"
	helper "shuttleku_backend/internals/helpers"
)

type MemberHandler struct {
	DB *gorm.DB
}

func buildOrderClause(p helper.Params) string {
	allowed := map[string]string{
		"created_at": "member_created_at",
		"updated_at": "member_updated_at",
		"name":       "member_name",
		"joined_at":  "member_joined_at",
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
// List (GET /members)
// Query filters: q (name search), active (true|false), page/per_page/sort
// -----------------------------------------
func (h *MemberHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&membermodel.Member{})

	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("member_name ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("active"); v != "" {
		if strings.EqualFold(v, "true") {
			q = q.Where("member_is_active = TRUE")
		} else if strings.EqualFold(v, "false") {
			q = q.Where("member_is_active = FALSE")
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []membermodel.Member
	if err := q.
		Order(buildOrderClause(p)).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "members", dto.ToMemberResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Detail (GET /members/:id)
// -----------------------------------------
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m membermodel.Member
	if err := h.DB.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "member", dto.ToMemberResponse(m))
}

// -----------------------------------------
// Create (POST /members)
// -----------------------------------------
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var in dto.MemberCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	m := dto.MemberCreateDTOToModel(in)
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "created", dto.ToMemberResponse(m))
}

// -----------------------------------------
// Update (PATCH /members/:id)
// -----------------------------------------
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.MemberUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	var m membermodel.Member
	if err := h.DB.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	dto.ApplyMemberUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "updated", dto.ToMemberResponse(m))
}

// -----------------------------------------
// Delete (DELETE /members/:id) — soft delete
// -----------------------------------------
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m membermodel.Member
	if err := h.DB.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "deleted", dto.ToMemberResponse(m))
}
