// file: internals/features/matches/controller/match_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shuttleku_backend/internals/features/finance/fees/calendar"
	feesvc "shuttleku_backend/internals/features/finance/fees/service"
	"shuttleku_backend/internals/features/matches/dto"
	matchmodel "shuttleku_backend/internals/features/matches/model"
	membermodel "shuttleku_backend/internals/features/members/model"
	helper "shuttleku_backend/internals/helpers"
)

type MatchHandler struct {
	DB   *gorm.DB
	Fees *feesvc.FeeService
}

func NewMatchHandler(db *gorm.DB, rdb *redis.Client) *MatchHandler {
	return &MatchHandler{
		DB:   db,
		Fees: feesvc.NewFeeService(db, rdb),
	}
}

// -----------------------------------------
// List (GET /matches)
// Query filters: date_from, date_to (YYYY-MM-DD), page/per_page
// -----------------------------------------
func (h *MatchHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&matchmodel.Match{})

	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("match_date >= ?", t)
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("match_date < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order := "match_created_at DESC"
	if strings.ToLower(p.SortOrder) == "asc" {
		order = "match_created_at ASC"
	}

	var list []matchmodel.Match
	if err := q.
		Preload("MatchParticipants").
		Order(order).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "matches", dto.ToMatchResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Detail (GET /matches/:id)
// -----------------------------------------
func (h *MatchHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m matchmodel.Match
	if err := h.DB.Preload("MatchParticipants").First(&m, "match_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "match not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "match", dto.ToMatchResponse(m))
}

// -----------------------------------------
// NextSession (GET /matches/next-session)
// -----------------------------------------
func (h *MatchHandler) NextSession(c *fiber.Ctx) error {
	next := calendar.NextSessionDate(time.Now())
	return helper.JsonOK(c, "next session", fiber.Map{
		"next_session_date": next,
		"weeks_in_month":    calendar.WeeksInMonth(next.Year(), next.Month()),
	})
}

// -----------------------------------------
// Create (POST /matches)
// Persists the match + participants, then charges every confirmed
// participant through the fee engine. A billing failure for one member is
// reported in the response and does not void the match or the other
// participants' charges.
// -----------------------------------------
func (h *MatchHandler) Create(c *fiber.Ctx) error {
	var in dto.MatchCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	matchDate := calendar.NextSessionDate(time.Now())
	if in.MatchDate != nil {
		matchDate = *in.MatchDate
	}

	// All participants must be existing, non-deleted members.
	var count int64
	if err := h.DB.Model(&membermodel.Member{}).
		Where("member_id IN ?", in.ParticipantMemberIDs).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if int(count) != len(uniqueIDs(in.ParticipantMemberIDs)) {
		return helper.JsonError(c, fiber.StatusBadRequest, "one or more participants are not registered members")
	}

	m := matchmodel.Match{
		MatchDate:             matchDate,
		MatchShuttlecocksUsed: in.MatchShuttlecocksUsed,
		MatchNotes:            in.MatchNotes,
	}
	for _, memberID := range uniqueIDs(in.ParticipantMemberIDs) {
		m.MatchParticipants = append(m.MatchParticipants, matchmodel.MatchParticipant{
			MatchParticipantMemberID: memberID,
		})
	}

	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Automatic billing trigger: one charge per participant.
	outcomes := make([]dto.ChargeOutcome, 0, len(m.MatchParticipants))
	for _, part := range m.MatchParticipants {
		res, err := h.Fees.ChargeParticipant(c.UserContext(), part.MatchParticipantMemberID, matchDate, in.MatchShuttlecocksUsed, &m.MatchID)
		if err != nil {
			log.Printf("[ERROR] charge participant member=%s match=%s: %v", part.MatchParticipantMemberID, m.MatchID, err)
			msg := err.Error()
			outcomes = append(outcomes, dto.ChargeOutcome{MemberID: part.MatchParticipantMemberID, Error: &msg})
			continue
		}
		r := res
		outcomes = append(outcomes, dto.ChargeOutcome{MemberID: part.MatchParticipantMemberID, Result: &r})
	}

	return helper.JsonCreated(c, "match created", dto.MatchCreateResponse{
		Match:   dto.ToMatchResponse(m),
		Charges: outcomes,
	})
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
