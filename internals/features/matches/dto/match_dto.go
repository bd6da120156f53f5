// file: internals/features/matches/dto/match_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	matchmodel "shuttleku_backend/internals/features/matches/model"
	feesvc "shuttleku_backend/internals/features/finance/fees/service"
)

// Create — match_date defaults to the next Saturday session when omitted.
type MatchCreateDTO struct {
	MatchDate             *time.Time  `json:"match_date,omitempty"`
	MatchShuttlecocksUsed int         `json:"match_shuttlecocks_used" validate:"min=0"`
	MatchNotes            *string     `json:"match_notes,omitempty"`
	ParticipantMemberIDs  []uuid.UUID `json:"participant_member_ids" validate:"required,min=1,dive,required"`
}

type MatchResponse struct {
	MatchID               uuid.UUID   `json:"match_id"`
	MatchDate             time.Time   `json:"match_date"`
	MatchShuttlecocksUsed int         `json:"match_shuttlecocks_used"`
	MatchNotes            *string     `json:"match_notes,omitempty"`
	ParticipantMemberIDs  []uuid.UUID `json:"participant_member_ids"`

	MatchCreatedAt time.Time  `json:"match_created_at"`
	MatchUpdatedAt time.Time  `json:"match_updated_at"`
	MatchDeletedAt *time.Time `json:"match_deleted_at,omitempty"`
}

// ChargeOutcome reports how billing went for one confirmed participant.
type ChargeOutcome struct {
	MemberID uuid.UUID            `json:"member_id"`
	Result   *feesvc.ChargeResult `json:"result,omitempty"`
	Error    *string              `json:"error,omitempty"`
}

type MatchCreateResponse struct {
	Match   MatchResponse   `json:"match"`
	Charges []ChargeOutcome `json:"charges"`
}

func ToMatchResponse(m matchmodel.Match) MatchResponse {
	ids := make([]uuid.UUID, 0, len(m.MatchParticipants))
	for _, p := range m.MatchParticipants {
		ids = append(ids, p.MatchParticipantMemberID)
	}
	return MatchResponse{
		MatchID:               m.MatchID,
		MatchDate:             m.MatchDate,
		MatchShuttlecocksUsed: m.MatchShuttlecocksUsed,
		MatchNotes:            m.MatchNotes,
		ParticipantMemberIDs:  ids,
		MatchCreatedAt:        m.CreatedAt,
		MatchUpdatedAt:        m.UpdatedAt,
		MatchDeletedAt:        toPtrTimeFromDeletedAt(m.DeletedAt),
	}
}

func ToMatchResponses(list []matchmodel.Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToMatchResponse(v))
	}
	return out
}

func toPtrTimeFromDeletedAt(d gorm.DeletedAt) *time.Time {
	if d.Valid {
		return &d.Time
	}
	return nil
}
