// file: internals/features/members/dto/member_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	membermodel "shuttleku_backend/internals/features/members/model"
)

type MemberCreateDTO struct {
	MemberName     string     `json:"member_name" validate:"required,min=2,max=120"`
	MemberPhone    *string    `json:"member_phone,omitempty" validate:"omitempty,max=30"`
	MemberJoinedAt *time.Time `json:"member_joined_at,omitempty"`
}

type MemberUpdateDTO struct {
	MemberName     *string    `json:"member_name,omitempty" validate:"omitempty,min=2,max=120"`
	MemberPhone    *string    `json:"member_phone,omitempty" validate:"omitempty,max=30"`
	MemberIsActive *bool      `json:"member_is_active,omitempty"`
	MemberJoinedAt *time.Time `json:"member_joined_at,omitempty"`
}

type MemberResponse struct {
	MemberID       uuid.UUID  `json:"member_id"`
	MemberName     string     `json:"member_name"`
	MemberPhone    *string    `json:"member_phone,omitempty"`
	MemberIsActive bool       `json:"member_is_active"`
	MemberJoinedAt *time.Time `json:"member_joined_at,omitempty"`

	MemberCreatedAt time.Time  `json:"member_created_at"`
	MemberUpdatedAt time.Time  `json:"member_updated_at"`
	MemberDeletedAt *time.Time `json:"member_deleted_at,omitempty"`
}

func ToMemberResponse(m membermodel.Member) MemberResponse {
	return MemberResponse{
		MemberID:        m.MemberID,
		MemberName:      m.MemberName,
		MemberPhone:     m.MemberPhone,
		MemberIsActive:  m.MemberIsActive,
		MemberJoinedAt:  m.MemberJoinedAt,
		MemberCreatedAt: m.CreatedAt,
		MemberUpdatedAt: m.UpdatedAt,
		MemberDeletedAt: toPtrTimeFromDeletedAt(m.DeletedAt),
	}
}

func ToMemberResponses(list []membermodel.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToMemberResponse(v))
	}
	return out
}

func MemberCreateDTOToModel(d MemberCreateDTO) membermodel.Member {
	return membermodel.Member{
		MemberName:     d.MemberName,
		MemberPhone:    d.MemberPhone,
		MemberIsActive: true,
		MemberJoinedAt: d.MemberJoinedAt,
	}
}

func ApplyMemberUpdate(m *membermodel.Member, d MemberUpdateDTO) {
	if d.MemberName != nil {
		m.MemberName = *d.MemberName
	}
	if d.MemberPhone != nil {
		m.MemberPhone = d.MemberPhone
	}
	if d.MemberIsActive != nil {
		m.MemberIsActive = *d.MemberIsActive
	}
	if d.MemberJoinedAt != nil {
		m.MemberJoinedAt = d.MemberJoinedAt
	}
}

func toPtrTimeFromDeletedAt(d gorm.DeletedAt) *time.Time {
	if d.Valid {
		return &d.Time
	}
	return nil
}
