package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	MemberID uuid.UUID `gorm:"column:member_id;type:uuid;default:gen_random_uuid();primaryKey" json:"member_id"`

	MemberName  string  `gorm:"column:member_name;type:varchar(120);not null" json:"member_name"`
	MemberPhone *string `gorm:"column:member_phone;type:varchar(30)" json:"member_phone,omitempty"`

	MemberIsActive bool       `gorm:"column:member_is_active;not null;default:true;index" json:"member_is_active"`
	MemberJoinedAt *time.Time `gorm:"column:member_joined_at;type:date" json:"member_joined_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:member_created_at;type:timestamptz;not null;autoCreateTime" json:"member_created_at"`
	UpdatedAt time.Time      `gorm:"column:member_updated_at;type:timestamptz;not null;autoUpdateTime" json:"member_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:member_deleted_at;type:timestamptz;index" json:"member_deleted_at,omitempty"`
}

func (Member) TableName() string { return "members" }
