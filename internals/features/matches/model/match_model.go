package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Match struct {
	MatchID uuid.UUID `gorm:"column:match_id;type:uuid;default:gen_random_uuid();primaryKey" json:"match_id"`

	// Session timestamp (Saturdays 20:00 local).
	MatchDate time.Time `gorm:"column:match_date;type:timestamptz;not null;index" json:"match_date"`

	MatchShuttlecocksUsed int `gorm:"column:match_shuttlecocks_used;not null;default:0;check:match_shuttlecocks_used >= 0" json:"match_shuttlecocks_used"`

	MatchNotes *string           `gorm:"column:match_notes;type:text" json:"match_notes,omitempty"`
	MatchMeta  datatypes.JSONMap `gorm:"column:match_meta;type:jsonb" json:"match_meta,omitempty"`

	CreatedAt time.Time      `gorm:"column:match_created_at;type:timestamptz;not null;autoCreateTime" json:"match_created_at"`
	UpdatedAt time.Time      `gorm:"column:match_updated_at;type:timestamptz;not null;autoUpdateTime" json:"match_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:match_deleted_at;type:timestamptz;index" json:"match_deleted_at,omitempty"`

	MatchParticipants []MatchParticipant `gorm:"foreignKey:MatchParticipantMatchID;references:MatchID" json:"match_participants,omitempty"`
}

func (Match) TableName() string { return "matches" }

type MatchParticipant struct {
	MatchParticipantID uuid.UUID `gorm:"column:match_participant_id;type:uuid;default:gen_random_uuid();primaryKey" json:"match_participant_id"`

	MatchParticipantMatchID  uuid.UUID `gorm:"column:match_participant_match_id;type:uuid;not null;uniqueIndex:ux_match_participant,priority:1" json:"match_participant_match_id"`
	MatchParticipantMemberID uuid.UUID `gorm:"column:match_participant_member_id;type:uuid;not null;uniqueIndex:ux_match_participant,priority:2" json:"match_participant_member_id"`

	CreatedAt time.Time `gorm:"column:match_participant_created_at;type:timestamptz;not null;autoCreateTime" json:"match_participant_created_at"`
}

func (MatchParticipant) TableName() string { return "match_participants" }
