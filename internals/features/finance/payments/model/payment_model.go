package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */
/* Aligned with the PostgreSQL ENUMs:
   payment_category, payment_status
*/

const (
	PaymentCategorySession     = "session"
	PaymentCategoryMembership  = "membership"
	PaymentCategoryShuttlecock = "shuttlecock"
	PaymentCategoryOther       = "other"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
	PaymentStatusPartial = "partial"
)

/* ===================== Model ===================== */

type Payment struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentMemberID uuid.UUID `gorm:"column:payment_member_id;type:uuid;not null;index:idx_payments_member_due,priority:1" json:"payment_member_id"`

	// payment_category is the authoritative classifier, set once at creation.
	// payment_notes is free text only; legacy rows imported with category
	// 'other' may still be classified by their notes (see fees service).
	PaymentCategory string `gorm:"column:payment_category;type:payment_category;not null;default:'other'" json:"payment_category"`

	PaymentAmountIDR int    `gorm:"column:payment_amount_idr;not null;check:payment_amount_idr >= 0" json:"payment_amount_idr"`
	PaymentStatus    string `gorm:"column:payment_status;type:payment_status;not null;default:'pending'" json:"payment_status"`

	// Session/shuttlecock fees: the session date.
	// Membership fees: first day of the billing month.
	PaymentDueDate time.Time `gorm:"column:payment_due_date;type:date;not null;index:idx_payments_member_due,priority:2" json:"payment_due_date"`

	// Back-reference to the triggering match, no ownership implied.
	PaymentMatchID *uuid.UUID `gorm:"column:payment_match_id;type:uuid;index" json:"payment_match_id,omitempty"`

	PaymentNotes *string           `gorm:"column:payment_notes;type:text" json:"payment_notes,omitempty"`
	PaymentMeta  datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`

	CreatedAt time.Time      `gorm:"column:payment_created_at;type:timestamptz;not null;autoCreateTime" json:"payment_created_at"`
	UpdatedAt time.Time      `gorm:"column:payment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"payment_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;type:timestamptz;index" json:"payment_deleted_at,omitempty"`

	// The partial unique index ux_payments_member_category_due
	// (payment_member_id, payment_category, payment_due_date)
	// WHERE payment_category IN ('session','membership')
	//   AND payment_status IN ('pending','paid')
	//   AND payment_deleted_at IS NULL
	// lives in internals/databases/migrations; GORM tags only cover the hot path.
}

func (Payment) TableName() string { return "payments" }

/* ===================== Helpers ===================== */

// IsActive reports whether the row counts toward the one-active-row
// invariants (membership per month, session per date).
func (p *Payment) IsActive() bool {
	return p.PaymentStatus == PaymentStatusPending || p.PaymentStatus == PaymentStatusPaid
}

// EffectiveCategory resolves the row's category, falling back to the legacy
// notes-substring classification for rows imported with category 'other'.
func (p *Payment) EffectiveCategory() string {
	if p.PaymentCategory != PaymentCategoryOther && p.PaymentCategory != "" {
		return p.PaymentCategory
	}
	notes := ""
	if p.PaymentNotes != nil {
		notes = strings.ToLower(*p.PaymentNotes)
	}
	switch {
	case strings.Contains(notes, "membership"):
		return PaymentCategoryMembership
	case strings.Contains(notes, "shuttlecock"):
		return PaymentCategoryShuttlecock
	case strings.Contains(notes, "session"):
		return PaymentCategorySession
	}
	return PaymentCategoryOther
}
