// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymodel "shuttleku_backend/internals/features/finance/payments/model"
)

////////////////////////////////////////////////////////////////////////////////
// PAYMENTS — DTO
////////////////////////////////////////////////////////////////////////////////

// Create (manual admin entry; category is set here, once, and never
// inferred from notes afterwards)
type PaymentCreateDTO struct {
	PaymentMemberID  uuid.UUID  `json:"payment_member_id" validate:"required"`
	PaymentCategory  string     `json:"payment_category" validate:"required,oneof=session membership shuttlecock other"`
	PaymentAmountIDR int        `json:"payment_amount_idr" validate:"min=0"`
	PaymentDueDate   time.Time  `json:"payment_due_date" validate:"required"`
	PaymentMatchID   *uuid.UUID `json:"payment_match_id,omitempty"`
	PaymentNotes     *string    `json:"payment_notes,omitempty"`
}

// Update (partial) — never the status; settlement uses the DTOs below
type PaymentUpdateDTO struct {
	PaymentAmountIDR *int       `json:"payment_amount_idr,omitempty" validate:"omitempty,min=0"`
	PaymentDueDate   *time.Time `json:"payment_due_date,omitempty"`
	PaymentNotes     *string    `json:"payment_notes,omitempty"`
}

type PaymentMarkPaidDTO struct {
	PaidAt *time.Time `json:"paid_at,omitempty"` // nil = backend fills now()
	Note   *string    `json:"note,omitempty"`
}

type PaymentMarkStatusDTO struct {
	Note *string `json:"note,omitempty"`
}

// Response
type PaymentResponse struct {
	PaymentID       uuid.UUID `json:"payment_id"`
	PaymentMemberID uuid.UUID `json:"payment_member_id"`
	PaymentCategory string    `json:"payment_category"`

	PaymentAmountIDR int    `json:"payment_amount_idr"`
	PaymentStatus    string `json:"payment_status"`

	PaymentDueDate time.Time  `json:"payment_due_date"`
	PaymentMatchID *uuid.UUID `json:"payment_match_id,omitempty"`
	PaymentNotes   *string    `json:"payment_notes,omitempty"`

	PaymentCreatedAt time.Time  `json:"payment_created_at"`
	PaymentUpdatedAt time.Time  `json:"payment_updated_at"`
	PaymentDeletedAt *time.Time `json:"payment_deleted_at,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS — Model <-> DTO
////////////////////////////////////////////////////////////////////////////////

func ToPaymentResponse(m paymodel.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        m.PaymentID,
		PaymentMemberID:  m.PaymentMemberID,
		PaymentCategory:  m.PaymentCategory,
		PaymentAmountIDR: m.PaymentAmountIDR,
		PaymentStatus:    m.PaymentStatus,
		PaymentDueDate:   m.PaymentDueDate,
		PaymentMatchID:   m.PaymentMatchID,
		PaymentNotes:     m.PaymentNotes,
		PaymentCreatedAt: m.CreatedAt,
		PaymentUpdatedAt: m.UpdatedAt,
		PaymentDeletedAt: toPtrTimeFromDeletedAt(m.DeletedAt),
	}
}

func ToPaymentResponses(list []paymodel.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToPaymentResponse(v))
	}
	return out
}

func PaymentCreateDTOToModel(d PaymentCreateDTO) paymodel.Payment {
	return paymodel.Payment{
		PaymentMemberID:  d.PaymentMemberID,
		PaymentCategory:  d.PaymentCategory,
		PaymentAmountIDR: d.PaymentAmountIDR,
		PaymentStatus:    paymodel.PaymentStatusPending, // default pending
		PaymentDueDate:   d.PaymentDueDate,
		PaymentMatchID:   d.PaymentMatchID,
		PaymentNotes:     d.PaymentNotes,
	}
}

// ApplyPaymentUpdate applies the partial update, leaving status alone.
func ApplyPaymentUpdate(m *paymodel.Payment, d PaymentUpdateDTO) {
	if d.PaymentAmountIDR != nil {
		m.PaymentAmountIDR = *d.PaymentAmountIDR
	}
	if d.PaymentDueDate != nil {
		m.PaymentDueDate = *d.PaymentDueDate
	}
	if d.PaymentNotes != nil {
		m.PaymentNotes = d.PaymentNotes
	}
}

func toPtrTimeFromDeletedAt(d gorm.DeletedAt) *time.Time {
	if d.Valid {
		return &d.Time
	}
	return nil
}
