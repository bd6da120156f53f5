// file: internals/features/finance/fees/dto/fees_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// Calculate (read-only breakdown, POST /fees/calculate)
type CalculateSessionFeeRequest struct {
	MemberID         uuid.UUID `json:"member_id" validate:"required"`
	SessionDate      time.Time `json:"session_date" validate:"required"`
	ShuttlecocksUsed int       `json:"shuttlecocks_used" validate:"min=0"`
}

// Charge (writer path, POST /fees/charge)
type ChargeParticipantRequest struct {
	MemberID         uuid.UUID  `json:"member_id" validate:"required"`
	SessionDate      time.Time  `json:"session_date" validate:"required"`
	ShuttlecocksUsed int        `json:"shuttlecocks_used" validate:"min=0"`
	MatchID          *uuid.UUID `json:"match_id,omitempty"`
}

// Membership billing (POST /fees/membership/bill)
type BillMembershipRequest struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	Year     int       `json:"year" validate:"required,min=2000,max=2100"`
	Month    int       `json:"month" validate:"required,min=1,max=12"`
}

// Per-member duplicate resolution (POST /fees/duplicates/resolve)
type ResolveDuplicatesRequest struct {
	MemberID      uuid.UUID `json:"member_id" validate:"required"`
	ReferenceDate time.Time `json:"reference_date" validate:"required"`
}
