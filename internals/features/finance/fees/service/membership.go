// file: internals/features/finance/fees/service/membership.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shuttleku_backend/internals/features/finance/fees/calendar"
	paymodel "shuttleku_backend/internals/features/finance/payments/model"
)

// HasActiveMembership reports whether the member holds a paid or pending
// membership row whose due date falls in the month containing date.
// Zero rows means "no membership", never an error; storage failures
// propagate untouched.
func (s *FeeService) HasActiveMembership(ctx context.Context, memberID uuid.UUID, date time.Time) (bool, error) {
	if memberID == uuid.Nil {
		return false, ErrInvalidMemberID
	}

	from, to := calendar.MonthRange(date)
	rows, err := s.Ledger.QueryPayments(ctx, PaymentFilter{
		MemberID: &memberID,
		Statuses: []string{paymodel.PaymentStatusPending, paymodel.PaymentStatusPaid},
		DueFrom:  &from,
		DueTo:    &to,
	})
	if err != nil {
		return false, err
	}

	// Category filter happens here, not in SQL: legacy rows stored with
	// category 'other' still classify via their notes.
	for i := range rows {
		if rows[i].EffectiveCategory() == paymodel.PaymentCategoryMembership {
			return true, nil
		}
	}
	return false, nil
}
