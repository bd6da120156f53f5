// file: internals/features/finance/fees/service/session_fee.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shuttleku_backend/internals/features/finance/fees/calendar"
	"shuttleku_backend/internals/features/finance/fees/schedule"
	paymodel "shuttleku_backend/internals/features/finance/payments/model"
)

// FeeBreakdown is the amount owed by one member for one session.
type FeeBreakdown struct {
	MemberID            uuid.UUID `json:"member_id"`
	SessionDate         time.Time `json:"session_date"`
	ShuttlecocksUsed    int       `json:"shuttlecocks_used"`
	HasActiveMembership bool      `json:"has_active_membership"`

	ShuttlecockFeeIDR int `json:"shuttlecock_fee_idr"`
	SessionFeeIDR     int `json:"session_fee_idr"`
	TotalIDR          int `json:"total_idr"`
}

// ChargeResult reports what the writer path actually did.
type ChargeResult struct {
	Breakdown        FeeBreakdown       `json:"breakdown"`
	Created          []paymodel.Payment `json:"created"`
	SkippedDuplicate bool               `json:"skipped_duplicate"`
	Cleanup          *CleanupReport     `json:"cleanup,omitempty"`
}

// Calculate produces the fee breakdown for one member and one session.
// Read-only and deterministic against an unchanged ledger: the shuttlecock
// fee is always charged at the full per-unit rate times the session's
// usage, the flat session fee only without an active membership.
func (s *FeeService) Calculate(ctx context.Context, memberID uuid.UUID, sessionDate time.Time, shuttlecocksUsed int) (FeeBreakdown, error) {
	if memberID == uuid.Nil {
		return FeeBreakdown{}, ErrInvalidMemberID
	}
	if shuttlecocksUsed < 0 {
		return FeeBreakdown{}, ErrNegativeShuttlecocks
	}

	hasMembership, err := s.HasActiveMembership(ctx, memberID, sessionDate)
	if err != nil {
		return FeeBreakdown{}, fmt.Errorf("calculate fee member=%s: %w", memberID, err)
	}

	b := FeeBreakdown{
		MemberID:            memberID,
		SessionDate:         sessionDate,
		ShuttlecocksUsed:    shuttlecocksUsed,
		HasActiveMembership: hasMembership,
		ShuttlecockFeeIDR:   schedule.ShuttlecockFee(shuttlecocksUsed),
	}
	if !hasMembership {
		b.SessionFeeIDR = schedule.FlatSessionFee()
	}
	b.TotalIDR = b.ShuttlecockFeeIDR + b.SessionFeeIDR
	return b, nil
}

// ChargeParticipant is the writer path behind match confirmation: it
// calculates the breakdown, then persists pending rows. The session-fee
// insert is pre-checked with WouldCreateDuplicate; a positive pre-check
// (or a unique-index rejection) turns into a no-op plus a corrective
// cleanup pass for that member's month. Fails closed: nothing is written
// when the calculation itself fails.
func (s *FeeService) ChargeParticipant(ctx context.Context, memberID uuid.UUID, sessionDate time.Time, shuttlecocksUsed int, matchID *uuid.UUID) (ChargeResult, error) {
	breakdown, err := s.Calculate(ctx, memberID, sessionDate, shuttlecocksUsed)
	if err != nil {
		return ChargeResult{}, err
	}

	res := ChargeResult{Breakdown: breakdown}
	dueDate := dateOnly(sessionDate)

	if breakdown.SessionFeeIDR > 0 {
		created, skipped, cleanup, err := s.writeSessionFee(ctx, memberID, dueDate, breakdown.SessionFeeIDR, matchID)
		if err != nil {
			return res, err
		}
		if created != nil {
			res.Created = append(res.Created, *created)
		}
		res.SkippedDuplicate = skipped
		res.Cleanup = cleanup
	}

	// Shuttlecock usage is charged per session attended, membership or not.
	if breakdown.ShuttlecockFeeIDR > 0 {
		notes := fmt.Sprintf("Shuttlecock fee %s (%d pcs)", dueDate.Format("2006-01-02"), shuttlecocksUsed)
		row := paymodel.Payment{
			PaymentMemberID:  memberID,
			PaymentCategory:  paymodel.PaymentCategoryShuttlecock,
			PaymentAmountIDR: breakdown.ShuttlecockFeeIDR,
			PaymentStatus:    paymodel.PaymentStatusPending,
			PaymentDueDate:   dueDate,
			PaymentMatchID:   matchID,
			PaymentNotes:     &notes,
		}
		if err := s.Ledger.InsertPayment(ctx, &row); err != nil {
			return res, err
		}
		res.Created = append(res.Created, row)
	}

	return res, nil
}

func (s *FeeService) writeSessionFee(ctx context.Context, memberID uuid.UUID, dueDate time.Time, amount int, matchID *uuid.UUID) (*paymodel.Payment, bool, *CleanupReport, error) {
	// Best-effort claim narrows the pre-check/insert race window.
	if !s.Guard.TryClaim(ctx, memberID, paymodel.PaymentCategorySession, dueDate) {
		report, err := s.ResolveForMember(ctx, memberID, dueDate)
		if err != nil {
			return nil, true, nil, err
		}
		return nil, true, &report, nil
	}

	dup, err := s.WouldCreateDuplicate(ctx, memberID, paymodel.PaymentCategorySession, dueDate)
	if err != nil {
		s.Guard.Release(ctx, memberID, paymodel.PaymentCategorySession, dueDate)
		return nil, false, nil, err
	}
	if dup {
		report, err := s.ResolveForMember(ctx, memberID, dueDate)
		if err != nil {
			return nil, true, nil, err
		}
		return nil, true, &report, nil
	}

	notes := fmt.Sprintf("Session fee %s", dueDate.Format("2006-01-02"))
	row := paymodel.Payment{
		PaymentMemberID:  memberID,
		PaymentCategory:  paymodel.PaymentCategorySession,
		PaymentAmountIDR: amount,
		PaymentStatus:    paymodel.PaymentStatusPending,
		PaymentDueDate:   dueDate,
		PaymentMatchID:   matchID,
		PaymentNotes:     &notes,
	}
	if err := s.Ledger.InsertPayment(ctx, &row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race anyway; repair instead of failing the request.
			report, rerr := s.ResolveForMember(ctx, memberID, dueDate)
			if rerr != nil {
				return nil, true, nil, rerr
			}
			return nil, true, &report, nil
		}
		return nil, false, nil, err
	}
	return &row, false, nil, nil
}

// BillMembershipMonth creates the pending membership row for a member's
// month. The amount is always schedule-derived from the month's Saturday
// count, never ad-hoc.
func (s *FeeService) BillMembershipMonth(ctx context.Context, memberID uuid.UUID, year int, month time.Month) (paymodel.Payment, error) {
	if memberID == uuid.Nil {
		return paymodel.Payment{}, ErrInvalidMemberID
	}
	if month < time.January || month > time.December || year < 2000 {
		return paymodel.Payment{}, ErrInvalidMonth
	}

	weeks := calendar.WeeksInMonth(year, month)
	amount, err := schedule.MembershipFee(weeks)
	if err != nil {
		return paymodel.Payment{}, err
	}

	dueDate := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)

	if !s.Guard.TryClaim(ctx, memberID, paymodel.PaymentCategoryMembership, dueDate) {
		return paymodel.Payment{}, ErrMembershipAlreadyBilled
	}
	dup, err := s.WouldCreateDuplicate(ctx, memberID, paymodel.PaymentCategoryMembership, dueDate)
	if err != nil {
		s.Guard.Release(ctx, memberID, paymodel.PaymentCategoryMembership, dueDate)
		return paymodel.Payment{}, err
	}
	if dup {
		return paymodel.Payment{}, ErrMembershipAlreadyBilled
	}

	notes := fmt.Sprintf("Membership %s (%d weeks)", dueDate.Format("2006-01"), weeks)
	row := paymodel.Payment{
		PaymentMemberID:  memberID,
		PaymentCategory:  paymodel.PaymentCategoryMembership,
		PaymentAmountIDR: amount,
		PaymentStatus:    paymodel.PaymentStatusPending,
		PaymentDueDate:   dueDate,
		PaymentNotes:     &notes,
	}
	if err := s.Ledger.InsertPayment(ctx, &row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return paymodel.Payment{}, ErrMembershipAlreadyBilled
		}
		return paymodel.Payment{}, err
	}
	return row, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
