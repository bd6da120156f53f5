package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	paymodel "shuttleku_backend/internals/features/finance/payments/model"
)

var octSession = time.Date(2025, time.October, 18, 20, 0, 0, 0, time.Local)

func TestCalculateWithoutMembership(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()

	b, err := s.Calculate(context.Background(), member, octSession, 2)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if b.HasActiveMembership {
		t.Error("expected no active membership")
	}
	if b.ShuttlecockFeeIDR != 6000 {
		t.Errorf("shuttlecock fee = %d, want 6000", b.ShuttlecockFeeIDR)
	}
	if b.SessionFeeIDR != 18000 {
		t.Errorf("session fee = %d, want 18000", b.SessionFeeIDR)
	}
	if b.TotalIDR != 24000 {
		t.Errorf("total = %d, want 24000", b.TotalIDR)
	}
}

func TestCalculateWithPaidMembership(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()
	f.seed(member, paymodel.PaymentCategoryMembership, paymodel.PaymentStatusPaid,
		time.Date(2025, time.October, 1, 0, 0, 0, 0, time.Local))

	b, err := s.Calculate(context.Background(), member, octSession, 2)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !b.HasActiveMembership {
		t.Error("expected active membership")
	}
	if b.SessionFeeIDR != 0 {
		t.Errorf("session fee = %d, want 0 with membership", b.SessionFeeIDR)
	}
	if b.TotalIDR != 6000 {
		t.Errorf("total = %d, want 6000 (shuttlecocks only)", b.TotalIDR)
	}
}

func TestCalculatePendingMembershipCounts(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()
	f.seed(member, paymodel.PaymentCategoryMembership, paymodel.PaymentStatusPending,
		time.Date(2025, time.October, 1, 0, 0, 0, 0, time.Local))

	b, err := s.Calculate(context.Background(), member, octSession, 0)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !b.HasActiveMembership || b.SessionFeeIDR != 0 {
		t.Errorf("pending membership should waive the session fee, got %+v", b)
	}
}

func TestCalculateOverdueMembershipDoesNotCount(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()
	f.seed(member, paymodel.PaymentCategoryMembership, paymodel.PaymentStatusOverdue,
		time.Date(2025, time.October, 1, 0, 0, 0, 0, time.Local))

	b, err := s.Calculate(context.Background(), member, octSession, 0)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if b.HasActiveMembership || b.SessionFeeIDR != 18000 {
		t.Errorf("overdue membership must not waive the session fee, got %+v", b)
	}
}

func TestCalculateMembershipInOtherMonthDoesNotCount(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()
	f.seed(member, paymodel.PaymentCategoryMembership, paymodel.PaymentStatusPaid,
		time.Date(2025, time.September, 1, 0, 0, 0, 0, time.Local))

	b, err := s.Calculate(context.Background(), member, octSession, 0)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if b.HasActiveMembership {
		t.Error("september membership must not cover an october session")
	}
}

func TestCalculateInputValidation(t *testing.T) {
	s := newTestService(newFakeLedger())

	if _, err := s.Calculate(context.Background(), uuid.Nil, octSession, 1); !errors.Is(err, ErrInvalidMemberID) {
		t.Errorf("nil member: got %v, want ErrInvalidMemberID", err)
	}
	if _, err := s.Calculate(context.Background(), uuid.New(), octSession, -1); !errors.Is(err, ErrNegativeShuttlecocks) {
		t.Errorf("negative shuttlecocks: got %v, want ErrNegativeShuttlecocks", err)
	}
}

func TestCalculateIsReadOnly(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()

	first, err := s.Calculate(context.Background(), member, octSession, 3)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	second, err := s.Calculate(context.Background(), member, octSession, 3)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if first != second {
		t.Errorf("repeated calculation diverged: %+v vs %+v", first, second)
	}
	if f.inserted != 0 || len(f.deleted) != 0 {
		t.Errorf("calculation touched the ledger: %d inserts, %d deletes", f.inserted, len(f.deleted))
	}
}

func TestChargeParticipantCreatesPendingRows(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()
	matchID := uuid.New()

	res, err := s.ChargeParticipant(context.Background(), member, octSession, 2, &matchID)
	if err != nil {
		t.Fatalf("ChargeParticipant: %v", err)
	}
	if len(res.Created) != 2 {
		t.Fatalf("created %d rows, want 2 (session + shuttlecock)", len(res.Created))
	}
	for _, p := range res.Created {
		if p.PaymentStatus != paymodel.PaymentStatusPending {
			t.Errorf("row %s status = %s, want pending", p.PaymentCategory, p.PaymentStatus)
		}
		if p.PaymentMatchID == nil || *p.PaymentMatchID != matchID {
			t.Errorf("row %s not linked to the match", p.PaymentCategory)
		}
	}
	var sessionAmt, shuttleAmt int
	for _, p := range res.Created {
		switch p.PaymentCategory {
		case paymodel.PaymentCategorySession:
			sessionAmt = p.PaymentAmountIDR
		case paymodel.PaymentCategoryShuttlecock:
			shuttleAmt = p.PaymentAmountIDR
		}
	}
	if sessionAmt != 18000 || shuttleAmt != 6000 {
		t.Errorf("amounts session=%d shuttle=%d, want 18000/6000", sessionAmt, shuttleAmt)
	}
}

func TestChargeParticipantWithMembershipSkipsSessionFee(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()
	f.seed(member, paymodel.PaymentCategoryMembership, paymodel.PaymentStatusPaid,
		time.Date(2025, time.October, 1, 0, 0, 0, 0, time.Local))

	res, err := s.ChargeParticipant(context.Background(), member, octSession, 2, nil)
	if err != nil {
		t.Fatalf("ChargeParticipant: %v", err)
	}
	if len(res.Created) != 1 || res.Created[0].PaymentCategory != paymodel.PaymentCategoryShuttlecock {
		t.Fatalf("want only a shuttlecock row, got %+v", res.Created)
	}
}

func TestChargeParticipantSecondCallSkipsDuplicate(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()

	if _, err := s.ChargeParticipant(context.Background(), member, octSession, 0, nil); err != nil {
		t.Fatalf("first charge: %v", err)
	}
	res, err := s.ChargeParticipant(context.Background(), member, octSession, 0, nil)
	if err != nil {
		t.Fatalf("second charge: %v", err)
	}
	if !res.SkippedDuplicate {
		t.Error("second same-day charge should be skipped")
	}
	if len(res.Created) != 0 {
		t.Errorf("second charge created %d rows, want 0", len(res.Created))
	}

	sessions := 0
	for _, p := range f.rows {
		if p.PaymentCategory == paymodel.PaymentCategorySession {
			sessions++
		}
	}
	if sessions != 1 {
		t.Errorf("ledger holds %d session rows, want 1", sessions)
	}
}

func TestBillMembershipMonthFourWeeks(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()

	// October 2025 has four Saturdays.
	row, err := s.BillMembershipMonth(context.Background(), member, 2025, time.October)
	if err != nil {
		t.Fatalf("BillMembershipMonth: %v", err)
	}
	if row.PaymentAmountIDR != 40000 {
		t.Errorf("amount = %d, want 40000", row.PaymentAmountIDR)
	}
	if row.PaymentStatus != paymodel.PaymentStatusPending {
		t.Errorf("status = %s, want pending", row.PaymentStatus)
	}
	if row.PaymentDueDate.Day() != 1 || row.PaymentDueDate.Month() != time.October {
		t.Errorf("due date = %v, want first of october", row.PaymentDueDate)
	}
}

func TestBillMembershipMonthFiveWeeks(t *testing.T) {
	s := newTestService(newFakeLedger())

	// November 2025 has five Saturdays.
	row, err := s.BillMembershipMonth(context.Background(), uuid.New(), 2025, time.November)
	if err != nil {
		t.Fatalf("BillMembershipMonth: %v", err)
	}
	if row.PaymentAmountIDR != 50000 {
		t.Errorf("amount = %d, want 50000", row.PaymentAmountIDR)
	}
}

func TestBillMembershipMonthRejectsSecondBill(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()

	if _, err := s.BillMembershipMonth(context.Background(), member, 2025, time.October); err != nil {
		t.Fatalf("first bill: %v", err)
	}
	if _, err := s.BillMembershipMonth(context.Background(), member, 2025, time.October); !errors.Is(err, ErrMembershipAlreadyBilled) {
		t.Errorf("second bill: got %v, want ErrMembershipAlreadyBilled", err)
	}
	if len(f.rows) != 1 {
		t.Errorf("ledger holds %d rows, want 1", len(f.rows))
	}
}

func TestBillMembershipMonthValidation(t *testing.T) {
	s := newTestService(newFakeLedger())

	if _, err := s.BillMembershipMonth(context.Background(), uuid.Nil, 2025, time.October); !errors.Is(err, ErrInvalidMemberID) {
		t.Errorf("nil member: got %v", err)
	}
	if _, err := s.BillMembershipMonth(context.Background(), uuid.New(), 1900, time.October); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("year 1900: got %v", err)
	}
	if _, err := s.BillMembershipMonth(context.Background(), uuid.New(), 2025, time.Month(13)); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("month 13: got %v", err)
	}
}
