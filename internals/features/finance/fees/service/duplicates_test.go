package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	paymodel "shuttleku_backend/internals/features/finance/payments/model"
)

func day(d int) time.Time {
	return time.Date(2025, time.October, d, 0, 0, 0, 0, time.Local)
}

func TestPlanKeepsEarliestSessionPerDay(t *testing.T) {
	f := newFakeLedger()
	member := uuid.New()
	first := f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	second := f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	third := f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPaid, day(18))
	other := f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(25))

	doomed := planMonthResolution(f.rows)
	ids := idSet(doomed)
	if len(doomed) != 2 {
		t.Fatalf("doomed %d rows, want 2", len(doomed))
	}
	if ids[first.PaymentID] {
		t.Error("earliest-created session row must survive")
	}
	if !ids[second.PaymentID] || !ids[third.PaymentID] {
		t.Error("later same-day session rows must be doomed")
	}
	if ids[other.PaymentID] {
		t.Error("session on a different day must survive")
	}
}

func TestPlanKeepsLatestMembership(t *testing.T) {
	f := newFakeLedger()
	member := uuid.New()
	first := f.seed(member, paymodel.PaymentCategoryMembership, paymodel.PaymentStatusPending, day(1))
	second := f.seed(member, paymodel.PaymentCategoryMembership, paymodel.PaymentStatusPending, day(1))

	doomed := planMonthResolution(f.rows)
	if len(doomed) != 1 || doomed[0].PaymentID != first.PaymentID {
		t.Fatalf("want only the earlier membership row doomed, got %+v", doomed)
	}
	_ = second
}

func TestPlanActiveMembershipSupersedesSessions(t *testing.T) {
	f := newFakeLedger()
	member := uuid.New()
	session := f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	shuttle := f.seed(member, paymodel.PaymentCategoryShuttlecock, paymodel.PaymentStatusPending, day(18))
	f.seed(member, paymodel.PaymentCategoryMembership, paymodel.PaymentStatusPaid, day(1))

	doomed := planMonthResolution(f.rows)
	ids := idSet(doomed)
	if !ids[session.PaymentID] {
		t.Error("session row must be superseded by the paid membership")
	}
	if ids[shuttle.PaymentID] {
		t.Error("shuttlecock rows are never part of the resolution")
	}
}

func TestPlanInactiveMembershipKeepsSessions(t *testing.T) {
	f := newFakeLedger()
	member := uuid.New()
	f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	f.seed(member, paymodel.PaymentCategoryMembership, paymodel.PaymentStatusOverdue, day(1))

	if doomed := planMonthResolution(f.rows); len(doomed) != 0 {
		t.Fatalf("overdue membership must not supersede sessions, doomed %+v", doomed)
	}
}

func TestPlanLegacyNotesClassification(t *testing.T) {
	f := newFakeLedger()
	member := uuid.New()
	notes := "Membership October top-up"
	legacy := paymodel.Payment{
		PaymentID:       uuid.New(),
		PaymentMemberID: member,
		PaymentCategory: paymodel.PaymentCategoryOther,
		PaymentStatus:   paymodel.PaymentStatusPaid,
		PaymentDueDate:  day(1),
		PaymentNotes:    &notes,
		CreatedAt:       f.tick(),
	}
	f.rows = append(f.rows, legacy)
	session := f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))

	doomed := planMonthResolution(f.rows)
	if len(doomed) != 1 || doomed[0].PaymentID != session.PaymentID {
		t.Fatalf("legacy membership row (category 'other') must supersede the session, got %+v", doomed)
	}
}

func TestResolveForMemberIsIdempotent(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()
	f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))

	report, err := s.ResolveForMember(context.Background(), member, day(18))
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if report.DuplicatesRemoved != 1 {
		t.Fatalf("removed %d, want 1", report.DuplicatesRemoved)
	}

	report, err = s.ResolveForMember(context.Background(), member, day(18))
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if report.DuplicatesFound != 0 || report.DuplicatesRemoved != 0 {
		t.Errorf("second resolve is not a no-op: %+v", report)
	}
}

func TestResolveForMemberScopesToMonth(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()
	f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	nov := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.Local)
	f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, nov)
	f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, nov)

	report, err := s.ResolveForMember(context.Background(), member, day(18))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if report.DuplicatesRemoved != 1 {
		t.Errorf("removed %d, want 1 (october only)", report.DuplicatesRemoved)
	}
	if len(f.rows) != 3 {
		t.Errorf("%d rows remain, want 3 (november pair untouched)", len(f.rows))
	}
}

func TestWouldCreateDuplicate(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()
	ctx := context.Background()

	dup, err := s.WouldCreateDuplicate(ctx, member, paymodel.PaymentCategorySession, day(18))
	if err != nil || dup {
		t.Errorf("empty ledger: dup=%v err=%v, want false nil", dup, err)
	}

	f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))

	dup, _ = s.WouldCreateDuplicate(ctx, member, paymodel.PaymentCategorySession, day(18))
	if !dup {
		t.Error("same-day session must report a duplicate")
	}
	dup, _ = s.WouldCreateDuplicate(ctx, member, paymodel.PaymentCategorySession, day(25))
	if dup {
		t.Error("different day must not report a duplicate")
	}

	f.seed(member, paymodel.PaymentCategoryMembership, paymodel.PaymentStatusPaid, day(1))

	dup, _ = s.WouldCreateDuplicate(ctx, member, paymodel.PaymentCategoryMembership, day(15))
	if !dup {
		t.Error("existing membership must block another membership that month")
	}
	dup, _ = s.WouldCreateDuplicate(ctx, member, paymodel.PaymentCategorySession, day(25))
	if !dup {
		t.Error("active membership must block new session fees that month")
	}

	// Shuttlecock rows carry no uniqueness invariant.
	dup, err = s.WouldCreateDuplicate(ctx, member, paymodel.PaymentCategoryShuttlecock, day(18))
	if err != nil || dup {
		t.Errorf("shuttlecock: dup=%v err=%v, want false nil", dup, err)
	}

	if _, err := s.WouldCreateDuplicate(ctx, uuid.Nil, paymodel.PaymentCategorySession, day(18)); !errors.Is(err, ErrInvalidMemberID) {
		t.Errorf("nil member: got %v", err)
	}
}

func TestSystemWideCleanup(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	clean := uuid.New()
	dirty := uuid.New()
	f.members = []uuid.UUID{clean, dirty}

	f.seed(clean, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	f.seed(dirty, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	f.seed(dirty, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	// Historical month, repaired by the same sweep.
	sep := time.Date(2025, time.September, 6, 0, 0, 0, 0, time.Local)
	f.seed(dirty, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, sep)
	f.seed(dirty, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, sep)

	agg, err := s.SystemWideCleanup(context.Background(), false)
	if err != nil {
		t.Fatalf("SystemWideCleanup: %v", err)
	}
	if agg.MembersScanned != 2 {
		t.Errorf("scanned %d, want 2", agg.MembersScanned)
	}
	if agg.MembersWithDuplicates != 1 {
		t.Errorf("members with duplicates = %d, want 1", agg.MembersWithDuplicates)
	}
	if agg.DuplicatesRemoved != 2 {
		t.Errorf("removed %d, want 2 (one per month)", agg.DuplicatesRemoved)
	}
	if len(agg.Failures) != 0 {
		t.Errorf("unexpected failures: %+v", agg.Failures)
	}
}

func TestSystemWideCleanupDryRun(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	member := uuid.New()
	f.members = []uuid.UUID{member}
	f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	f.seed(member, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))

	agg, err := s.SystemWideCleanup(context.Background(), true)
	if err != nil {
		t.Fatalf("SystemWideCleanup: %v", err)
	}
	if !agg.DryRun {
		t.Error("report must be marked dry-run")
	}
	if agg.DuplicatesFound != 1 || agg.DuplicatesRemoved != 0 {
		t.Errorf("found=%d removed=%d, want 1/0", agg.DuplicatesFound, agg.DuplicatesRemoved)
	}
	if len(f.deleted) != 0 {
		t.Errorf("dry run deleted %d rows", len(f.deleted))
	}
}

func TestSystemWideCleanupIsolatesFailures(t *testing.T) {
	f := newFakeLedger()
	s := newTestService(f)
	broken := uuid.New()
	healthy := uuid.New()
	f.members = []uuid.UUID{broken, healthy}
	f.queryErrFor[broken] = errors.New("connection reset")

	f.seed(healthy, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))
	f.seed(healthy, paymodel.PaymentCategorySession, paymodel.PaymentStatusPending, day(18))

	agg, err := s.SystemWideCleanup(context.Background(), false)
	if err != nil {
		t.Fatalf("SystemWideCleanup: %v", err)
	}
	if len(agg.Failures) != 1 || agg.Failures[0].MemberID != broken {
		t.Fatalf("want one failure for the broken member, got %+v", agg.Failures)
	}
	if agg.DuplicatesRemoved != 1 {
		t.Errorf("healthy member not repaired: removed=%d, want 1", agg.DuplicatesRemoved)
	}
}

func idSet(rows []paymodel.Payment) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(rows))
	for _, p := range rows {
		out[p.PaymentID] = true
	}
	return out
}
