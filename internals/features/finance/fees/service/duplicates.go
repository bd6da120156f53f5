// file: internals/features/finance/fees/service/duplicates.go
//
// Duplicate detection and repair. Payment rows are created by several
// uncoordinated triggers (admin check-in, match processing, client
// retries) and older deployments have no storage-level uniqueness
// guarantee, so the invariants are restored after the fact:
//
//  1. same-day session duplicates keep the earliest-created row;
//  2. membership duplicates for a month keep the latest-created row
//     (a later row may be a corrected re-bill at the right weekly rate);
//  3. a surviving active membership supersedes surviving session rows
//     for that month.
//
// Running the resolution twice is a no-op.
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"shuttleku_backend/internals/features/finance/fees/calendar"
	paymodel "shuttleku_backend/internals/features/finance/payments/model"
)

// CleanupReport summarizes one member's resolution pass.
type CleanupReport struct {
	MemberID          uuid.UUID   `json:"member_id"`
	DuplicatesFound   int         `json:"duplicates_found"`
	DuplicatesRemoved int         `json:"duplicates_removed"`
	RemovedPaymentIDs []uuid.UUID `json:"removed_payment_ids,omitempty"`
	DryRun            bool        `json:"dry_run"`
}

// CleanupFailure records a member whose pass was aborted by a storage error.
type CleanupFailure struct {
	MemberID uuid.UUID `json:"member_id"`
	Error    string    `json:"error"`
}

// AggregateCleanupReport summarizes a system-wide sweep.
type AggregateCleanupReport struct {
	MembersScanned        int              `json:"members_scanned"`
	MembersWithDuplicates int              `json:"members_with_duplicates"`
	DuplicatesFound       int              `json:"duplicates_found"`
	DuplicatesRemoved     int              `json:"duplicates_removed"`
	DryRun                bool             `json:"dry_run"`
	Reports               []CleanupReport  `json:"reports,omitempty"`
	Failures              []CleanupFailure `json:"failures,omitempty"`
}

/* ===================== Pure resolution planning ===================== */

// planMonthResolution takes one member's payment rows for a single billing
// month and returns the rows the precedence rules doom. Shuttlecock and
// unrelated rows are never touched. Pure: no I/O, stable for a given input.
func planMonthResolution(rows []paymodel.Payment) []paymodel.Payment {
	var sessions, memberships []paymodel.Payment
	for _, p := range rows {
		switch p.EffectiveCategory() {
		case paymodel.PaymentCategorySession:
			sessions = append(sessions, p)
		case paymodel.PaymentCategoryMembership:
			memberships = append(memberships, p)
		}
	}

	var doomed []paymodel.Payment

	// Rule 1: per due date keep the earliest-created session row.
	byDate := map[string][]paymodel.Payment{}
	for _, p := range sessions {
		k := p.PaymentDueDate.Format("2006-01-02")
		byDate[k] = append(byDate[k], p)
	}
	survivingSessions := make([]paymodel.Payment, 0, len(byDate))
	for _, group := range byDate {
		sortByCreatedAt(group)
		survivingSessions = append(survivingSessions, group[0])
		doomed = append(doomed, group[1:]...)
	}

	// Rule 2: keep the latest-created membership row for the month.
	var survivingMembership *paymodel.Payment
	if len(memberships) > 0 {
		sortByCreatedAt(memberships)
		last := memberships[len(memberships)-1]
		survivingMembership = &last
		doomed = append(doomed, memberships[:len(memberships)-1]...)
	}

	// Rule 3: an active surviving membership supersedes session billing.
	if survivingMembership != nil && survivingMembership.IsActive() {
		doomed = append(doomed, survivingSessions...)
	}

	return doomed
}

// sortByCreatedAt orders oldest first; ties break on id so the plan is
// deterministic even for rows created in the same clock tick.
func sortByCreatedAt(rows []paymodel.Payment) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].PaymentID.String() < rows[j].PaymentID.String()
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
}

/* ===================== Pre-check ===================== */

// WouldCreateDuplicate reports whether inserting a row of the given
// category on dueDate would violate the ledger invariants. Best effort:
// it holds no lock, so callers pair it with the reactive resolution below.
func (s *FeeService) WouldCreateDuplicate(ctx context.Context, memberID uuid.UUID, category string, dueDate time.Time) (bool, error) {
	if memberID == uuid.Nil {
		return false, ErrInvalidMemberID
	}
	if category != paymodel.PaymentCategorySession && category != paymodel.PaymentCategoryMembership {
		// Shuttlecock and other rows carry no uniqueness invariant.
		return false, nil
	}

	from, to := calendar.MonthRange(dueDate)
	rows, err := s.Ledger.QueryPayments(ctx, PaymentFilter{
		MemberID: &memberID,
		DueFrom:  &from,
		DueTo:    &to,
	})
	if err != nil {
		return false, err
	}

	for i := range rows {
		switch rows[i].EffectiveCategory() {
		case paymodel.PaymentCategorySession:
			if category == paymodel.PaymentCategorySession && sameDay(rows[i].PaymentDueDate, dueDate) {
				return true, nil
			}
		case paymodel.PaymentCategoryMembership:
			if category == paymodel.PaymentCategoryMembership {
				return true, nil
			}
			// An active membership also blocks new session fees that month.
			if category == paymodel.PaymentCategorySession && rows[i].IsActive() {
				return true, nil
			}
		}
	}
	return false, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

/* ===================== Reactive resolution ===================== */

// ResolveForMember repairs one member's billing month (the month
// containing referenceDate) and returns what was removed.
func (s *FeeService) ResolveForMember(ctx context.Context, memberID uuid.UUID, referenceDate time.Time) (CleanupReport, error) {
	if memberID == uuid.Nil {
		return CleanupReport{}, ErrInvalidMemberID
	}

	from, to := calendar.MonthRange(referenceDate)
	rows, err := s.Ledger.QueryPayments(ctx, PaymentFilter{
		MemberID: &memberID,
		DueFrom:  &from,
		DueTo:    &to,
	})
	if err != nil {
		return CleanupReport{}, err
	}

	return s.applyPlan(ctx, memberID, planMonthResolution(rows), false)
}

// resolveAllMonths repairs every billing month present in the member's
// ledger. Used by the system-wide sweep so historical duplicates are
// repaired regardless of age.
func (s *FeeService) resolveAllMonths(ctx context.Context, memberID uuid.UUID, dryRun bool) (CleanupReport, error) {
	rows, err := s.Ledger.QueryPayments(ctx, PaymentFilter{MemberID: &memberID})
	if err != nil {
		return CleanupReport{}, err
	}

	byMonth := map[string][]paymodel.Payment{}
	for _, p := range rows {
		k := p.PaymentDueDate.Format("2006-01")
		byMonth[k] = append(byMonth[k], p)
	}

	var doomed []paymodel.Payment
	for _, monthRows := range byMonth {
		doomed = append(doomed, planMonthResolution(monthRows)...)
	}
	return s.applyPlan(ctx, memberID, doomed, dryRun)
}

// applyPlan executes (or, for dry runs, only counts) the deletions. A
// delete failure aborts this member's pass; rows already removed stay in
// the report so callers see exactly what changed.
func (s *FeeService) applyPlan(ctx context.Context, memberID uuid.UUID, doomed []paymodel.Payment, dryRun bool) (CleanupReport, error) {
	report := CleanupReport{
		MemberID:        memberID,
		DuplicatesFound: len(doomed),
		DryRun:          dryRun,
	}
	if dryRun {
		for _, p := range doomed {
			report.RemovedPaymentIDs = append(report.RemovedPaymentIDs, p.PaymentID)
		}
		return report, nil
	}
	for _, p := range doomed {
		if err := s.Ledger.DeletePayment(ctx, p.PaymentID); err != nil {
			return report, err
		}
		report.DuplicatesRemoved++
		report.RemovedPaymentIDs = append(report.RemovedPaymentIDs, p.PaymentID)
	}
	return report, nil
}

/* ===================== System-wide sweep ===================== */

// SystemWideCleanup runs the per-member resolution across every member.
// One member's storage failure is recorded and the sweep moves on; in
// dry-run mode nothing is deleted, only counted.
func (s *FeeService) SystemWideCleanup(ctx context.Context, dryRun bool) (AggregateCleanupReport, error) {
	memberIDs, err := s.Ledger.ListMemberIDs(ctx)
	if err != nil {
		return AggregateCleanupReport{}, err
	}

	agg := AggregateCleanupReport{DryRun: dryRun}
	for _, id := range memberIDs {
		agg.MembersScanned++

		report, err := s.resolveAllMonths(ctx, id, dryRun)
		if err != nil {
			agg.Failures = append(agg.Failures, CleanupFailure{MemberID: id, Error: err.Error()})
		}
		agg.DuplicatesFound += report.DuplicatesFound
		agg.DuplicatesRemoved += report.DuplicatesRemoved
		if report.DuplicatesFound > 0 {
			agg.MembersWithDuplicates++
			agg.Reports = append(agg.Reports, report)
		}
	}
	return agg, nil
}
