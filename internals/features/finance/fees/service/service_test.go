package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	paymodel "shuttleku_backend/internals/features/finance/payments/model"
)

// fakeLedger is the in-memory PaymentLedger used across the engine tests.
// It mirrors the storage contract: half-open due-date ranges, stable
// (due date, created at) ordering, idempotent deletes.
type fakeLedger struct {
	rows    []paymodel.Payment
	members []uuid.UUID

	inserted int
	deleted  []uuid.UUID

	queryErrFor  map[uuid.UUID]error // keyed by member id
	deleteErrFor map[uuid.UUID]error // keyed by payment id

	clock time.Time
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		queryErrFor:  map[uuid.UUID]error{},
		deleteErrFor: map[uuid.UUID]error{},
		clock:        time.Date(2025, time.October, 1, 8, 0, 0, 0, time.Local),
	}
}

func (f *fakeLedger) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

// seed inserts a row directly, bypassing the engine, and returns it.
func (f *fakeLedger) seed(memberID uuid.UUID, category, status string, dueDate time.Time) paymodel.Payment {
	p := paymodel.Payment{
		PaymentID:       uuid.New(),
		PaymentMemberID: memberID,
		PaymentCategory: category,
		PaymentStatus:   status,
		PaymentDueDate:  dueDate,
		CreatedAt:       f.tick(),
	}
	f.rows = append(f.rows, p)
	return p
}

func (f *fakeLedger) QueryPayments(_ context.Context, filter PaymentFilter) ([]paymodel.Payment, error) {
	if filter.MemberID != nil {
		if err, ok := f.queryErrFor[*filter.MemberID]; ok {
			return nil, err
		}
	}
	var out []paymodel.Payment
	for _, p := range f.rows {
		if filter.MemberID != nil && p.PaymentMemberID != *filter.MemberID {
			continue
		}
		if filter.Category != nil && p.PaymentCategory != *filter.Category {
			continue
		}
		if len(filter.Statuses) > 0 && !contains(filter.Statuses, p.PaymentStatus) {
			continue
		}
		if filter.DueFrom != nil && p.PaymentDueDate.Before(*filter.DueFrom) {
			continue
		}
		if filter.DueTo != nil && !p.PaymentDueDate.Before(*filter.DueTo) {
			continue
		}
		if filter.MatchID != nil && (p.PaymentMatchID == nil || *p.PaymentMatchID != *filter.MatchID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeLedger) InsertPayment(_ context.Context, p *paymodel.Payment) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = f.tick()
	}
	f.rows = append(f.rows, *p)
	f.inserted++
	return nil
}

func (f *fakeLedger) DeletePayment(_ context.Context, id uuid.UUID) error {
	if err, ok := f.deleteErrFor[id]; ok {
		return err
	}
	for i, p := range f.rows {
		if p.PaymentID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			break
		}
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeLedger) ListMemberIDs(_ context.Context) ([]uuid.UUID, error) {
	return f.members, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func newTestService(f *fakeLedger) *FeeService {
	return &FeeService{Ledger: f}
}
