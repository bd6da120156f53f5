// file: internals/features/finance/fees/service/ledger.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymodel "shuttleku_backend/internals/features/finance/payments/model"
)

// PaymentFilter narrows ledger queries. Nil/empty fields are ignored.
type PaymentFilter struct {
	MemberID *uuid.UUID
	Category *string
	Statuses []string
	DueFrom  *time.Time // inclusive
	DueTo    *time.Time // exclusive
	MatchID  *uuid.UUID
}

// PaymentLedger is the storage contract the fee engine runs against.
// Only the duplicate resolver may call DeletePayment; only the charge
// paths may call InsertPayment.
type PaymentLedger interface {
	QueryPayments(ctx context.Context, f PaymentFilter) ([]paymodel.Payment, error)
	InsertPayment(ctx context.Context, p *paymodel.Payment) error
	DeletePayment(ctx context.Context, id uuid.UUID) error
	ListMemberIDs(ctx context.Context) ([]uuid.UUID, error)
}

/* ===================== GORM implementation ===================== */

type gormLedger struct {
	db *gorm.DB
}

// NewGormLedger wraps a gorm handle as a PaymentLedger.
func NewGormLedger(db *gorm.DB) PaymentLedger {
	return &gormLedger{db: db}
}

func (l *gormLedger) QueryPayments(ctx context.Context, f PaymentFilter) ([]paymodel.Payment, error) {
	q := l.db.WithContext(ctx).Model(&paymodel.Payment{})

	if f.MemberID != nil {
		q = q.Where("payment_member_id = ?", *f.MemberID)
	}
	if f.Category != nil {
		q = q.Where("payment_category = ?", *f.Category)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("payment_status IN ?", f.Statuses)
	}
	if f.DueFrom != nil {
		q = q.Where("payment_due_date >= ?", *f.DueFrom)
	}
	if f.DueTo != nil {
		q = q.Where("payment_due_date < ?", *f.DueTo)
	}
	if f.MatchID != nil {
		q = q.Where("payment_match_id = ?", *f.MatchID)
	}

	var rows []paymodel.Payment
	if err := q.Order("payment_due_date ASC, payment_created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	return rows, nil
}

func (l *gormLedger) InsertPayment(ctx context.Context, p *paymodel.Payment) error {
	if err := l.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("insert payment member=%s category=%s: %w", p.PaymentMemberID, p.PaymentCategory, err)
	}
	return nil
}

func (l *gormLedger) DeletePayment(ctx context.Context, id uuid.UUID) error {
	// Soft delete; deleting an absent id is not an error.
	if err := l.db.WithContext(ctx).
		Where("payment_id = ?", id).
		Delete(&paymodel.Payment{}).Error; err != nil {
		return fmt.Errorf("delete payment %s: %w", id, err)
	}
	return nil
}

func (l *gormLedger) ListMemberIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := l.db.WithContext(ctx).
		Table("members").
		Where("member_deleted_at IS NULL").
		Order("member_created_at ASC").
		Pluck("member_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list member ids: %w", err)
	}
	return ids, nil
}
