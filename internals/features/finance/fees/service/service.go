// file: internals/features/finance/fees/service/service.go
package service

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Input validation errors, rejected before any storage call.
var (
	ErrInvalidMemberID      = errors.New("invalid member id")
	ErrNegativeShuttlecocks = errors.New("shuttlecock count must be >= 0")
	ErrInvalidMonth         = errors.New("invalid billing month")

	// ErrMembershipAlreadyBilled signals the month already carries a
	// membership row for the member (pre-check, not a storage failure).
	ErrMembershipAlreadyBilled = errors.New("membership already billed for this month")
)

// FeeService bundles the fee engine: calculator, membership resolver,
// duplicate detector/resolver and the payment writer paths.
type FeeService struct {
	Ledger PaymentLedger
	Guard  *DuplicateGuard
}

// NewFeeService wires the engine against GORM storage. rdb may be nil;
// the duplicate guard then stays disabled.
func NewFeeService(db *gorm.DB, rdb *redis.Client) *FeeService {
	var guard *DuplicateGuard
	if rdb != nil {
		guard = NewDuplicateGuard(rdb)
	}
	return &FeeService{
		Ledger: NewGormLedger(db),
		Guard:  guard,
	}
}
