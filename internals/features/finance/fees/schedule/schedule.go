// file: internals/features/finance/fees/schedule/schedule.go
//
// Club fee schedule. All amounts in IDR (smallest unit). Pure lookups only.
package schedule

import "fmt"

const (
	// PerShuttlecockCostIDR is charged per shuttlecock used in a session,
	// at the full rate per participant. The cost is intentionally NOT split
	// among participants; that is club policy.
	PerShuttlecockCostIDR = 3000

	// FlatSessionFeeIDR is charged per session to members without an
	// active membership for that month.
	FlatSessionFeeIDR = 18000

	// Monthly membership, keyed by the number of Saturdays in the month.
	MembershipFee4WeeksIDR = 40000
	MembershipFee5WeeksIDR = 50000
)

// ShuttlecockFee is count × full per-shuttlecock rate.
func ShuttlecockFee(countUsed int) int {
	return countUsed * PerShuttlecockCostIDR
}

// FlatSessionFee is the per-session charge for non-members.
func FlatSessionFee() int {
	return FlatSessionFeeIDR
}

// MembershipFee maps the Saturday count of a month to one of exactly two
// schedule amounts. Any other week count is a caller bug.
func MembershipFee(weeksInMonth int) (int, error) {
	switch weeksInMonth {
	case 4:
		return MembershipFee4WeeksIDR, nil
	case 5:
		return MembershipFee5WeeksIDR, nil
	}
	return 0, fmt.Errorf("membership fee: month must have 4 or 5 session weeks, got %d", weeksInMonth)
}
