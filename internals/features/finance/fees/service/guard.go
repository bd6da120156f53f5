// file: internals/features/finance/fees/service/guard.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DuplicateGuard shrinks the race window between the duplicate pre-check
// and the insert with a short-lived SET NX claim in redis. It is strictly
// best-effort: a guard miss, a redis outage, or a nil guard all fall
// through to the insert, and the reactive resolver repairs whatever slips
// past. Correctness never depends on this.
type DuplicateGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDuplicateGuard(rdb *redis.Client) *DuplicateGuard {
	return &DuplicateGuard{rdb: rdb, ttl: 30 * time.Second}
}

func guardKey(memberID uuid.UUID, category string, dueDate time.Time) string {
	return fmt.Sprintf("feeguard:%s:%s:%s", memberID, category, dueDate.Format("2006-01-02"))
}

// TryClaim returns false only when another in-flight request already holds
// the same (member, category, due date) claim.
func (g *DuplicateGuard) TryClaim(ctx context.Context, memberID uuid.UUID, category string, dueDate time.Time) bool {
	if g == nil || g.rdb == nil {
		return true
	}
	ok, err := g.rdb.SetNX(ctx, guardKey(memberID, category, dueDate), 1, g.ttl).Result()
	if err != nil {
		log.Printf("[WARN] duplicate guard unavailable, continuing without it: %v", err)
		return true
	}
	return ok
}

// Release frees the claim early so a legitimate follow-up (e.g. after the
// resolver deleted a bad row) does not wait out the TTL.
func (g *DuplicateGuard) Release(ctx context.Context, memberID uuid.UUID, category string, dueDate time.Time) {
	if g == nil || g.rdb == nil {
		return
	}
	if err := g.rdb.Del(ctx, guardKey(memberID, category, dueDate)).Err(); err != nil {
		log.Printf("[WARN] duplicate guard release: %v", err)
	}
}
