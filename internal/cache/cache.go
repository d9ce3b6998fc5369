package cache

import "context"

// CooldownCache is a best-effort fast path in front of the reminder ledger.
// A hit means a reminder went out recently and the pair can be skipped
// without touching the database; a miss proves nothing and falls through to
// the authoritative ledger claim.
type CooldownCache interface {
	WasRecentlySent(ctx context.Context, userID, requestID string) (bool, error)
	MarkSent(ctx context.Context, userID, requestID string) error
}
