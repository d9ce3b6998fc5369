package repo

import (
	"context"
	"errors"
	"time"

	"github.com/stagelink/booking-notifications/internal/model"
)

// ErrNotFound is returned by point lookups when no row matches.
var ErrNotFound = errors.New("not found")

type BookingRepository interface {
	// ListAwaitingResponse returns bookings still waiting on the assigned
	// talent, created at or after since. Bookings without a talent are
	// excluded at the query.
	ListAwaitingResponse(ctx context.Context, since time.Time) ([]model.Booking, error)
	// GetStatus re-reads a booking's current status.
	GetStatus(ctx context.Context, id string) (model.BookingStatus, error)
}

type EventRequestRepository interface {
	ListAwaitingResponse(ctx context.Context, since time.Time) ([]model.EventRequest, error)
	// Get re-reads a request including its per-talent response sets.
	Get(ctx context.Context, id string) (*model.EventRequest, error)
}

type TalentRepository interface {
	GetByID(ctx context.Context, id string) (*model.TalentProfile, error)
	ListByLocation(ctx context.Context, location string) ([]model.TalentProfile, error)
}

type ReminderLedger interface {
	// Claim appends entry unless another entry for the same (user, request)
	// pair exists with sent_at at or after windowStart. Returns whether the
	// entry was written; a false result means the pair is still cooling down.
	Claim(ctx context.Context, entry model.LedgerEntry, windowStart time.Time) (bool, error)
	ListRecent(ctx context.Context, limit, offset int) ([]model.LedgerEntry, error)
}
