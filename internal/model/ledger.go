package model

import "time"

// LedgerEntry is one sent reminder, recorded append-only. The cooldown check
// asks whether an entry exists for (UserID, RequestID) newer than the window
// start; entries are never updated or deleted by this service.
type LedgerEntry struct {
	ID        string
	UserID    string
	RequestID string
	Kind      RequestKind
	Title     string
	Body      string
	URL       string
	SentAt    time.Time
}

// RequestKind distinguishes the two candidate sources.
type RequestKind string

const (
	KindBooking      RequestKind = "booking"
	KindEventRequest RequestKind = "event_request"
)
