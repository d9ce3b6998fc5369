package model

import "time"

type BookingStatus string

const (
	BookingPending         BookingStatus = "pending"
	BookingPendingApproval BookingStatus = "pending_approval"
	BookingAccepted        BookingStatus = "accepted"
	BookingDeclined        BookingStatus = "declined"
	BookingCancelled       BookingStatus = "cancelled"
	BookingCompleted       BookingStatus = "completed"
)

// AwaitingResponse reports whether a booking still needs an answer from the
// assigned talent. Reminders are only ever sent for these statuses.
func (s BookingStatus) AwaitingResponse() bool {
	return s == BookingPending || s == BookingPendingApproval
}

// Booking is a direct request aimed at exactly one talent.
type Booking struct {
	ID            string
	TalentID      *string
	EventType     string
	EventLocation string
	EventDate     *time.Time
	Status        BookingStatus
	CreatedAt     time.Time
}

// EventRequest is a broadcast request answered by any talent in the matching
// pool. The three ID slices record per-talent responses against the request
// itself rather than in a separate table.
type EventRequest struct {
	ID                string
	EventType         string
	EventLocation     string
	EventDate         *time.Time
	TalentTypeNeeded  *string
	HiddenByTalents   []string
	AcceptedByTalents []string
	DeclinedByTalents []string
	Status            BookingStatus
	CreatedAt         time.Time
}

// RespondedBy reports whether the given user already acted on the request
// (accepted or declined). Hidden is a separate, softer signal.
func (r *EventRequest) RespondedBy(userID string) bool {
	return contains(r.AcceptedByTalents, userID) || contains(r.DeclinedByTalents, userID)
}

func (r *EventRequest) HiddenFor(userID string) bool {
	return contains(r.HiddenByTalents, userID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
