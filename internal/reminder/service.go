package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stagelink/booking-notifications/internal/cache"
	"github.com/stagelink/booking-notifications/internal/client"
	"github.com/stagelink/booking-notifications/internal/model"
	"github.com/stagelink/booking-notifications/internal/repo"
)

const (
	DefaultCooldown  = 60 * time.Minute
	DefaultMaxWindow = 72 * time.Hour
)

// Policy holds the two timing constants of the reminder pass: the minimum
// spacing between reminders for one (recipient, request) pair, and the age
// past which a request is presumed abandoned and never considered.
type Policy struct {
	Cooldown  time.Duration
	MaxWindow time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Cooldown: DefaultCooldown, MaxWindow: DefaultMaxWindow}
}

// PushSender dispatches one notification through the external gateway.
type PushSender interface {
	Send(ctx context.Context, n client.Notification) error
}

// Report is the aggregate outcome of one pass. Partial completion (some
// reminders sent, others skipped or failed) is a normal result, not an error.
type Report struct {
	RemindersSent       int `json:"remindersSent"`
	CandidatesEvaluated int `json:"candidatesEvaluated"`
}

type Service struct {
	bookings repo.BookingRepository
	requests repo.EventRequestRepository
	talents  repo.TalentRepository
	ledger   repo.ReminderLedger
	cooldown cache.CooldownCache // optional fast path, may be nil
	push     PushSender
	policy   Policy
}

func NewService(
	bookings repo.BookingRepository,
	requests repo.EventRequestRepository,
	talents repo.TalentRepository,
	ledger repo.ReminderLedger,
	cooldown cache.CooldownCache,
	push PushSender,
	policy Policy,
) *Service {
	return &Service{
		bookings: bookings,
		requests: requests,
		talents:  talents,
		ledger:   ledger,
		cooldown: cooldown,
		push:     push,
		policy:   policy,
	}
}

// Run executes one reminder pass at the given instant. Per-pair failures are
// logged and skipped; only a failure to load the candidate request sets
// aborts the pass.
func (s *Service) Run(ctx context.Context, now time.Time) (Report, error) {
	windowStart := now.Add(-s.policy.Cooldown)
	maxWindowStart := now.Add(-s.policy.MaxWindow)

	bookings, err := s.bookings.ListAwaitingResponse(ctx, maxWindowStart)
	if err != nil {
		return Report{}, fmt.Errorf("load pending bookings: %w", err)
	}

	requests, err := s.requests.ListAwaitingResponse(ctx, maxWindowStart)
	if err != nil {
		return Report{}, fmt.Errorf("load pending event requests: %w", err)
	}

	var rep Report
	s.remindBookings(ctx, bookings, windowStart, &rep)
	s.remindEventRequests(ctx, requests, windowStart, &rep)

	slog.Info("reminder pass completed",
		"bookings", len(bookings),
		"event_requests", len(requests),
		"candidates_evaluated", rep.CandidatesEvaluated,
		"reminders_sent", rep.RemindersSent,
	)
	return rep, nil
}

func (s *Service) remindBookings(ctx context.Context, bookings []model.Booking, windowStart time.Time, rep *Report) {
	for _, b := range bookings {
		if b.TalentID == nil {
			continue
		}

		talent, err := s.talents.GetByID(ctx, *b.TalentID)
		if err != nil {
			slog.Error("failed to load talent for booking", "booking_id", b.ID, "talent_id", *b.TalentID, "error", err)
			continue
		}
		if talent.UserID == nil {
			continue
		}
		userID := *talent.UserID

		rep.CandidatesEvaluated++

		// Re-check the live status: the talent may have responded between
		// candidate discovery and now.
		status, err := s.bookings.GetStatus(ctx, b.ID)
		if err != nil {
			slog.Error("failed to re-check booking status", "booking_id", b.ID, "error", err)
			continue
		}
		if !status.AwaitingResponse() {
			continue
		}

		n := client.Notification{
			UserID:    userID,
			Title:     "Reminder: Respond to booking request",
			Body:      fmt.Sprintf("Please respond to the %s booking in %s scheduled for %s.", b.EventType, b.EventLocation, formatEventDate(b.EventDate)),
			URL:       "/talent-dashboard?bookingId=" + b.ID,
			BookingID: b.ID,
			Reminder:  true,
		}
		if s.deliver(ctx, n, userID, b.ID, model.KindBooking, windowStart) {
			rep.RemindersSent++
		}
	}
}

func (s *Service) remindEventRequests(ctx context.Context, requests []model.EventRequest, windowStart time.Time, rep *Report) {
	for _, req := range requests {
		pool, err := s.talents.ListByLocation(ctx, req.EventLocation)
		if err != nil {
			slog.Error("failed to load talent pool for event request", "event_request_id", req.ID, "error", err)
			continue
		}

		for _, talent := range pool {
			if talent.UserID == nil {
				continue
			}
			userID := *talent.UserID

			rep.CandidatesEvaluated++

			if req.HiddenFor(userID) || req.RespondedBy(userID) {
				continue
			}
			if !actMatches(req.TalentTypeNeeded, talent.Act) {
				continue
			}

			// Re-read the request to close the race between discovery and
			// send: the talent may have responded, or the request may have
			// left the pending state entirely.
			current, err := s.requests.Get(ctx, req.ID)
			if err != nil {
				slog.Error("failed to re-check event request", "event_request_id", req.ID, "error", err)
				continue
			}
			if !current.Status.AwaitingResponse() {
				continue
			}
			if current.HiddenFor(userID) || current.RespondedBy(userID) {
				continue
			}

			n := client.Notification{
				UserID:         userID,
				Title:          "Reminder: Respond to event request",
				Body:           fmt.Sprintf("Please respond to the %s request in %s scheduled for %s.", req.EventType, req.EventLocation, formatEventDate(req.EventDate)),
				URL:            "/talent-dashboard?eventRequestId=" + req.ID,
				EventRequestID: req.ID,
				Reminder:       true,
			}
			if s.deliver(ctx, n, userID, req.ID, model.KindEventRequest, windowStart) {
				rep.RemindersSent++
			}
		}
	}
}

// deliver claims the ledger slot for the pair and, on success, dispatches the
// push. The claim is an atomic insert-if-absent within the cooldown window,
// so overlapping passes settle on a single winner per pair.
func (s *Service) deliver(ctx context.Context, n client.Notification, userID, requestID string, kind model.RequestKind, windowStart time.Time) bool {
	if s.cooldown != nil {
		hit, err := s.cooldown.WasRecentlySent(ctx, userID, requestID)
		if err != nil {
			slog.Warn("cooldown cache check failed", "user_id", userID, "request_id", requestID, "error", err)
		} else if hit {
			return false
		}
	}

	claimed, err := s.ledger.Claim(ctx, model.LedgerEntry{
		UserID:    userID,
		RequestID: requestID,
		Kind:      kind,
		Title:     n.Title,
		Body:      n.Body,
		URL:       n.URL,
		SentAt:    time.Now().UTC(),
	}, windowStart)
	if err != nil {
		slog.Error("ledger claim failed", "user_id", userID, "request_id", requestID, "error", err)
		return false
	}
	if !claimed {
		return false
	}

	if err := s.push.Send(ctx, n); err != nil {
		// The claim stays in place: the pair becomes eligible again once the
		// cooldown elapses, matching at-most-once per window.
		slog.Error("failed to dispatch reminder push", "user_id", userID, "request_id", requestID, "error", err)
		return false
	}

	if s.cooldown != nil {
		if err := s.cooldown.MarkSent(ctx, userID, requestID); err != nil {
			slog.Warn("cooldown cache write failed", "user_id", userID, "request_id", requestID, "error", err)
		}
	}

	return true
}

// actMatches applies the pool's category filter: when a request names a
// needed talent type and the talent declares an act, the act must contain the
// needed type case-insensitively. A missing value on either side matches.
func actMatches(needed, act *string) bool {
	if needed == nil || act == nil {
		return true
	}
	return strings.Contains(strings.ToLower(*act), strings.ToLower(*needed))
}

// formatEventDate renders the short date used in reminder copy, or the
// placeholder when the request has no date yet.
func formatEventDate(t *time.Time) string {
	if t == nil {
		return "upcoming date"
	}
	return t.Format("Jan 2")
}
