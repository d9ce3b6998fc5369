package model

import "testing"

func TestBookingStatus_AwaitingResponse(t *testing.T) {
	t.Parallel()

	awaiting := []BookingStatus{BookingPending, BookingPendingApproval}
	for _, s := range awaiting {
		if !s.AwaitingResponse() {
			t.Fatalf("expected %q to be awaiting response", s)
		}
	}

	settled := []BookingStatus{BookingAccepted, BookingDeclined, BookingCancelled, BookingCompleted}
	for _, s := range settled {
		if s.AwaitingResponse() {
			t.Fatalf("expected %q to not be awaiting response", s)
		}
	}
}

func TestEventRequest_ResponseSets(t *testing.T) {
	t.Parallel()

	req := EventRequest{
		HiddenByTalents:   []string{"user-hidden"},
		AcceptedByTalents: []string{"user-accepted"},
		DeclinedByTalents: []string{"user-declined"},
	}

	if !req.RespondedBy("user-accepted") || !req.RespondedBy("user-declined") {
		t.Fatalf("expected accepted and declined users to count as responded")
	}
	if req.RespondedBy("user-hidden") {
		t.Fatalf("hidden is not a response")
	}
	if !req.HiddenFor("user-hidden") {
		t.Fatalf("expected user-hidden to be hidden")
	}
	if req.RespondedBy("user-fresh") || req.HiddenFor("user-fresh") {
		t.Fatalf("expected untouched user to be neither responded nor hidden")
	}
}
