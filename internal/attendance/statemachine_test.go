package attendance

import (
	"errors"
	"testing"

	"github.com/medali150/university-platform-sub001/internal/db"
)

func TestLegalTransitions(t *testing.T) {
	cases := []struct {
		from  db.AbsenceStatus
		event Event
		to    db.AbsenceStatus
	}{
		{db.AbsenceStatusUnjustified, EventSubmitJustification, db.AbsenceStatusPendingReview},
		{db.AbsenceStatusPendingReview, EventSubmitJustification, db.AbsenceStatusPendingReview},
		{db.AbsenceStatusPendingReview, EventApprove, db.AbsenceStatusJustified},
		{db.AbsenceStatusPendingReview, EventReject, db.AbsenceStatusUnjustified},
		{db.AbsenceStatusJustified, EventReopen, db.AbsenceStatusPendingReview},
	}
	for _, tc := range cases {
		got, err := Next(tc.from, tc.event)
		if err != nil {
			t.Fatalf("%s + %s: unexpected error %v", tc.from, tc.event, err)
		}
		if got != tc.to {
			t.Fatalf("%s + %s: expected %s, got %s", tc.from, tc.event, tc.to, got)
		}
	}
}

func TestIllegalTransitions(t *testing.T) {
	cases := []struct {
		from  db.AbsenceStatus
		event Event
	}{
		{db.AbsenceStatusUnjustified, EventApprove},
		{db.AbsenceStatusUnjustified, EventReject},
		{db.AbsenceStatusUnjustified, EventReopen},
		{db.AbsenceStatusJustified, EventSubmitJustification},
		{db.AbsenceStatusJustified, EventApprove},
		{db.AbsenceStatusJustified, EventReject},
		{db.AbsenceStatusPendingReview, EventReopen},
	}
	for _, tc := range cases {
		got, err := Next(tc.from, tc.event)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s + %s: expected ErrInvalidTransition, got %v", tc.from, tc.event, err)
		}
		if got != tc.from {
			t.Fatalf("%s + %s: status must not move on error, got %s", tc.from, tc.event, got)
		}
	}
}

func TestCanReview(t *testing.T) {
	if !CanReview(db.AbsenceStatusPendingReview) {
		t.Fatalf("pending_review must accept review")
	}
	if CanReview(db.AbsenceStatusUnjustified) || CanReview(db.AbsenceStatusJustified) {
		t.Fatalf("only pending_review accepts review")
	}
}
