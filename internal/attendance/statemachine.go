// Package attendance defines the absence justification state machine as an
// explicit transition table; string mapping stays at the HTTP boundary.
package attendance

import (
	"errors"

	"github.com/medali150/university-platform-sub001/internal/db"
)

type Event string

const (
	EventSubmitJustification Event = "submit_justification"
	EventApprove             Event = "approve"
	EventReject              Event = "reject"
	EventReopen              Event = "reopen"
)

// ErrInvalidTransition is returned when the event is not allowed from the
// current status; callers map it to CONFLICT without mutating state.
var ErrInvalidTransition = errors.New("invalid absence transition")

type transitionKey struct {
	from  db.AbsenceStatus
	event Event
}

var transitions = map[transitionKey]db.AbsenceStatus{
	{db.AbsenceStatusUnjustified, EventSubmitJustification}:   db.AbsenceStatusPendingReview,
	{db.AbsenceStatusPendingReview, EventSubmitJustification}: db.AbsenceStatusPendingReview,
	{db.AbsenceStatusPendingReview, EventApprove}:             db.AbsenceStatusJustified,
	{db.AbsenceStatusPendingReview, EventReject}:              db.AbsenceStatusUnjustified,
	{db.AbsenceStatusJustified, EventReopen}:                  db.AbsenceStatusPendingReview,
}

// Next returns the status reached by applying event from the given status.
func Next(from db.AbsenceStatus, event Event) (db.AbsenceStatus, error) {
	to, ok := transitions[transitionKey{from, event}]
	if !ok {
		return from, ErrInvalidTransition
	}
	return to, nil
}

// CanReview reports whether the status accepts a review decision.
func CanReview(status db.AbsenceStatus) bool {
	return status == db.AbsenceStatusPendingReview
}
