package timetable

import "time"

// Booking is the conflict checker's view of a session: its identity plus
// the three contended resources and the half-open [StartsAt, EndsAt)
// interval.
type Booking struct {
	ID        string
	RoomID    string
	TeacherID string
	GroupID   string
	StartsAt  time.Time
	EndsAt    time.Time
}

// Conflict names two bookings sharing a resource over an intersecting
// interval. SessionID is empty for a staged draft not yet persisted.
type Conflict struct {
	Resource      string // "room", "teacher" or "group"
	Date          time.Time
	OverlapStart  time.Time
	OverlapEnd    time.Time
	SessionID     string
	WithSessionID string
}

// FindConflicts checks every draft against the other drafts and against the
// existing bookings. Intervals are half-open: a session ending at 12:00
// does not conflict with one starting at 12:00.
func FindConflicts(drafts, existing []Booking) []Conflict {
	var conflicts []Conflict
	for i, a := range drafts {
		for _, b := range drafts[i+1:] {
			conflicts = appendConflicts(conflicts, a, b)
		}
		for _, b := range existing {
			if a.ID != "" && a.ID == b.ID {
				continue
			}
			conflicts = appendConflicts(conflicts, a, b)
		}
	}
	return conflicts
}

func appendConflicts(conflicts []Conflict, a, b Booking) []Conflict {
	if !overlaps(a, b) {
		return conflicts
	}
	start := a.StartsAt
	if b.StartsAt.After(start) {
		start = b.StartsAt
	}
	end := a.EndsAt
	if b.EndsAt.Before(end) {
		end = b.EndsAt
	}
	for _, resource := range sharedResources(a, b) {
		conflicts = append(conflicts, Conflict{
			Resource:      resource,
			Date:          start,
			OverlapStart:  start,
			OverlapEnd:    end,
			SessionID:     a.ID,
			WithSessionID: b.ID,
		})
	}
	return conflicts
}

func overlaps(a, b Booking) bool {
	return a.StartsAt.Before(b.EndsAt) && b.StartsAt.Before(a.EndsAt)
}

func sharedResources(a, b Booking) []string {
	var out []string
	if a.RoomID != "" && a.RoomID == b.RoomID {
		out = append(out, "room")
	}
	if a.TeacherID != "" && a.TeacherID == b.TeacherID {
		out = append(out, "teacher")
	}
	if a.GroupID != "" && a.GroupID == b.GroupID {
		out = append(out, "group")
	}
	return out
}
