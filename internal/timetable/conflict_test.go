package timetable

import (
	"testing"
	"time"
)

func booking(id, room, teacher, group string, startHour, startMin, endHour, endMin int) Booking {
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	return Booking{
		ID:        id,
		RoomID:    room,
		TeacherID: teacher,
		GroupID:   group,
		StartsAt:  day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		EndsAt:    day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestFindConflictsRoomOverlap(t *testing.T) {
	drafts := []Booking{booking("", "room-1", "t1", "g1", 10, 0, 11, 30)}
	existing := []Booking{booking("sess-9", "room-1", "t2", "g2", 9, 0, 10, 30)}

	conflicts := FindConflicts(drafts, existing)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	c := conflicts[0]
	if c.Resource != "room" {
		t.Fatalf("expected room conflict, got %s", c.Resource)
	}
	if c.WithSessionID != "sess-9" {
		t.Fatalf("expected conflict with sess-9, got %q", c.WithSessionID)
	}
	if got := c.OverlapStart.Format("15:04"); got != "10:00" {
		t.Fatalf("overlap start %s, expected 10:00", got)
	}
	if got := c.OverlapEnd.Format("15:04"); got != "10:30" {
		t.Fatalf("overlap end %s, expected 10:30", got)
	}
}

func TestFindConflictsHalfOpenBoundary(t *testing.T) {
	drafts := []Booking{booking("", "room-1", "t1", "g1", 12, 0, 13, 0)}
	existing := []Booking{booking("sess-1", "room-1", "t1", "g1", 11, 0, 12, 0)}
	if conflicts := FindConflicts(drafts, existing); len(conflicts) != 0 {
		t.Fatalf("back-to-back sessions must not conflict, got %d", len(conflicts))
	}
}

func TestFindConflictsTeacherAndGroup(t *testing.T) {
	drafts := []Booking{booking("", "room-1", "t1", "g1", 10, 0, 12, 0)}
	existing := []Booking{booking("sess-2", "room-2", "t1", "g1", 11, 0, 13, 0)}

	conflicts := FindConflicts(drafts, existing)
	if len(conflicts) != 2 {
		t.Fatalf("expected teacher and group conflicts, got %d", len(conflicts))
	}
	resources := map[string]bool{}
	for _, c := range conflicts {
		resources[c.Resource] = true
	}
	if !resources["teacher"] || !resources["group"] {
		t.Fatalf("expected teacher and group, got %v", resources)
	}
}

func TestFindConflictsAmongDrafts(t *testing.T) {
	drafts := []Booking{
		booking("", "room-1", "t1", "g1", 10, 0, 11, 0),
		booking("", "room-1", "t2", "g2", 10, 30, 11, 30),
	}
	conflicts := FindConflicts(drafts, nil)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 draft-draft conflict, got %d", len(conflicts))
	}
	if conflicts[0].Resource != "room" {
		t.Fatalf("expected room, got %s", conflicts[0].Resource)
	}
}

func TestFindConflictsSkipsOwnSession(t *testing.T) {
	updated := booking("sess-5", "room-1", "t1", "g1", 10, 0, 11, 0)
	existing := []Booking{booking("sess-5", "room-1", "t1", "g1", 10, 0, 11, 0)}
	if conflicts := FindConflicts([]Booking{updated}, existing); len(conflicts) != 0 {
		t.Fatalf("a session must not conflict with itself, got %d", len(conflicts))
	}
}
