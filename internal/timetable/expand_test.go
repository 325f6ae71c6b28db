package timetable

import (
	"testing"
	"time"
)

func mustLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestParseClock(t *testing.T) {
	hour, minute, err := ParseClock("08:30")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if hour != 8 || minute != 30 {
		t.Fatalf("expected 8:30, got %d:%d", hour, minute)
	}
	for _, bad := range []string{"24:00", "12:60", "noon", ""} {
		if _, _, err := ParseClock(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestExpandWeeklyPattern(t *testing.T) {
	loc := mustLocation(t)
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, loc) // a Monday
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, loc)
	slots := []Slot{{
		WeekDay:   1,
		StartTime: "08:30",
		EndTime:   "10:00",
		SubjectID: "subject-1",
		GroupID:   "group-1",
		TeacherID: "teacher-1",
		RoomID:    "room-1",
	}}

	drafts, err := Expand(start, end, nil, slots, loc)
	if err != nil {
		t.Fatalf("expand error: %v", err)
	}
	// Sep 2025 through Jan 2026 holds 22 Mondays.
	if len(drafts) != 22 {
		t.Fatalf("expected 22 drafts, got %d", len(drafts))
	}
	for _, draft := range drafts {
		if draft.WeekDay != 1 {
			t.Fatalf("draft on week day %d, expected Monday", draft.WeekDay)
		}
		local := draft.StartsAt.In(loc)
		if local.Hour() != 8 || local.Minute() != 30 {
			t.Fatalf("draft starts at %s, expected 08:30 local", local.Format("15:04"))
		}
		if !draft.StartsAt.Before(draft.EndsAt) {
			t.Fatalf("draft interval inverted")
		}
	}
}

func TestExpandSkipsExcludedDates(t *testing.T) {
	loc := mustLocation(t)
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, loc)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, loc)
	slots := []Slot{{WeekDay: 4, StartTime: "14:00", EndTime: "16:00"}}

	all, err := Expand(start, end, nil, slots, loc)
	if err != nil {
		t.Fatalf("expand error: %v", err)
	}
	exclude := map[string]bool{"2025-12-25": true}
	kept, err := Expand(start, end, exclude, slots, loc)
	if err != nil {
		t.Fatalf("expand error: %v", err)
	}
	if len(kept) != len(all)-1 {
		t.Fatalf("expected one draft skipped, got %d of %d", len(kept), len(all))
	}
	for _, draft := range kept {
		if draft.Date.In(loc).Format("2006-01-02") == "2025-12-25" {
			t.Fatalf("excluded date still expanded")
		}
	}
}

func TestExpandRejectsBadSlots(t *testing.T) {
	loc := mustLocation(t)
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 7)

	if _, err := Expand(start, end, nil, []Slot{{WeekDay: 0, StartTime: "08:00", EndTime: "09:00"}}, loc); err != ErrBadWeekDay {
		t.Fatalf("expected ErrBadWeekDay, got %v", err)
	}
	if _, err := Expand(start, end, nil, []Slot{{WeekDay: 8, StartTime: "08:00", EndTime: "09:00"}}, loc); err != ErrBadWeekDay {
		t.Fatalf("expected ErrBadWeekDay, got %v", err)
	}
	if _, err := Expand(start, end, nil, []Slot{{WeekDay: 1, StartTime: "10:00", EndTime: "10:00"}}, loc); err != ErrBadInterval {
		t.Fatalf("expected ErrBadInterval, got %v", err)
	}
	if _, err := Expand(end, start, nil, nil, loc); err == nil {
		t.Fatalf("expected inverted window to be rejected")
	}
}

func TestCurrentSemester(t *testing.T) {
	loc := mustLocation(t)
	cases := []struct {
		date time.Time
		tag  string
	}{
		{time.Date(2025, 9, 15, 12, 0, 0, 0, loc), "2025-2026-S1"},
		{time.Date(2025, 12, 1, 12, 0, 0, 0, loc), "2025-2026-S1"},
		{time.Date(2026, 1, 10, 12, 0, 0, 0, loc), "2025-2026-S1"},
		{time.Date(2026, 2, 1, 12, 0, 0, 0, loc), "2026-2026-S2"},
		{time.Date(2026, 6, 30, 12, 0, 0, 0, loc), "2026-2026-S2"},
		{time.Date(2026, 7, 15, 12, 0, 0, 0, loc), "2026-2026-S2"},
	}
	for _, tc := range cases {
		info := CurrentSemester(tc.date, loc)
		if info.Tag != tc.tag {
			t.Fatalf("date %s: expected %s, got %s", tc.date.Format("2006-01-02"), tc.tag, info.Tag)
		}
		if !info.Start.Before(info.End) {
			t.Fatalf("semester window inverted for %s", tc.tag)
		}
	}
}

func TestISOWeekday(t *testing.T) {
	monday := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if got := ISOWeekday(monday.AddDate(0, 0, i)); got != i+1 {
			t.Fatalf("day offset %d: expected %d, got %d", i, i+1, got)
		}
	}
}
