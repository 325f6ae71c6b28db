// Package timetable holds the pure scheduling core: the semester window
// rule, expansion of weekly patterns into dated session drafts, and the
// single conflict checker every session-writing path goes through.
package timetable

import (
	"fmt"
	"time"
)

// SemesterInfo is the deterministic semester window derived from a date.
type SemesterInfo struct {
	Tag   string
	Start time.Time
	End   time.Time
}

// CurrentSemester maps a date to the academic semester containing it.
// September through January is S1 (Sep 1 to Jan 31), February through June
// is S2 (Feb 1 to Jun 30). July and August fall back to the ended S2.
func CurrentSemester(now time.Time, loc *time.Location) SemesterInfo {
	now = now.In(loc)
	year, month := now.Year(), int(now.Month())
	switch {
	case month >= 9:
		return SemesterInfo{
			Tag:   fmt.Sprintf("%d-%d-S1", year, year+1),
			Start: time.Date(year, time.September, 1, 0, 0, 0, 0, loc),
			End:   time.Date(year+1, time.January, 31, 0, 0, 0, 0, loc),
		}
	case month == 1:
		return SemesterInfo{
			Tag:   fmt.Sprintf("%d-%d-S1", year-1, year),
			Start: time.Date(year-1, time.September, 1, 0, 0, 0, 0, loc),
			End:   time.Date(year, time.January, 31, 0, 0, 0, 0, loc),
		}
	default: // February through August
		return SemesterInfo{
			Tag:   fmt.Sprintf("%d-%d-S2", year, year),
			Start: time.Date(year, time.February, 1, 0, 0, 0, 0, loc),
			End:   time.Date(year, time.June, 30, 0, 0, 0, 0, loc),
		}
	}
}

// ISOWeekday returns the ISO day number of t (Monday = 1 .. Sunday = 7).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
