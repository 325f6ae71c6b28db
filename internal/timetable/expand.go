package timetable

import (
	"errors"
	"fmt"
	"time"
)

// Slot is one weekly recurrence rule of a semester pattern.
type Slot struct {
	WeekDay   int // ISO, Monday = 1
	StartTime string
	EndTime   string
	SubjectID string
	GroupID   string
	TeacherID string
	RoomID    string
}

// Draft is a concrete session staged by expansion, before persistence.
type Draft struct {
	Date      time.Time
	StartsAt  time.Time
	EndsAt    time.Time
	WeekDay   int
	SubjectID string
	GroupID   string
	TeacherID string
	RoomID    string
}

var (
	ErrBadWeekDay  = errors.New("week day must be between 1 and 7")
	ErrBadInterval = errors.New("end time must be after start time")
)

// ParseClock parses an "HH:MM" time of day with minute precision.
func ParseClock(value string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(value, "%2d:%2d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid time %q", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q", value)
	}
	return hour, minute, nil
}

const dateLayout = "2006-01-02"

// Expand walks the calendar from start through end (inclusive) in the
// institution zone and stages one draft per slot occurrence, skipping
// excluded dates. Exclude keys use the YYYY-MM-DD form.
func Expand(start, end time.Time, exclude map[string]bool, slots []Slot, loc *time.Location) ([]Draft, error) {
	if end.Before(start) {
		return nil, errors.New("semester end precedes start")
	}
	type clock struct{ startH, startM, endH, endM int }
	clocks := make([]clock, len(slots))
	for i, slot := range slots {
		if slot.WeekDay < 1 || slot.WeekDay > 7 {
			return nil, ErrBadWeekDay
		}
		startH, startM, err := ParseClock(slot.StartTime)
		if err != nil {
			return nil, err
		}
		endH, endM, err := ParseClock(slot.EndTime)
		if err != nil {
			return nil, err
		}
		if endH*60+endM <= startH*60+startM {
			return nil, ErrBadInterval
		}
		clocks[i] = clock{startH, startM, endH, endM}
	}

	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)

	var drafts []Draft
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		if exclude[day.Format(dateLayout)] {
			continue
		}
		weekDay := ISOWeekday(day)
		for i, slot := range slots {
			if slot.WeekDay != weekDay {
				continue
			}
			c := clocks[i]
			drafts = append(drafts, Draft{
				Date:      day,
				StartsAt:  time.Date(day.Year(), day.Month(), day.Day(), c.startH, c.startM, 0, 0, loc).UTC(),
				EndsAt:    time.Date(day.Year(), day.Month(), day.Day(), c.endH, c.endM, 0, 0, loc).UTC(),
				WeekDay:   weekDay,
				SubjectID: slot.SubjectID,
				GroupID:   slot.GroupID,
				TeacherID: slot.TeacherID,
				RoomID:    slot.RoomID,
			})
		}
	}
	return drafts, nil
}
