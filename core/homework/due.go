package homework

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// DueBucket selects homeworks by due date relative to today.
type DueBucket string

const (
	DueToday     DueBucket = "today"
	DueYesterday DueBucket = "yesterday"
	DueThisWeek  DueBucket = "thisWeek"
	DueLastWeek  DueBucket = "lastWeek"
)

var ErrUnknownBucket = errors.New("unknown due date filter")

func ParseDueBucket(s string) (DueBucket, error) {
	switch b := DueBucket(s); b {
	case DueToday, DueYesterday, DueThisWeek, DueLastWeek:
		return b, nil
	}
	return "", ErrUnknownBucket
}

// Matches compares dates only (midnight in now's location); weeks start on Sunday and "this week" stops at today.
func (b DueBucket) Matches(due, now time.Time) bool {
	loc := now.Location()
	today := core.StartOfDay(now, loc)
	day := core.StartOfDay(due, loc)

	switch b {
	case DueToday:
		return day.Equal(today)
	case DueYesterday:
		return day.Equal(today.AddDate(0, 0, -1))
	case DueThisWeek:
		weekStart := core.StartOfWeek(now, loc)
		return !day.Before(weekStart) && !day.After(today)
	case DueLastWeek:
		weekStart := core.StartOfWeek(now, loc)
		lastWeekStart := weekStart.AddDate(0, 0, -7)
		lastWeekEnd := weekStart.AddDate(0, 0, -1)
		return !day.Before(lastWeekStart) && !day.After(lastWeekEnd)
	}
	return true
}

// FilterDue keeps the homeworks whose due date falls in b.
func FilterDue(hws []Homework, b DueBucket, now time.Time) []Homework {
	filtered := make([]Homework, 0, len(hws))
	for _, hw := range hws {
		if b.Matches(hw.DueDate, now) {
			filtered = append(filtered, hw)
		}
	}
	return filtered
}
