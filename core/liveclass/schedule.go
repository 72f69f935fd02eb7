package liveclass

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// DayFilter selects live classes by their date relative to today.
type DayFilter string

const (
	DayToday    DayFilter = "today"
	DayTomorrow DayFilter = "tomorrow"
	DayThisWeek DayFilter = "thisWeek"
)

const timeLayout = "3:04 PM"

var ErrUnknownDay = errors.New("unknown day filter")

func ParseDayFilter(s string) (DayFilter, error) {
	switch d := DayFilter(s); d {
	case DayToday, DayTomorrow, DayThisWeek:
		return d, nil
	}
	return "", ErrUnknownDay
}

// Matches compares the class date with now's date; the week runs Sunday to Saturday.
func (d DayFilter) Matches(date, now time.Time) bool {
	loc := now.Location()
	today := core.StartOfDay(now, loc)
	day := core.StartOfDay(date, loc)

	switch d {
	case DayToday:
		return day.Equal(today)
	case DayTomorrow:
		return day.Equal(today.AddDate(0, 0, 1))
	case DayThisWeek:
		weekStart := core.StartOfWeek(now, loc)
		return !day.Before(weekStart) && day.Before(weekStart.AddDate(0, 0, 7))
	}
	return true
}

func FilterDay(lcs []LiveClass, d DayFilter, now time.Time) []LiveClass {
	filtered := make([]LiveClass, 0, len(lcs))
	for _, lc := range lcs {
		if d.Matches(lc.Date, now) {
			filtered = append(filtered, lc)
		}
	}
	return filtered
}

// StatusLabel is the badge shown next to a class: "Live Now", "In N mins" within the hour, else the start time.
func StatusLabel(lc LiveClass, now time.Time) string {
	if lc.Status == StatusLive {
		return "Live Now"
	}
	mins := int(math.Round(lc.StartTime.Sub(now).Minutes()))
	if mins >= 0 && mins < 60 {
		return fmt.Sprintf("In %d mins", mins)
	}
	return lc.StartTime.In(now.Location()).Format(timeLayout)
}
