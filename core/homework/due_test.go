package homework

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueBucket_Matches(t *testing.T) {
	// Wednesday; the week started on Sunday 3rd
	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	day := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC) }

	tests := []struct {
		name   string
		bucket DueBucket
		due    time.Time
		want   bool
	}{
		{"today earlier", DueToday, day(6, 1), true},
		{"today later", DueToday, day(6, 23), true},
		{"today tomorrow", DueToday, day(7, 0), false},
		{"yesterday", DueYesterday, day(5, 18), true},
		{"yesterday today", DueYesterday, day(6, 0), false},
		{"this week sunday", DueThisWeek, day(3, 0), true},
		{"this week today", DueThisWeek, day(6, 22), true},
		{"this week after today", DueThisWeek, day(8, 9), false},
		{"this week saturday before", DueThisWeek, day(2, 9), false},
		{"last week sunday", DueLastWeek, time.Date(2024, 2, 25, 8, 0, 0, 0, time.UTC), true},
		{"last week saturday", DueLastWeek, day(2, 23), true},
		{"last week this sunday", DueLastWeek, day(3, 0), false},
		{"last week two weeks ago", DueLastWeek, time.Date(2024, 2, 24, 8, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bucket.Matches(tt.due, now))
		})
	}
}

func TestDueBucket_Matches_Location(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 3, 6, 1, 0, 0, 0, loc)
	// 20:00 UTC on the 5th is already the 6th in IST
	due := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)

	assert.True(t, DueToday.Matches(due, now))
	assert.False(t, DueYesterday.Matches(due, now))
}

func TestParseDueBucket(t *testing.T) {
	b, err := ParseDueBucket("lastWeek")
	assert.NoError(t, err)
	assert.Equal(t, DueLastWeek, b)

	_, err = ParseDueBucket("nextYear")
	assert.ErrorIs(t, err, ErrUnknownBucket)
}

func TestFilterDue(t *testing.T) {
	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	hws := []Homework{
		{ID: 1, DueDate: now.AddDate(0, 0, 1)},
		{ID: 2, DueDate: now},
		{ID: 3, DueDate: now.AddDate(0, 0, -1)},
	}
	got := FilterDue(hws, DueToday, now)
	if assert.Len(t, got, 1) {
		assert.Equal(t, 2, got[0].ID)
	}
}
