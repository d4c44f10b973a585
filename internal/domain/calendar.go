package domain

import (
	"strconv"
	"time"
)

// Day is a calendar day a puzzle belongs to
type Day struct {
	Date time.Time
}

// NewDay truncates t to its calendar date in t's location
func NewDay(t time.Time) Day {
	return Day{Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

// DateString returns date in YYYY-MM-DD format
func (d Day) DateString() string {
	return d.Date.Format("2006-01-02")
}

// Weekday returns the English day name
func (d Day) Weekday() string {
	return d.Date.Weekday().String()
}

// DateKey concatenates year, zero-based month and day of month as decimal digits.
// 2026-10-15 gives 2026915.
func (d Day) DateKey() int {
	key := strconv.Itoa(d.Date.Year()) +
		strconv.Itoa(int(d.Date.Month())-1) +
		strconv.Itoa(d.Date.Day())
	n, _ := strconv.Atoi(key)
	return n
}

// DaysSinceEpoch counts whole days from 1970-01-01 to this calendar date
func (d Day) DaysSinceEpoch() int {
	utc := time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, time.UTC)
	return int(utc.Unix() / 86400)
}

// DisplayString returns user-friendly date string
func (d Day) DisplayString() string {
	return d.Date.Format("Monday, 2 Jan 2006")
}
