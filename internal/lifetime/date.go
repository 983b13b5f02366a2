package lifetime

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// CalendarDate is a date without a time of day.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day}
}

// ParseCalendarDate parses an ISO date (YYYY-MM-DD) and rejects dates that
// do not exist on the calendar, like 2023-02-30.
func ParseCalendarDate(value string) (CalendarDate, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid calendar date %q: %w", value, err)
	}

	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) CalendarDate {
	year, month, day := t.Date()
	return CalendarDate{Year: year, Month: month, Day: day}
}

func (d CalendarDate) IsValid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}

	return d.Day <= daysIn(d.Year, d.Month)
}

// AddYears shifts the date by n calendar years. Feb 29 lands on Feb 28 when
// the target year is not a leap year.
func (d CalendarDate) AddYears(n int) CalendarDate {
	year := d.Year + n
	day := min(d.Day, daysIn(year, d.Month))

	return CalendarDate{Year: year, Month: d.Month, Day: day}
}

func (d CalendarDate) Before(other CalendarDate) bool {
	return d.midnight().Before(other.midnight())
}

func (d CalendarDate) After(other CalendarDate) bool {
	return d.midnight().After(other.midnight())
}

// DaysUntil counts calendar days from d to other. Negative if other is earlier.
func (d CalendarDate) DaysUntil(other CalendarDate) int {
	return int((other.midnight().Unix() - d.midnight().Unix()) / secondsPerDay)
}

func (d CalendarDate) String() string {
	return d.midnight().Format(time.DateOnly)
}

// midnight is always UTC so day differences never see a DST shift.
func (d CalendarDate) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
