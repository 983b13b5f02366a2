package lifetime

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultLifeExpectancyYears = 90
	daysPerWeek                = 7
	formattedDateLayout        = "January 02, 2006"
)

var ErrInvalidRange = errors.New("reference date is after now")

type Config struct {
	LifeExpectancyYears int
}

func DefaultConfig() Config {
	return Config{LifeExpectancyYears: DefaultLifeExpectancyYears}
}

// Split is a whole count plus the days left over.
type Split struct {
	Whole         int
	RemainderDays int
}

type ElapsedResult struct {
	Reference   CalendarDate
	Now         time.Time
	DayOfWeek   time.Weekday
	DaysElapsed int
	Weeks       Split
	Years       Split
}

func (r ElapsedResult) DayName() string {
	return r.DayOfWeek.String()
}

func (r ElapsedResult) FormattedDate() string {
	return r.Now.Format(formattedDateLayout)
}

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

func (c *Calculator) Config() Config {
	return c.cfg
}

// Compute measures the time elapsed between reference and the calendar date
// of now. The result only depends on its two arguments.
func (c *Calculator) Compute(reference CalendarDate, now time.Time) (ElapsedResult, error) {
	if !reference.IsValid() {
		return ElapsedResult{}, fmt.Errorf("invalid reference date %s", reference)
	}

	today := DateOf(now)
	if today.Before(reference) {
		return ElapsedResult{}, fmt.Errorf("%w: reference %s, today %s", ErrInvalidRange, reference, today)
	}

	days := reference.DaysUntil(today)
	years := wholeYears(reference, today)

	return ElapsedResult{
		Reference:   reference,
		Now:         now,
		DayOfWeek:   now.Weekday(),
		DaysElapsed: days,
		Weeks: Split{
			Whole:         days / daysPerWeek,
			RemainderDays: days % daysPerWeek,
		},
		Years: Split{
			Whole:         years,
			RemainderDays: reference.AddYears(years).DaysUntil(today),
		},
	}, nil
}

// wholeYears is the number of anniversaries of reference on or before today.
func wholeYears(reference, today CalendarDate) int {
	years := today.Year - reference.Year
	if reference.AddYears(years).After(today) {
		years--
	}

	return years
}
