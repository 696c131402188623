package core

import (
	"errors"
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

type (
	// Date is a calendar date without a time component. The wire form is
	// YYYY-MM-DD.
	Date struct {
		time.Time
	}

	// Month identifies one calendar month. The wire form is YYYY-MM.
	Month struct {
		Year  int
		Month time.Month
	}
)

var ErrInvalidDate = errors.New("invalid date")

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// ToMonth returns the calendar month the date falls in.
func (d Date) ToMonth() Month {
	return Month{Year: d.Time.Year(), Month: d.Time.Month()}
}

// Before reports whether d is strictly before other, comparing dates only.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// NewMonth creates a Month from a year and month number.
func NewMonth(year, month int) Month {
	return Month{Year: year, Month: time.Month(month)}
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start returns the first day of the month.
func (m Month) Start() Date {
	return NewDate(m.Year, int(m.Month), 1)
}

// End returns the last day of the month.
func (m Month) End() Date {
	// Day zero of the following month normalizes to the last day of this one.
	return Date{Time: time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC)}
}

// Contains reports whether d falls inside the month.
func (m Month) Contains(d Date) bool {
	return d.Time.Year() == m.Year && d.Time.Month() == m.Month
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// WithinRange reports whether the month overlaps the inclusive [start, end]
// date interval.
func (m Month) WithinRange(start, end Date) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !m.End().Before(start) && !m.Start().After(end)
}
