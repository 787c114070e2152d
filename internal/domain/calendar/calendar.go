// Package calendar holds the due-date rules used by repayment schedules:
// month arithmetic with end-of-month clamping and weekend adjustment.
package calendar

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

type FirstDueRule string

const (
	SameDayNextMonth FirstDueRule = "same_day_next_month"
	EndOfMonth       FirstDueRule = "end_of_month"
)

type HolidayRule string

const (
	Exact               HolidayRule = "exact"
	NextBusinessDay     HolidayRule = "next_business_day"
	PreviousBusinessDay HolidayRule = "previous_business_day"
)

// HolidayFunc reports whether a date is a non-business day in addition to
// weekends. A nil HolidayFunc means only weekends are skipped.
type HolidayFunc func(date time.Time) bool

func (r FirstDueRule) Valid() bool {
	return r == SameDayNextMonth || r == EndOfMonth
}

func (r HolidayRule) Valid() bool {
	return r == Exact || r == NextBusinessDay || r == PreviousBusinessDay
}

// AddMonths moves base forward by n calendar months. With SameDayNextMonth the
// day of month is kept and clamped to the last day of the target month; with
// EndOfMonth the result is always the last day of the target month. Unknown
// rules behave like SameDayNextMonth.
func AddMonths(base time.Time, n int, rule FirstDueRule) time.Time {
	total := int(base.Month()) - 1 + n
	year := base.Year() + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)

	last := DaysIn(year, month)
	day := base.Day()
	if rule == EndOfMonth || day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, base.Location())
}

// AdjustBusinessDay moves date off weekends (and holidays, when isHoliday is
// set) according to rule. Exact and unknown rules return date unchanged.
func AdjustBusinessDay(date time.Time, rule HolidayRule, isHoliday HolidayFunc) time.Time {
	var step int
	switch rule {
	case NextBusinessDay:
		step = 1
	case PreviousBusinessDay:
		step = -1
	default:
		return date
	}

	for !IsBusinessDay(date, isHoliday) {
		date = date.AddDate(0, 0, step)
	}
	return date
}

func IsBusinessDay(date time.Time, isHoliday HolidayFunc) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return isHoliday == nil || !isHoliday(date)
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// HolidaySet builds a HolidayFunc from fixed calendar dates.
func HolidaySet(dates ...time.Time) HolidayFunc {
	if len(dates) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d.Format(DateLayout)] = struct{}{}
	}
	return func(date time.Time) bool {
		_, ok := set[date.Format(DateLayout)]
		return ok
	}
}

// ParseDate parses a YYYY-MM-DD date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ParseDates parses a list of YYYY-MM-DD dates, stopping at the first bad one.
func ParseDates(values []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := ParseDate(v)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// Midnight truncates t to its calendar date in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
