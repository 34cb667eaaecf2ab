package dateutil

import (
	"time"
)

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths adds months to a date, clamping to the last day of the target month
// (Jan 31 + 1 month is Feb 28/29, not Mar 3)
func AddMonths(date time.Time, months int) time.Time {
	total := int(date.Month()) - 1 + months
	year := date.Year() + total/12
	m := total % 12
	if m < 0 {
		m += 12
		year--
	}
	month := time.Month(m + 1)
	day := date.Day()
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// MonthsBetween counts whole calendar months from one date to another
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() && to.Day() != DaysInMonth(to.Year(), to.Month()) {
		months--
	}
	return months
}

// FirstOfMonth returns midnight UTC on the first day of the date's month
func FirstOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date in UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
