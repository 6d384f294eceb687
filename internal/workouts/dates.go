package workouts

import (
	"regexp"
	"time"
)

// DayFormat is the calendar day key format used everywhere: dates are
// compared as plain strings, which works because the format sorts
// lexicographically. All day math is done in UTC.
const DayFormat = "2006-01-02"

var dayRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func IsValidDay(day string) bool {
	if !dayRegex.MatchString(day) {
		return false
	}
	_, err := time.Parse(DayFormat, day)
	return err == nil
}

func DayKey(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

func parseDay(day string) time.Time {
	t, err := time.Parse(DayFormat, day)
	if err != nil {
		return time.Time{}
	}
	return t
}

func addDays(day string, delta int) string {
	return parseDay(day).AddDate(0, 0, delta).Format(DayFormat)
}

// startOfISOWeek returns the Monday of the week the given day falls in.
func startOfISOWeek(day string) string {
	t := parseDay(day)
	mondayOffset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -mondayOffset).Format(DayFormat)
}

func weekdayShort(day string) string {
	return parseDay(day).Format("Mon")
}
