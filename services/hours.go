package services

import (
	"regexp"
	"time"
)

// Opening policy. Stored dates and times carry no zone marker, so the
// whole package reads them as UTC; callers normalize "now" the same way.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"

	openingMinute = 10*60 + 30 // 10:30
	closingMinute = 21*60 + 30 // 21:30, last accepted booking
)

// ClosedWeekday is the one weekday on which no reservations are taken.
const ClosedWeekday = time.Tuesday

var timePattern = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeFormat reports whether clock is 24-hour HH:MM.
func ValidTimeFormat(clock string) bool {
	return timePattern.MatchString(clock)
}

// CombineDateTime parses a YYYY-MM-DD date and HH:MM clock into one UTC moment.
func CombineDateTime(date, clock string) (time.Time, error) {
	return time.Parse(dateTimeLayout, date+" "+clock)
}

// IsPast reports whether the date/clock pair is at or before now.
// Unparseable input is not the past; format checks run separately.
func IsPast(date, clock string, now time.Time) bool {
	at, err := CombineDateTime(date, clock)
	if err != nil {
		return false
	}
	return !at.After(now.UTC())
}

// IsClosedDay reports whether the date falls on the closed weekday.
func IsClosedDay(date string) bool {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	return day.Weekday() == ClosedWeekday
}

// WithinBusinessHours reports whether clock lies in [10:30, 21:30].
func WithinBusinessHours(clock string) bool {
	if !ValidTimeFormat(clock) {
		return false
	}
	minute := int(clock[0]-'0')*600 + int(clock[1]-'0')*60 +
		int(clock[3]-'0')*10 + int(clock[4]-'0')
	return minute >= openingMinute && minute <= closingMinute
}
