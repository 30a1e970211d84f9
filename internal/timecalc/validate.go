package timecalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/workhours/internal/model"
)

// Layouts for the stored date and time-of-day strings.
const (
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
	DateTimeLayout = DateLayout + " " + ClockLayout
)

// MaxSessionHours is the longest raw session accepted by ValidateSession.
const MaxSessionHours = 24.0

// Validation errors. They are shown to the user as-is, so the messages are
// phrased for people rather than logs.
var (
	ErrInvalidFormat       = errors.New("invalid date/time format")
	ErrEndBeforeStart      = errors.New("end date/time is before start date/time")
	ErrDurationTooLong     = errors.New("duration cannot exceed 24 hours")
	ErrDurationNonPositive = errors.New("duration must be greater than 0")
)

// ParseDateTime combines an ISO date and an HH:MM time into a single instant.
// All values are interpreted in UTC so that DST transitions never distort
// elapsed time.
func ParseDateTime(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, date+" "+clock, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidFormat, date, clock)
	}
	return t, nil
}

// ParseClock parses an HH:MM time of day and returns minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as zero-padded HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SplitClock splits an HH:MM string into its hour and minute components,
// as stored on break fields.
func SplitClock(clock string) (string, string, error) {
	mins, err := ParseClock(clock)
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("%02d", mins/60), fmt.Sprintf("%02d", mins%60), nil
}

// Session is a parsed start/end pair.
type Session struct {
	Start time.Time
	End   time.Time
}

// Hours returns the raw elapsed time in fractional hours.
func (s Session) Hours() float64 {
	return s.End.Sub(s.Start).Seconds() / 3600
}

// ParseSession parses both endpoints without applying any range checks.
func ParseSession(startDate, startTime, endDate, endTime string) (Session, error) {
	start, err := ParseDateTime(startDate, startTime)
	if err != nil {
		return Session{}, err
	}
	end, err := ParseDateTime(endDate, endTime)
	if err != nil {
		return Session{}, err
	}
	return Session{Start: start, End: end}, nil
}

// ValidateSession checks a raw start/end pair and returns the raw elapsed
// hours. The accepted range is (0, 24]; breaks are not taken into account.
func ValidateSession(startDate, startTime, endDate, endTime string) (float64, error) {
	s, err := ParseSession(startDate, startTime, endDate, endTime)
	if err != nil {
		return 0, err
	}
	return checkRange(s)
}

func checkRange(s Session) (float64, error) {
	if s.End.Before(s.Start) {
		return 0, ErrEndBeforeStart
	}
	hours := s.Hours()
	if hours > MaxSessionHours {
		return 0, fmt.Errorf("%w (got %.2fh)", ErrDurationTooLong, hours)
	}
	if hours <= 0 {
		return 0, ErrDurationNonPositive
	}
	return hours, nil
}

// parseComponent parses a numeric hour or minute string within [0, limit].
// Unpadded values such as "5" are accepted.
func parseComponent(s string, limit int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > limit {
		return 0, fmt.Errorf("%w: component %q", ErrInvalidFormat, s)
	}
	return n, nil
}

// BreakWindow builds the break interval on the given date. Breaks are always
// anchored to the session's start date.
func BreakWindow(date string, b model.BreakConfig) (Session, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %q", ErrInvalidFormat, date)
	}
	at := func(hour, minute string) (time.Time, error) {
		h, err := parseComponent(hour, 23)
		if err != nil {
			return time.Time{}, err
		}
		m, err := parseComponent(minute, 59)
		if err != nil {
			return time.Time{}, err
		}
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), nil
	}
	start, err := at(b.StartHour, b.StartMinute)
	if err != nil {
		return Session{}, err
	}
	end, err := at(b.EndHour, b.EndMinute)
	if err != nil {
		return Session{}, err
	}
	return Session{Start: start, End: end}, nil
}
