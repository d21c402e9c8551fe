package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const Day = 24 * time.Hour

var dateFormats = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05-0700", // Without colon
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseTime accepts the date and timestamp shapes the backend and the
// flight provider emit.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   s,
		Message: "unable to parse time string",
	}
}

// ParseDate truncates any accepted timestamp to its calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeDate rewrites any accepted input as YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}

// DaysBetween returns ceil((end-start)/24h). ok is false when either date
// is unparseable or the range is not positive.
func DaysBetween(start, end string) (int, bool) {
	s, err := ParseTime(start)
	if err != nil {
		return 0, false
	}
	e, err := ParseTime(end)
	if err != nil {
		return 0, false
	}
	diff := e.Sub(s)
	if diff <= 0 {
		return 0, false
	}
	return int(math.Ceil(float64(diff) / float64(Day))), true
}

func AddDays(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, days)), nil
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration parses the PnDTnHnMnS subset used by flight offers,
// e.g. "PT7H15M".
func ParseISODuration(s string) (time.Duration, error) {
	m := isoDuration.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil || s == "P" || strings.HasSuffix(strings.ToUpper(s), "T") {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q", s)
	}

	units := []time.Duration{Day, time.Hour, time.Minute, time.Second}
	var total time.Duration
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, err
		}
		total += time.Duration(n) * unit
	}
	return total, nil
}

// DurationMinutes returns the minutes in an ISO duration, or 0 when it does
// not parse.
func DurationMinutes(s string) int {
	d, err := ParseISODuration(s)
	if err != nil {
		return 0
	}
	return int(d / time.Minute)
}
