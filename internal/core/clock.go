package core

import "time"

const (
	timestampLayout = "2006-01-02T15:04:05.000"
	dateLayout      = "2006-01-02"
)

// LocalTimestamp renders t in the local timezone as
// YYYY-MM-DDTHH:mm:ss.sss with no offset. Storing local wall time, not
// UTC, keeps date-only comparisons in sync with the user's notion of
// "today" around midnight.
func LocalTimestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}

// LocalDate renders t in the local timezone as YYYY-MM-DD.
func LocalDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// DateOf returns the calendar-date portion of a stored timestamp: the
// first 10 characters, exactly as stamped at insert time. Deliberately
// not a timezone-aware re-derivation.
func DateOf(timestamp string) string {
	if len(timestamp) < len(dateLayout) {
		return timestamp
	}
	return timestamp[:len(dateLayout)]
}

// PreviousDate returns the calendar date immediately preceding date,
// handling month and year rollover. Malformed input is returned as-is.
func PreviousDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, -1).Format(dateLayout)
}
