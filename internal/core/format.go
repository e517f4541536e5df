package core

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount for display: currency symbol followed
// by the value fixed to exactly 2 fractional digits, no thousands
// separators. Rounding is half away from zero (3.005 -> "3.01"). An
// unrecognized currency falls back to its own code as the symbol.
func FormatAmount(amount decimal.Decimal, currency Currency) string {
	return currency.Symbol() + amount.StringFixed(2)
}

// FormatTimeOfDay renders the time portion of a stored timestamp on a
// 12-hour clock, e.g. "2:34 PM". Hours are not zero-padded, minutes
// always are. Malformed input degrades to the raw string.
func FormatTimeOfDay(timestamp string) string {
	t, err := time.Parse(timestampLayout, timestamp)
	if err != nil {
		return timestamp
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if t.Hour() >= 12 {
		suffix = "PM"
	}
	minute := t.Minute()
	mm := strconv.Itoa(minute)
	if minute < 10 {
		mm = "0" + mm
	}
	return strconv.Itoa(hour) + ":" + mm + " " + suffix
}

// FormatCalendarDate renders a YYYY-MM-DD date as "Feb 15, 2026".
// Malformed input degrades to the raw string.
func FormatCalendarDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

// DateSectionLabel returns the history section label for a date:
// "Today" or "Yesterday" by exact match against now's local calendar,
// otherwise the formatted calendar date.
func DateSectionLabel(date string, now time.Time) string {
	today := LocalDate(now)
	switch date {
	case today:
		return "Today"
	case PreviousDate(today):
		return "Yesterday"
	}
	return FormatCalendarDate(date)
}
