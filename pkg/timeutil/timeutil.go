// Package timeutil holds the date and duration helpers shared by the
// report renderer and the CLI argument parser.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatSpan renders d as HH:MM:SS. Hours are not wrapped at 24, so a
// 90000-second span renders as "25:00:00". Negative spans render as zero.
func FormatSpan(d time.Duration) string {
	total := int64(d.Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// ParseDate parses a day-first date in one of the forms DD, DD.MM or
// DD.MM.YY, each component one or two digits. A missing month or year
// defaults to the current one in loc; two-digit years below 69 fall in the
// 2000s. The time of day is midnight; combine with StartOfDay/EndOfDay for
// range bounds.
func ParseDate(value string, now time.Time, loc *time.Location) (time.Time, error) {
	parseErr := fmt.Errorf("invalid date %q: expected DD, DD.MM or DD.MM.YY", value)

	parts := strings.Split(value, ".")
	if len(parts) > 3 {
		return time.Time{}, parseErr
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		if len(part) < 1 || len(part) > 2 || part[0] == '+' || part[0] == '-' {
			return time.Time{}, parseErr
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, parseErr
		}
		nums[i] = n
	}

	day := nums[0]
	month := now.Month()
	year := now.Year()
	if len(nums) >= 2 {
		month = time.Month(nums[1])
	}
	if len(nums) == 3 {
		if nums[2] < 69 {
			year = 2000 + nums[2]
		} else {
			year = 1900 + nums[2]
		}
	}

	if month < time.January || month > time.December {
		return time.Time{}, parseErr
	}
	// Reject days time.Date would normalize into the next month.
	if day < 1 || day > daysIn(year, month) {
		return time.Time{}, parseErr
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc), nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfDay normalizes t to 00:00:00.000000.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay normalizes t to 23:59:59.999999.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999000, t.Location())
}
