package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSpan(t *testing.T) {
	assert.Equal(t, "01:01:01", FormatSpan(3661*time.Second))
	assert.Equal(t, "00:00:00", FormatSpan(0))
	assert.Equal(t, "00:59:59", FormatSpan(3599*time.Second))
	// Hours are not wrapped at 24.
	assert.Equal(t, "25:00:00", FormatSpan(90000*time.Second))
	assert.Equal(t, "00:00:00", FormatSpan(-5*time.Second))
}

func TestParseDateFull(t *testing.T) {
	now := time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)

	parsed, err := ParseDate("15.03.24", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDateDayAndMonth(t *testing.T) {
	now := time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)

	parsed, err := ParseDate("15.03", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDateDayOnly(t *testing.T) {
	now := time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)

	parsed, err := ParseDate("15", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), parsed)

	assert.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), StartOfDay(parsed))
	assert.Equal(t, time.Date(2025, time.July, 15, 23, 59, 59, 999999000, time.UTC), EndOfDay(parsed))
}

func TestParseDateUnpadded(t *testing.T) {
	now := time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)

	parsed, err := ParseDate("5", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = ParseDate("1.3", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = ParseDate("1.3.24", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDateDayOutOfRange(t *testing.T) {
	// now in June so a bare "31" has no 31st to land on.
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	for _, value := range []string{"31", "31.06", "29.02.23", "30.02.24", "0", "32.01"} {
		_, err := ParseDate(value, now, time.UTC)
		assert.Error(t, err, "value %q", value)
	}

	parsed, err := ParseDate("29.02.24", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDateInvalid(t *testing.T) {
	now := time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)

	for _, value := range []string{"", "banana", "2024-03-15", "15/03/24", "015.03", "15.13", "+5", "-5", "15.03.2024"} {
		_, err := ParseDate(value, now, time.UTC)
		assert.Error(t, err, "value %q", value)
	}
}

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	at := time.Date(2024, time.March, 15, 13, 45, 12, 345, loc)
	start := StartOfDay(at)
	end := EndOfDay(at)

	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, time.March, 15, 23, 59, 59, 999999000, loc), end)
	assert.Equal(t, loc, start.Location())
}
