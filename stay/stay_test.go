package stay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayNormalizes(t *testing.T) {
	ts := time.Date(2026, 3, 10, 14, 30, 45, 123, time.FixedZone("IST", 5*3600+1800))
	assert.Equal(t, day(2026, 3, 10), Day(ts))
	assert.Equal(t, day(2026, 3, 10), Day(Day(ts)), "already-normalized markers stay put")
}

func TestExpandHalfOpen(t *testing.T) {
	days, err := Expand(day(2026, 3, 10), day(2026, 3, 13))
	require.NoError(t, err)

	// Three nights block exactly three days; the check-out day stays free.
	assert.Equal(t, []time.Time{
		day(2026, 3, 10),
		day(2026, 3, 11),
		day(2026, 3, 12),
	}, days)
}

func TestExpandSingleNight(t *testing.T) {
	days, err := Expand(day(2026, 3, 10), day(2026, 3, 11))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2026, 3, 10)}, days)
}

func TestExpandRejectsBadRanges(t *testing.T) {
	_, err := Expand(day(2026, 3, 10), day(2026, 3, 10))
	assert.ErrorIs(t, err, ErrInvalidRange, "zero-length stay")

	_, err = Expand(day(2026, 3, 13), day(2026, 3, 10))
	assert.ErrorIs(t, err, ErrInvalidRange, "reversed range")
}

func TestExpandCrossesMonthBoundary(t *testing.T) {
	days, err := Expand(day(2026, 1, 30), day(2026, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		day(2026, 1, 30),
		day(2026, 1, 31),
		day(2026, 2, 1),
	}, days)
}

func TestNights(t *testing.T) {
	n, err := Nights(day(2026, 3, 10), day(2026, 3, 13))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Partial days round up, matching a late check-in against a midday
	// check-out.
	n, err = Nights(
		time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = Nights(day(2026, 3, 10), day(2026, 3, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestConflicts(t *testing.T) {
	blocked := []time.Time{day(2026, 3, 11), day(2026, 3, 12)}

	stayDays, err := Expand(day(2026, 3, 10), day(2026, 3, 12))
	require.NoError(t, err)
	assert.True(t, Conflicts(blocked, stayDays), "overlap on the 11th")

	// Back-to-back stays share a boundary day but never conflict: the
	// earlier stay's check-out day is not blocked.
	first, err := Expand(day(2026, 3, 10), day(2026, 3, 12))
	require.NoError(t, err)
	second, err := Expand(day(2026, 3, 12), day(2026, 3, 14))
	require.NoError(t, err)
	assert.False(t, Conflicts(first, second))

	assert.False(t, Conflicts(nil, stayDays))
	assert.False(t, Conflicts(blocked, nil))
}

func TestConflictsNormalizesInput(t *testing.T) {
	blocked := []time.Time{time.Date(2026, 3, 11, 23, 59, 0, 0, time.UTC)}
	stayDays := []time.Time{time.Date(2026, 3, 11, 0, 0, 0, 0, time.FixedZone("X", 0))}
	assert.True(t, Conflicts(blocked, stayDays))
}

func TestParseDays(t *testing.T) {
	days := ParseDays([]string{
		"2026-03-10",
		"2026-03-11T15:04:05Z",
		"not-a-date",
		"",
	})

	// Bad values are dropped, good ones normalized.
	assert.Equal(t, []time.Time{day(2026, 3, 10), day(2026, 3, 11)}, days)

	assert.Empty(t, ParseDays([]string{"garbage"}))
	assert.Empty(t, ParseDays(nil))
}

func TestParseDay(t *testing.T) {
	d, ok := ParseDay("2026-03-10")
	assert.True(t, ok)
	assert.Equal(t, day(2026, 3, 10), d)

	d, ok = ParseDay("2026-03-10T22:00:00+05:30")
	assert.True(t, ok)
	assert.Equal(t, day(2026, 3, 10), d)

	_, ok = ParseDay("10/03/2026")
	assert.False(t, ok)
}

func TestFormatDays(t *testing.T) {
	out := FormatDays([]time.Time{day(2026, 3, 10), day(2026, 12, 1)})
	assert.Equal(t, []string{"2026-03-10", "2026-12-01"}, out)
	assert.Empty(t, FormatDays(nil))
}
