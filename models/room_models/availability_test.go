package room_models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stayvista/stayvista/stay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidAvailabilityOp(t *testing.T) {
	assert.True(t, ValidAvailabilityOp(OpAdd))
	assert.True(t, ValidAvailabilityOp(OpRemove))
	assert.True(t, ValidAvailabilityOp(OpClear))
	assert.False(t, ValidAvailabilityOp("replace"))
	assert.False(t, ValidAvailabilityOp(""))
}

func TestUnionDaysIsIdempotent(t *testing.T) {
	existing := []time.Time{day(2026, 3, 10), day(2026, 3, 11)}
	incoming := []time.Time{day(2026, 3, 11), day(2026, 3, 12)}

	merged := UnionDays(existing, incoming)
	assert.Equal(t, []time.Time{day(2026, 3, 10), day(2026, 3, 11), day(2026, 3, 12)}, merged)

	// Applying the same addition again changes nothing.
	assert.Equal(t, merged, UnionDays(merged, incoming))
}

func TestUnionDaysSortsAndDeduplicates(t *testing.T) {
	merged := UnionDays(
		[]time.Time{day(2026, 3, 12)},
		[]time.Time{day(2026, 3, 10), day(2026, 3, 12), day(2026, 3, 10)},
	)
	assert.Equal(t, []time.Time{day(2026, 3, 10), day(2026, 3, 12)}, merged)
}

func TestSubtractDays(t *testing.T) {
	existing := []time.Time{day(2026, 3, 10), day(2026, 3, 11), day(2026, 3, 12)}

	kept := SubtractDays(existing, []time.Time{day(2026, 3, 11)})
	assert.Equal(t, []time.Time{day(2026, 3, 10), day(2026, 3, 12)}, kept)

	// Removing days that were never blocked is a no-op, not an error.
	assert.Equal(t, existing, SubtractDays(existing, []time.Time{day(2026, 4, 1)}))

	// Remove then re-add round-trips.
	assert.Equal(t, existing, UnionDays(kept, []time.Time{day(2026, 3, 11)}))

	assert.Empty(t, SubtractDays(nil, []time.Time{day(2026, 3, 11)}))
}

func TestAnnotateForRange(t *testing.T) {
	freeUnit := RoomNumber{ID: uuid.New(), Number: 101, UnavailableDates: []time.Time{}}
	busyUnit := RoomNumber{ID: uuid.New(), Number: 102, UnavailableDates: []time.Time{day(2026, 3, 11)}}
	rooms := []Room{{
		ID:          uuid.New(),
		Title:       "Deluxe Suite",
		RoomNumbers: []RoomNumber{freeUnit, busyUnit},
	}}

	stayDays, err := stay.Expand(day(2026, 3, 10), day(2026, 3, 12))
	require.NoError(t, err)

	annotated := AnnotateForRange(rooms, stayDays)
	require.Len(t, annotated, 1)
	require.Len(t, annotated[0].RoomNumbers, 2)
	assert.False(t, annotated[0].RoomNumbers[0].IsUnavailableForRange)
	assert.True(t, annotated[0].RoomNumbers[1].IsUnavailableForRange)
}

func TestAnnotateForRangeEmptyWindow(t *testing.T) {
	rooms := []Room{{
		ID: uuid.New(),
		RoomNumbers: []RoomNumber{
			{ID: uuid.New(), Number: 101, UnavailableDates: []time.Time{day(2026, 3, 11)}},
		},
	}}

	// No requested window means every unit reads as available.
	annotated := AnnotateForRange(rooms, nil)
	require.Len(t, annotated, 1)
	assert.False(t, annotated[0].RoomNumbers[0].IsUnavailableForRange)
}

func TestAnnotateForRangeBackToBackStay(t *testing.T) {
	// A unit blocked for [10th, 12th) must read available for a stay
	// starting on the 12th.
	blocked, err := stay.Expand(day(2026, 3, 10), day(2026, 3, 12))
	require.NoError(t, err)
	rooms := []Room{{
		ID: uuid.New(),
		RoomNumbers: []RoomNumber{
			{ID: uuid.New(), Number: 201, UnavailableDates: blocked},
		},
	}}

	next, err := stay.Expand(day(2026, 3, 12), day(2026, 3, 14))
	require.NoError(t, err)

	annotated := AnnotateForRange(rooms, next)
	assert.False(t, annotated[0].RoomNumbers[0].IsUnavailableForRange)
}
