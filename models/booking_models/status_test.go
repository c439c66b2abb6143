package booking_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Pending"))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},

		// Backward moves are rejected.
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},

		// Terminal states stay terminal.
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},

		// Skipping confirmation is not allowed.
		{StatusPending, StatusCompleted, false},

		// Re-asserting the current status is a no-op.
		{StatusPending, StatusPending, true},
		{StatusCancelled, StatusCancelled, true},

		{"archived", StatusPending, false},
		{StatusPending, "archived", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
