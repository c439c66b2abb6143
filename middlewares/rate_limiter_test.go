package middlewares

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomRate(t *testing.T) {
	rate, err := ParseCustomRate("10-2m")
	require.NoError(t, err)
	assert.Equal(t, int64(10), rate.Limit)
	assert.Equal(t, 2*time.Minute, rate.Period)

	rate, err = ParseCustomRate("5-1h")
	require.NoError(t, err)
	assert.Equal(t, int64(5), rate.Limit)
	assert.Equal(t, time.Hour, rate.Period)

	rate, err = ParseCustomRate("20-30s")
	require.NoError(t, err)
	assert.Equal(t, int64(20), rate.Limit)
	assert.Equal(t, 30*time.Second, rate.Period)
}

func TestParseCustomRateRejectsBadInput(t *testing.T) {
	for _, bad := range []string{"", "10", "10-", "x-2m", "10-2d", "10-xm", "10-2m-extra"} {
		_, err := ParseCustomRate(bad)
		assert.Error(t, err, bad)
	}
}
