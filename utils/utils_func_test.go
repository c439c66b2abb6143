package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTransactionReference(t *testing.T) {
	ref := GenerateTransactionReference()

	assert.True(t, strings.HasPrefix(ref, "STAY-"), ref)
	parts := strings.Split(ref, "-")
	require.Len(t, parts, 3)
	assert.NotEmpty(t, parts[1])
	assert.Len(t, parts[2], 6)

	for _, r := range parts[2] {
		assert.Contains(t, referenceChars, string(r))
	}
}

func TestCardLast4(t *testing.T) {
	assert.Equal(t, "4242", CardLast4("4242 4242 4242 4242"))
	assert.Equal(t, "1111", CardLast4("4111-1111-1111-1111"))
	assert.Equal(t, "1234", CardLast4("1234"))
	assert.Equal(t, "", CardLast4("123"))
	assert.Equal(t, "", CardLast4(""))
	assert.Equal(t, "", CardLast4("abcd"))
}
