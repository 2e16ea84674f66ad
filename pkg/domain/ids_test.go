package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "taxgate/pkg/domain-errors"
)

// TestParseVRN_Invariants validates the parsing invariant:
// "a VRN is exactly nine decimal digits".
func TestParseVRN_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseVRN("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects short value", func(t *testing.T) {
		_, err := ParseVRN("12345678")
		require.Error(t, err)
	})

	t.Run("rejects non-digits", func(t *testing.T) {
		_, err := ParseVRN("12345678X")
		require.Error(t, err)
	})

	t.Run("accepts nine digits", func(t *testing.T) {
		vrn, err := ParseVRN("123456789")
		require.NoError(t, err)
		assert.Equal(t, VRN("123456789"), vrn)
	})
}

func TestParsePeriodKey(t *testing.T) {
	_, err := ParsePeriodKey("24A")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	pk, err := ParsePeriodKey("24A1")
	require.NoError(t, err)
	assert.Equal(t, "24A1", pk.String())
}
