package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	payDate := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	token := EncodeCursor(payDate, "b7c2")
	require.NotEmpty(t, token)

	gotDate, gotID, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, payDate.Equal(gotDate))
	assert.Equal(t, "b7c2", gotID)

	// Non UTC inputs are normalised.
	local := time.Date(2026, 3, 31, 8, 0, 0, 0, time.FixedZone("AST", -4*3600))
	gotDate, _, err = DecodeCursor(EncodeCursor(local, "x"))
	require.NoError(t, err)
	assert.True(t, local.Equal(gotDate))
	assert.Equal(t, time.UTC, gotDate.Location())
}

func TestDecodeCursorErrors(t *testing.T) {
	_, _, err := DecodeCursor("this is not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	// "2026-03-31T00:00:00Z" with no ID part.
	_, _, err = DecodeCursor("MjAyNi0wMy0zMVQwMDowMDowMFo=")
	assert.ErrorContains(t, err, "split")

	_, _, err = DecodeCursor(EncodeCursor(time.Now(), "id")[:4] + "!!")
	assert.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 100, ClampLimit(500, 20, 100))
	assert.Equal(t, 7, ClampLimit(7, 20, 100))
}
