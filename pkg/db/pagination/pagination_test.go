package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "1234567890", CreatedAt: "2024-06-01T12:00:00Z"})
	require.NoError(t, err)

	c, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", c.ID)
	assert.Equal(t, "2024-06-01T12:00:00Z", c.CreatedAt)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("not base64!!")
	assert.ErrorIs(t, err, ErrInvalidPageToken)

	_, err = DecodeCursor("e30") // "{}" — missing fields
	assert.ErrorIs(t, err, ErrInvalidPageToken)
}

func TestBuildCursorPageInfo(t *testing.T) {
	token := func(v int) string { return "t" }

	info := BuildCursorPageInfo([]int{1, 2}, 5, token)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)

	info = BuildCursorPageInfo([]int{1, 2, 3}, 2, token)
	assert.True(t, info.HasMore)
	assert.Equal(t, "t", info.NextPageToken)
}
