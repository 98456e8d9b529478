package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSnapshotRoundTrip(t *testing.T) {
	items := []SnapshotItem{
		{ProductID: 7, Quantity: 2, UnitPrice: 24.99, Size: "M", Color: "Black"},
		{ProductID: 9, Quantity: 1, UnitPrice: 54.5},
	}

	encoded, err := EncodeCartSnapshot(items)
	require.NoError(t, err)

	decoded, err := DecodeCartSnapshot(encoded)
	require.NoError(t, err)
	assert.Equal(t, items, decoded)
}

func TestDecodeCartSnapshotEmptyPayload(t *testing.T) {
	_, err := DecodeCartSnapshot("")
	assert.Error(t, err)
}

func TestDecodeCartSnapshotMalformed(t *testing.T) {
	_, err := DecodeCartSnapshot(`{"not":"an array"`)
	assert.Error(t, err)
}

func TestEncodeCartSnapshotEmptySlice(t *testing.T) {
	encoded, err := EncodeCartSnapshot(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", encoded)
}
