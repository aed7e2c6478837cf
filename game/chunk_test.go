package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyOfFloorsNegativeCoordinates(t *testing.T) {
	for _, tc := range []struct {
		x, y float64
		want ChunkKey
	}{
		{0, 0, ChunkKey{0, 0}},
		{1999.9, 1999.9, ChunkKey{0, 0}},
		{2000, 0, ChunkKey{1, 0}},
		{-0.1, -0.1, ChunkKey{-1, -1}},
		{-2000, 4500, ChunkKey{-1, 2}},
		{-2000.5, 0, ChunkKey{-2, 0}},
	} {
		assert.Equal(t, tc.want, KeyOf(tc.x, tc.y), "KeyOf(%v, %v)", tc.x, tc.y)
	}
}

func TestBoundsOfInvertsKeyOf(t *testing.T) {
	for _, k := range []ChunkKey{{0, 0}, {-3, 7}, {12, -1}} {
		b := BoundsOf(k)
		assert.Equal(t, ChunkSize, b.MaxX-b.MinX)
		assert.Equal(t, ChunkSize, b.MaxY-b.MinY)
		assert.Equal(t, k, KeyOf(b.MinX, b.MinY))
		assert.Equal(t, k, KeyOf(b.MaxX-0.001, b.MaxY-0.001))
	}
}

func TestVisibleChunksWindow(t *testing.T) {
	keys := VisibleChunks(-10, 4100)
	require.Len(t, keys, WindowArea)

	set := NewChunkSet(keys)
	require.Len(t, set, WindowArea, "window keys must be distinct")

	center := KeyOf(-10, 4100)
	for _, k := range keys {
		dx, dy := k.X-center.X, k.Y-center.Y
		assert.LessOrEqual(t, max(abs(dx), abs(dy)), RenderDistance)
	}
	assert.True(t, set.Has(center))
	assert.False(t, set.Has(ChunkKey{center.X + RenderDistance + 1, center.Y}))
	assert.Equal(t, ChunkKey{center.X - RenderDistance, center.Y - RenderDistance}, keys[0])
}

func TestBoundsInsetAndClamp(t *testing.T) {
	b := BoundsOf(ChunkKey{0, 0}).Inset(ChunkInset)
	x, y := b.Clamp(-500, 5000)
	assert.Equal(t, ChunkInset, x)
	assert.Equal(t, ChunkSize-ChunkInset, y)
	assert.True(t, b.Contains(1000, 1000))
	assert.False(t, b.Contains(10, 1000))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
