package game

import "math"

// ChunkKey addresses one square cell of the plane.
type ChunkKey struct {
	X, Y int
}

// Bounds is an axis-aligned world rectangle.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Inset shrinks the rectangle by m on every side.
func (b Bounds) Inset(m float64) Bounds {
	return Bounds{MinX: b.MinX + m, MinY: b.MinY + m, MaxX: b.MaxX - m, MaxY: b.MaxY - m}
}

func (b Bounds) Clamp(x, y float64) (float64, float64) {
	return clamp(x, b.MinX, b.MaxX), clamp(y, b.MinY, b.MaxY)
}

// KeyOf returns the chunk containing the world point.
func KeyOf(x, y float64) ChunkKey {
	return ChunkKey{
		X: int(math.Floor(x / ChunkSize)),
		Y: int(math.Floor(y / ChunkSize)),
	}
}

func BoundsOf(k ChunkKey) Bounds {
	return Bounds{
		MinX: float64(k.X) * ChunkSize,
		MinY: float64(k.Y) * ChunkSize,
		MaxX: float64(k.X+1) * ChunkSize,
		MaxY: float64(k.Y+1) * ChunkSize,
	}
}

// VisibleChunks lists the (2R+1)^2 window around the chunk holding (x, y),
// ordered by dx then dy.
func VisibleChunks(x, y float64) []ChunkKey {
	c := KeyOf(x, y)
	out := make([]ChunkKey, 0, WindowArea)
	for dx := -RenderDistance; dx <= RenderDistance; dx++ {
		for dy := -RenderDistance; dy <= RenderDistance; dy++ {
			out = append(out, ChunkKey{X: c.X + dx, Y: c.Y + dy})
		}
	}
	return out
}

// ChunkSet is a membership view over a visibility window.
type ChunkSet map[ChunkKey]struct{}

func NewChunkSet(keys []ChunkKey) ChunkSet {
	s := make(ChunkSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s ChunkSet) Has(k ChunkKey) bool {
	_, ok := s[k]
	return ok
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
