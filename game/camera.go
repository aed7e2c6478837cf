package game

import "math"

// Camera follows the player; the view spans roughly CameraViewRadii player
// radii across the smaller viewport side.
type Camera struct {
	X, Y  float64
	Zoom  float64
	ViewW float64
	ViewH float64
}

func (c *Camera) SetViewport(w, h float64) {
	if w > 0 {
		c.ViewW = w
	}
	if h > 0 {
		c.ViewH = h
	}
}

// Follow eases the camera toward p and recomputes zoom.
func (c *Camera) Follow(p *Player) {
	c.X += (p.X - c.X) * CameraSmoothing
	c.Y += (p.Y - c.Y) * CameraSmoothing
	c.Zoom = c.zoomFor(p.Radius)
}

// Snap centers on p without easing.
func (c *Camera) Snap(p *Player) {
	c.X, c.Y = p.X, p.Y
	c.Zoom = c.zoomFor(p.Radius)
}

func (c *Camera) zoomFor(radius float64) float64 {
	span := math.Max(radius*CameraViewRadii, CameraMinViewSpan)
	return clamp(math.Min(c.ViewW, c.ViewH)/span, CameraMinZoom, CameraMaxZoom)
}

func (c Camera) WorldToScreen(x, y float64) (float64, float64) {
	return (x-c.X)*c.Zoom + c.ViewW/2, (y-c.Y)*c.Zoom + c.ViewH/2
}

// ScreenToWorld is how input collaborators turn a pointer into a target.
func (c Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	z := c.Zoom
	if z == 0 {
		z = 1
	}
	return (sx-c.ViewW/2)/z + c.X, (sy-c.ViewH/2)/z + c.Y
}
