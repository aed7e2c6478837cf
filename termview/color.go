package termview

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// parseColor understands the "hsl(h, s%, l%)" tags entities carry and
// falls back to tcell's named colours for the player.
func parseColor(s string) tcell.Color {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "hsl(") {
		var h, sat, l float64
		if _, err := fmt.Sscanf(s, "hsl(%f, %f%%, %f%%)", &h, &sat, &l); err == nil {
			r, g, b := colorful.Hsl(h, sat/100, l/100).Clamped().RGB255()
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return tcell.ColorWhite
	}
	if c := tcell.GetColor(s); c != tcell.ColorDefault {
		return c
	}
	return tcell.ColorWhite
}

// shade darkens c for outlines and labels.
func shade(c tcell.Color, by float64) tcell.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return c
	}
	cf := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := cf.Hsl()
	dr, dg, db := colorful.Hsl(h, s, l*(1-by)).Clamped().RGB255()
	return tcell.NewRGBColor(int32(dr), int32(dg), int32(db))
}
