// Package termview draws session snapshots on a terminal.
package termview

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"absorb/game"
	"absorb/protocol"
)

// A terminal cell stands in for a CellW x CellH block of viewport pixels,
// roughly the aspect of a monospace glyph.
const (
	CellW = 8.0
	CellH = 16.0
)

// Frame is what one redraw shows.
type Frame struct {
	State  *protocol.State
	Shop   *protocol.Shop
	Over   *protocol.GameOver
	Status string
}

type Renderer struct {
	screen tcell.Screen
	colors map[string]tcell.Color
}

func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, colors: make(map[string]tcell.Color)}
}

// Viewport is the pixel size the session camera should assume. The last
// row is the HUD.
func (r *Renderer) Viewport() (w, h float64) {
	cols, rows := r.screen.Size()
	return float64(cols) * CellW, float64(max(rows-1, 1)) * CellH
}

func camera(cam protocol.CameraSnapshot) game.Camera {
	return game.Camera{X: cam.X, Y: cam.Y, Zoom: cam.Zoom, ViewW: cam.W, ViewH: cam.H}
}

// CellToWorld maps the centre of a terminal cell to world space.
func CellToWorld(cam protocol.CameraSnapshot, col, row int) (x, y float64) {
	return camera(cam).ScreenToWorld((float64(col)+0.5)*CellW, (float64(row)+0.5)*CellH)
}

func toScreen(cam protocol.CameraSnapshot, x, y float64) (px, py float64) {
	return camera(cam).WorldToScreen(x, y)
}

func (r *Renderer) color(tag string) tcell.Color {
	if c, ok := r.colors[tag]; ok {
		return c
	}
	c := parseColor(tag)
	r.colors[tag] = c
	return c
}

func (r *Renderer) Draw(f Frame) {
	r.screen.Clear()
	if f.State != nil {
		r.drawWorld(f.State)
		r.drawHUD(f.State, f.Status)
		switch {
		case f.Over != nil:
			r.drawGameOver(f.Over)
		case f.State.Phase == "shop" && f.Shop != nil:
			r.drawShop(f.Shop)
		case f.State.Phase == "paused":
			r.drawBox([]string{"PAUSED", "", "p  resume", "w  save", "q  quit"})
		}
	} else if f.Status != "" {
		r.drawBox([]string{f.Status})
	}
	r.screen.Show()
}

type disc struct {
	x, y, r float64
	color   string
	glyph   rune
	label   string
}

func (r *Renderer) drawWorld(st *protocol.State) {
	var bots []disc
	for _, ch := range st.Chunks {
		for _, fd := range ch.Food {
			r.drawDisc(st.Camera, disc{x: fd.X, y: fd.Y, r: fd.R, color: fd.Color, glyph: '•'})
		}
		for _, b := range ch.Bots {
			bots = append(bots, disc{x: b.X, y: b.Y, r: b.R, color: b.Color, glyph: 'o', label: b.Name})
		}
	}
	// small under large
	sort.Slice(bots, func(i, j int) bool { return bots[i].r < bots[j].r })
	for _, b := range bots {
		r.drawDisc(st.Camera, b)
	}
	p := st.Player
	r.drawDisc(st.Camera, disc{x: p.X, y: p.Y, r: p.R, color: p.Color, glyph: '@', label: p.Name})
}

// drawDisc fills the cells whose centres fall inside the circle, or draws
// a single glyph when the circle is smaller than a cell.
func (r *Renderer) drawDisc(cam protocol.CameraSnapshot, d disc) {
	cols, rows := r.screen.Size()
	rows-- // HUD
	px, py := toScreen(cam, d.x, d.y)
	rad := d.r * cam.Zoom
	c := r.color(d.color)
	cc, cr := int(math.Floor(px/CellW)), int(math.Floor(py/CellH))

	if rad < CellW {
		if cc >= 0 && cc < cols && cr >= 0 && cr < rows {
			r.screen.SetContent(cc, cr, d.glyph, nil, tcell.StyleDefault.Foreground(c))
		}
		return
	}

	fill := tcell.StyleDefault.Background(c).Foreground(shade(c, 0.6))
	minC, maxC := int(math.Floor((px-rad)/CellW)), int(math.Floor((px+rad)/CellW))
	minR, maxR := int(math.Floor((py-rad)/CellH)), int(math.Floor((py+rad)/CellH))
	for row := max(minR, 0); row <= min(maxR, rows-1); row++ {
		for col := max(minC, 0); col <= min(maxC, cols-1); col++ {
			dx := (float64(col)+0.5)*CellW - px
			dy := (float64(row)+0.5)*CellH - py
			if dx*dx+dy*dy <= rad*rad {
				r.screen.SetContent(col, row, ' ', nil, fill)
			}
		}
	}
	if cr < 0 || cr >= rows {
		return
	}
	label := d.label
	if span := int(2 * rad / CellW); len(label) > span-2 {
		label = ""
	}
	if label == "" {
		if cc >= 0 && cc < cols {
			r.screen.SetContent(cc, cr, d.glyph, nil, fill)
		}
		return
	}
	r.text(cc-len(label)/2, cr, label, fill)
}

func (r *Renderer) drawHUD(st *protocol.State, status string) {
	cols, rows := r.screen.Size()
	y := rows - 1
	bar := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	for x := 0; x < cols; x++ {
		r.screen.SetContent(x, y, ' ', nil, bar)
	}
	p := st.Player
	hud := fmt.Sprintf(" Score %d  $%d  Size %s  Energy %s ", p.Score, int(p.Money), p.Size, energyBar(p.Energy, p.MaxEnergy, 10))
	if p.Boosting {
		hud += "BOOST "
	}
	if status != "" {
		hud += "| " + status
	}
	r.text(0, y, hud, bar)
}

func energyBar(e, maxE float64, width int) string {
	if maxE <= 0 {
		return strings.Repeat("-", width)
	}
	n := int(math.Round(e / maxE * float64(width)))
	n = min(max(n, 0), width)
	return "[" + strings.Repeat("#", n) + strings.Repeat("-", width-n) + "]"
}

func (r *Renderer) drawShop(shop *protocol.Shop) {
	lines := []string{fmt.Sprintf("SHOP    money $%d", int(shop.Money)), ""}
	for i, it := range shop.Items {
		price := fmt.Sprintf("$%d", it.Cost)
		if it.Maxed {
			price = "max"
		}
		lines = append(lines, fmt.Sprintf("%d  %-12s lv %d/%d  %s", i+1, it.Name, it.Level, it.Cap, price))
	}
	lines = append(lines, "", "s  close shop")
	r.drawBox(lines)
}

func (r *Renderer) drawGameOver(over *protocol.GameOver) {
	r.drawBox([]string{
		"GAME OVER",
		"",
		fmt.Sprintf("score %d", over.Score),
		fmt.Sprintf("size  %s", over.Size),
		fmt.Sprintf("money $%d", int(over.Money)),
		"",
		"r  restart   q  quit",
	})
}

// drawBox centres lines in a bordered panel.
func (r *Renderer) drawBox(lines []string) {
	cols, rows := r.screen.Size()
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	x0, y0 := (cols-w)/2, (rows-1-h)/2
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ch := ' '
			switch {
			case (y == 0 || y == h-1) && (x == 0 || x == w-1):
				ch = '+'
			case y == 0 || y == h-1:
				ch = '-'
			case x == 0 || x == w-1:
				ch = '|'
			}
			r.screen.SetContent(x0+x, y0+y, ch, nil, style)
		}
	}
	for i, l := range lines {
		r.text(x0+2, y0+1+i, l, style)
	}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	cols, _ := r.screen.Size()
	for _, ch := range s {
		if x >= 0 && x < cols {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}
