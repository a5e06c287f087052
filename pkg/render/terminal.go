package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Cell glyphs
const (
	glyphPlanet     = 'O'
	glyphOrb        = 'o'
	glyphOrbPreview = '+'
	glyphCraft      = '@'
	glyphProjectile = '*'
	glyphTrail      = '.'
	glyphAim        = '-'
	glyphPath       = ':'
)

var (
	styleDefault    = tcell.StyleDefault
	styleOrb        = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleOrbPreview = tcell.StyleDefault.Foreground(tcell.ColorYellow).Dim(true)
	styleCraft      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleTrail      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAim        = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

var planetStyles = map[entity.PlanetMode]tcell.Style{
	entity.PlanetFixed:   tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
	entity.PlanetMovable: tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	entity.PlanetPending: tcell.StyleDefault.Foreground(tcell.ColorGreen).Dim(true),
	entity.PlanetInvalid: tcell.StyleDefault.Foreground(tcell.ColorRed),
}

// TerminalRenderer draws the play area onto a tcell screen. The world is
// scaled to fill every row but the last, which holds the HUD.
type TerminalRenderer struct {
	screen tcell.Screen
	bounds physics.Bounds
	style  TrajectoryStyle
}

// NewTerminalRenderer creates a renderer mapping a world of bounds onto screen
func NewTerminalRenderer(screen tcell.Screen, bounds physics.Bounds, style TrajectoryStyle) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		bounds: bounds,
		style:  style,
	}
}

// SetBounds changes the world size being mapped onto the screen
func (r *TerminalRenderer) SetBounds(bounds physics.Bounds) {
	r.bounds = bounds
}

// playArea returns the columns and rows available to the world
func (r *TerminalRenderer) playArea() (int, int) {
	cols, rows := r.screen.Size()
	return cols, max(rows-1, 1)
}

// worldToScreen converts world coordinates to a screen cell
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	cols, rows := r.playArea()
	if r.bounds.Width <= 0 || r.bounds.Height <= 0 {
		return -1, -1
	}
	x := int(math.Floor(pos.X * float64(cols) / r.bounds.Width))
	y := int(math.Floor(pos.Y * float64(rows) / r.bounds.Height))
	return x, y
}

// ScreenToWorld returns the world position at the center of a screen cell
func (r *TerminalRenderer) ScreenToWorld(x, y int) physics.Vector2D {
	cols, rows := r.playArea()
	return physics.Vector2D{
		X: (float64(x) + 0.5) * r.bounds.Width / float64(cols),
		Y: (float64(y) + 0.5) * r.bounds.Height / float64(rows),
	}
}

func (r *TerminalRenderer) set(x, y int, glyph rune, style tcell.Style) {
	cols, rows := r.playArea()
	if x < 0 || x >= cols || y < 0 || y >= rows {
		return
	}
	r.screen.SetContent(x, y, glyph, nil, style)
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, glyph rune, style tcell.Style) {
	x, y := r.worldToScreen(pos)
	r.set(x, y, glyph, style)
}

// fillCircle marks every cell whose center lies inside c, or the center cell
// when the circle is smaller than a cell
func (r *TerminalRenderer) fillCircle(c physics.Circle, glyph rune, style tcell.Style) {
	x0, y0 := r.worldToScreen(physics.Vector2D{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius})
	x1, y1 := r.worldToScreen(physics.Vector2D{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius})
	filled := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if r.ScreenToWorld(x, y).Distance(c.Center) <= c.Radius {
				r.set(x, y, glyph, style)
				filled = true
			}
		}
	}
	if !filled {
		r.plot(c.Center, glyph, style)
	}
}

// line plots cells along a world-space segment
func (r *TerminalRenderer) line(from, to physics.Vector2D, glyph rune, style tcell.Style) {
	x0, y0 := r.worldToScreen(from)
	x1, y1 := r.worldToScreen(to)
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		r.set(x0, y0, glyph, style)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(t*float64(x1-x0)))
		y := y0 + int(math.Round(t*float64(y1-y0)))
		r.set(x, y, glyph, style)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

// RenderPlanet implements entity.Renderer
func (r *TerminalRenderer) RenderPlanet(planet *entity.Planet) {
	style, ok := planetStyles[planet.Mode]
	if !ok {
		style = styleDefault
	}
	r.fillCircle(planet.Circle(), glyphPlanet, style)
}

// RenderOrb implements entity.Renderer
func (r *TerminalRenderer) RenderOrb(orb *entity.Orb) {
	if orb.Preview {
		r.plot(orb.Position, glyphOrbPreview, styleOrbPreview)
		return
	}
	r.plot(orb.Position, glyphOrb, styleOrb)
}

// RenderCraft implements entity.Renderer
func (r *TerminalRenderer) RenderCraft(craft *entity.Craft) {
	for _, p := range craft.Trail.Points() {
		r.plot(p, glyphTrail, styleTrail)
	}
	if craft.Main {
		r.plot(craft.Position, glyphCraft, styleCraft)
		return
	}
	r.plot(craft.Position, glyphProjectile, styleProjectile)
}

// RenderAim implements entity.Renderer. The predicted path fades from bold
// to dim along its length.
func (r *TerminalRenderer) RenderAim(aim entity.Aim) {
	for _, d := range r.style.Stroke(aim.Trajectory) {
		style := styleDefault.Foreground(tcell.ColorWhite)
		if d.Alpha < 0.65 {
			style = style.Dim(true)
		}
		r.line(d.From, d.To, glyphPath, style)
	}
	r.line(aim.Start, aim.End, glyphAim, styleAim)
}

// RenderHUD implements entity.Renderer
func (r *TerminalRenderer) RenderHUD(hud entity.HUD) {
	cols, rows := r.screen.Size()
	if rows < 1 {
		return
	}
	line := []rune(FormatHUD(hud))
	for x := 0; x < cols; x++ {
		glyph := ' '
		if x < len(line) {
			glyph = line[x]
		}
		r.screen.SetContent(x, rows-1, glyph, nil, styleHUD)
	}
}

// FormatHUD renders the status line as text
func FormatHUD(hud entity.HUD) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Level %d/%d  Bounces %d  Orbs %d", hud.Level, hud.MaxLevel, hud.BouncesLeft, hud.OrbsLeft)

	if len(hud.Inventory) > 0 {
		names := make([]string, 0, len(hud.Inventory))
		for name := range hud.Inventory {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString("  [")
		for i, name := range names {
			if i > 0 {
				b.WriteByte(' ')
			}
			marker := ""
			if name == hud.Selected {
				marker = ">"
			}
			fmt.Fprintf(&b, "%s%s:%d", marker, name, hud.Inventory[name])
		}
		b.WriteByte(']')
	}
	if hud.ActivePowerup != "" {
		fmt.Fprintf(&b, "  %s active", hud.ActivePowerup)
	}
	if hud.Message != "" {
		b.WriteString("  ")
		b.WriteString(hud.Message)
	}
	return b.String()
}
