// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/render"
)

// ControlsHint is shown under the status line
const ControlsHint = "drag from the ship to aim   1 magnet   2 split shot   3 none   esc restart level   n next level   r new game"

// HUDSystem shows the status line, the current message and the controls
type HUDSystem struct {
	sink  spriteSink
	font  *common.Font
	lines []*sprite
	texts []string

	hud     entity.HUD
	pending bool

	hudColor   color.Color
	lineHeight float32
	margin     float32
}

// NewHUDSystem creates a HUD drawing text with font. A nil font keeps the
// HUD text-only, which headless tests rely on.
func NewHUDSystem(sink spriteSink, font *common.Font) *HUDSystem {
	return &HUDSystem{
		sink:       sink,
		font:       font,
		hudColor:   color.RGBA{255, 255, 255, 255},
		lineHeight: 22,
		margin:     10,
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update applies the latest HUD to the text sprites
func (hud *HUDSystem) Update(dt float32) {
	if !hud.pending {
		return
	}
	hud.pending = false

	texts := HUDLines(hud.hud)
	for i, text := range texts {
		if i < len(hud.texts) && hud.texts[i] == text {
			continue
		}
		hud.setLine(i, text)
	}
	for i := len(texts); i < len(hud.lines); i++ {
		hud.lines[i].Hidden = true
	}
	if len(hud.texts) > len(texts) {
		hud.texts = hud.texts[:len(texts)]
	}
}

// setLine shows text on line i, creating its sprite when a font is available
func (hud *HUDSystem) setLine(i int, text string) {
	for len(hud.texts) <= i {
		hud.texts = append(hud.texts, "")
	}
	hud.texts[i] = text

	if hud.font == nil {
		return
	}
	for len(hud.lines) <= i {
		s := &sprite{BasicEntity: ecs.NewBasic()}
		s.SetZIndex(layerHUD)
		s.Position = engo.Point{X: hud.margin, Y: hud.margin + float32(len(hud.lines))*hud.lineHeight}
		hud.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
		hud.lines = append(hud.lines, s)
	}
	s := hud.lines[i]
	s.Drawable = common.Text{Font: hud.font, Text: text}
	s.Color = hud.hudColor
	s.Hidden = text == ""
}

// SetHUD records the HUD to show on the next update
func (hud *HUDSystem) SetHUD(h entity.HUD) {
	hud.hud = h
	hud.pending = true
}

// Lines returns the text currently shown, top to bottom
func (hud *HUDSystem) Lines() []string {
	return append([]string(nil), hud.texts...)
}

// HUDLines lays the HUD out as status, message and controls lines
func HUDLines(h entity.HUD) []string {
	message := h.Message
	h.Message = ""
	return []string{render.FormatHUD(h), message, ControlsHint}
}
