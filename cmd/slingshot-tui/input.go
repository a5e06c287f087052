// cmd/slingshot-tui/input.go
package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-slingshot/pkg/input"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/powerup"
)

var runeCommands = map[rune]input.Event{
	'n': input.NextLevel{},
	' ': input.NextLevel{},
	'r': input.Restart{},
	'x': input.Cancel{},
	'1': input.SelectPowerup{Powerup: string(powerup.Magnet)},
	'2': input.SelectPowerup{Powerup: string(powerup.SplitShot)},
	'3': input.SelectPowerup{},
}

// pointer turns terminal events into game commands, tracking the primary
// button because tcell reports button state rather than presses
type pointer struct {
	toWorld func(x, y int) physics.Vector2D
	down    bool
}

func newPointer(toWorld func(x, y int) physics.Vector2D) *pointer {
	return &pointer{toWorld: toWorld}
}

// translate returns the commands for ev and whether the player asked to quit
func (p *pointer) translate(ev tcell.Event) ([]input.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return p.key(ev)
	case *tcell.EventMouse:
		return p.mouse(ev), false
	}
	return nil, false
}

func (p *pointer) key(ev *tcell.EventKey) ([]input.Event, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyEscape:
		return []input.Event{input.RestartLevel{}}, false
	case tcell.KeyRune:
		if ev.Rune() == 'q' || (ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0) {
			return nil, true
		}
		if e, ok := runeCommands[ev.Rune()]; ok {
			return []input.Event{e}, false
		}
	}
	return nil, false
}

func (p *pointer) mouse(ev *tcell.EventMouse) []input.Event {
	x, y := ev.Position()
	pos := p.toWorld(x, y)
	buttons := ev.Buttons()
	events := []input.Event{input.DragMove{Position: pos}}

	switch {
	case buttons&tcell.Button2 != 0 && p.down:
		p.down = false
		events = append(events, input.Cancel{})
	case buttons&tcell.Button1 != 0 && !p.down:
		p.down = true
		events = append(events, input.DragStart{Position: pos})
	case buttons&tcell.Button1 == 0 && p.down:
		p.down = false
		events = append(events, input.DragEnd{Position: pos})
	}
	return events
}
