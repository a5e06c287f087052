// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-slingshot/pkg/input"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/powerup"
)

// keyBinding maps a registered button to the command it sends
type keyBinding struct {
	button string
	keys   []engo.Key
	event  input.Event
}

var keyBindings = []keyBinding{
	{"restartLevel", []engo.Key{engo.KeyEscape}, input.RestartLevel{}},
	{"nextLevel", []engo.Key{engo.KeyN, engo.KeySpace}, input.NextLevel{}},
	{"restart", []engo.Key{engo.KeyR}, input.Restart{}},
	{"magnet", []engo.Key{engo.KeyOne}, input.SelectPowerup{Powerup: string(powerup.Magnet)}},
	{"splitShot", []engo.Key{engo.KeyTwo}, input.SelectPowerup{Powerup: string(powerup.SplitShot)}},
	{"noPowerup", []engo.Key{engo.KeyThree}, input.SelectPowerup{}},
}

// mouseState is one frame's pointer reading in screen coordinates
type mouseState struct {
	position physics.Vector2D
	action   engo.Action
	button   engo.MouseButton
}

// InputSystem turns engo mouse and key input into game commands
type InputSystem struct {
	queue  *input.Queue
	camera *CameraSystem

	down     bool
	last     physics.Vector2D
	havePrev bool
}

// NewInputSystem creates an input system pushing commands onto queue.
// Pointer positions are mapped to world coordinates through camera.
func NewInputSystem(queue *input.Queue, camera *CameraSystem) *InputSystem {
	return &InputSystem{
		queue:  queue,
		camera: camera,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads this frame's input and queues the resulting commands
func (is *InputSystem) Update(dt float32) {
	mouse := mouseState{
		position: physics.Vector2D{X: float64(engo.Input.Mouse.X), Y: float64(engo.Input.Mouse.Y)},
		action:   engo.Input.Mouse.Action,
		button:   engo.Input.Mouse.Button,
	}
	for _, e := range is.translate(mouse) {
		is.queue.Push(e)
	}
	for _, e := range keyEvents(func(name string) bool { return engo.Input.Button(name).JustPressed() }) {
		is.queue.Push(e)
	}
}

// translate converts a pointer reading into drag commands. engo may repeat
// the last action across frames, so presses and releases are edge-triggered
// on the tracked button state.
func (is *InputSystem) translate(m mouseState) []input.Event {
	var events []input.Event
	pos := is.camera.ScreenToWorld(m.position)

	if !is.havePrev || pos != is.last {
		events = append(events, input.DragMove{Position: pos})
		is.last = pos
		is.havePrev = true
	}

	switch {
	case m.action == engo.Press && m.button == engo.MouseButtonLeft && !is.down:
		is.down = true
		events = append(events, input.DragStart{Position: pos})
	case m.action == engo.Release && m.button == engo.MouseButtonLeft && is.down:
		is.down = false
		events = append(events, input.DragEnd{Position: pos})
	case m.action == engo.Press && m.button == engo.MouseButtonRight && is.down:
		is.down = false
		events = append(events, input.Cancel{})
	}
	return events
}

// Dragging reports whether the primary button is held
func (is *InputSystem) Dragging() bool {
	return is.down
}

// keyEvents returns the commands for every bound button pressed this frame
func keyEvents(justPressed func(name string) bool) []input.Event {
	var events []input.Event
	for _, b := range keyBindings {
		if justPressed(b.button) {
			events = append(events, b.event)
		}
	}
	return events
}

// SetupInputBindings registers the key bindings for the game
func SetupInputBindings() {
	for _, b := range keyBindings {
		engo.Input.RegisterButton(b.button, b.keys...)
	}
}
