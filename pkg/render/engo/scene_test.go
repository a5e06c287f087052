// pkg/render/engo/scene_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/input"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

func newTestScene(t *testing.T, opts SceneOptions) (*GameScene, *fakeSink) {
	t.Helper()
	game := engine.NewGame(config.DefaultConfig(),
		engine.WithSeed(42),
		engine.WithSeedSource(func() int64 { return 7 }),
		engine.WithBounds(world1200x800),
	)
	scene := NewGameScene(game, opts, nil)
	sink := &fakeSink{}
	scene.build(sink, nil)
	return scene, sink
}

// TestNewGameScene tests the creation of a new game scene
func TestNewGameScene(t *testing.T) {
	game := engine.NewGame(config.DefaultConfig())
	scene := NewGameScene(game, DefaultSceneOptions(), nil)

	if scene == nil {
		t.Fatal("NewGameScene() returned nil")
	}
	if scene.game != game {
		t.Error("Expected game to be set correctly")
	}
	if scene.logger == nil {
		t.Error("Expected a default logger")
	}
	if scene.assets == nil || scene.assets.size != 128 {
		t.Errorf("Expected a 128 pixel asset manager, got %+v", scene.assets)
	}
	if scene.frames() != 0 {
		t.Errorf("Expected 0 frames before setup, got %d", scene.frames())
	}
}

// TestGameScene_Type tests the Type method
func TestGameScene_Type(t *testing.T) {
	scene := NewGameScene(engine.NewGame(config.DefaultConfig()), DefaultSceneOptions(), nil)

	if got := scene.Type(); got != "GameScene" {
		t.Errorf("Expected Type() to return %q, got %q", "GameScene", got)
	}
}

func TestGameScene_StepAppliesInputAndDraws(t *testing.T) {
	scene, sink := newTestScene(t, SceneOptions{SpriteSize: 64})

	scene.step(0.016)
	if scene.game.State != engine.StatePlacing {
		t.Fatalf("Expected placing, got %v", scene.game.State)
	}
	// one orb preview, no planet until the pointer moves
	if len(scene.renderer.bodies) != 1 {
		t.Errorf("Expected 1 sprite while placing, got %d", len(scene.renderer.bodies))
	}

	scene.game.Input.Push(input.DragStart{Position: physics.Vector2D{X: 500, Y: 400}})
	scene.step(0.016)

	if scene.game.State != engine.StatePlaying {
		t.Fatalf("Expected playing after placing the planet, got %v", scene.game.State)
	}
	// planet and orb; the craft stays hidden until aimed
	if len(scene.renderer.bodies) != 2 {
		t.Errorf("Expected 2 sprites, got %d", len(scene.renderer.bodies))
	}
	if scene.frames() != 2 {
		t.Errorf("Expected 2 frames, got %d", scene.frames())
	}
	if len(sink.added) < 2 {
		t.Errorf("Expected sprites to reach the sink, got %d", len(sink.added))
	}

	scene.hud.Update(0.016)
	if lines := scene.hud.Lines(); len(lines) != 3 || lines[0] != "Level 1/15  Bounces 4  Orbs 1  [magnet:2 split_shot:3]" {
		t.Errorf("HUD lines %q", lines)
	}
}

func TestGameScene_FollowWindowResizesGame(t *testing.T) {
	scene, _ := newTestScene(t, SceneOptions{FollowWindow: true, SpriteSize: 64})

	scene.camera.SetWindow(physics.Bounds{Width: 1000, Height: 700})
	scene.step(0.016)

	want := physics.Bounds{Width: 1000, Height: 700}
	if scene.game.Bounds != want {
		t.Errorf("Game bounds %v, want %v", scene.game.Bounds, want)
	}
	if scene.camera.World() != want || scene.camera.Zoom() != 1 {
		t.Errorf("Camera shows %v at zoom %f", scene.camera.World(), scene.camera.Zoom())
	}
}

func TestGameScene_LetterboxKeepsGameSize(t *testing.T) {
	scene, _ := newTestScene(t, SceneOptions{SpriteSize: 64})

	scene.camera.SetWindow(physics.Bounds{Width: 600, Height: 600})
	scene.step(0.016)

	if scene.game.Bounds != world1200x800 {
		t.Errorf("Game bounds changed to %v", scene.game.Bounds)
	}
	if scene.camera.Zoom() != 0.5 {
		t.Errorf("Expected zoom 0.5, got %f", scene.camera.Zoom())
	}
}

func TestGameScene_ExitRunsHook(t *testing.T) {
	called := false
	scene, _ := newTestScene(t, SceneOptions{OnExit: func() { called = true }})

	scene.Exit()

	if !called {
		t.Error("Expected OnExit to run")
	}
}
