// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/render"
)

var backgroundColor = color.RGBA{8, 8, 24, 255}

// SceneOptions tune the engo frontend
type SceneOptions struct {
	// FollowWindow resizes the play area with the window instead of
	// letterboxing a fixed one
	FollowWindow bool
	SpriteSize   int
	FontSize     float64
	// OnExit runs when engo shuts the scene down
	OnExit func()
}

// DefaultSceneOptions returns the options cmd/slingshot starts with
func DefaultSceneOptions() SceneOptions {
	return SceneOptions{
		FollowWindow: true,
		SpriteSize:   128,
		FontSize:     18,
	}
}

// GameScene runs one game inside engo
type GameScene struct {
	world  *ecs.World
	game   *engine.Game
	opts   SceneOptions
	logger *logging.Logger

	// Rendering components
	renderer *EngoRenderer
	assets   *AssetManager
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
}

// NewGameScene creates a scene driving game
func NewGameScene(game *engine.Game, opts SceneOptions, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &GameScene{
		game:   game,
		opts:   opts,
		logger: logger,
		assets: NewAssetManager(opts.SpriteSize),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		panic("GameScene needs an *ecs.World updater")
	}
	scene.world = world
	ctx := context.Background()

	common.SetBackground(backgroundColor)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	if err := scene.assets.LoadAssets(); err != nil {
		scene.logger.Warn(ctx, "sprite textures unavailable, drawing shapes", "error", err.Error())
	}
	font, err := scene.assets.LoadFont(scene.opts.FontSize, color.White)
	if err != nil {
		scene.logger.Warn(ctx, "font unavailable, HUD disabled", "error", err.Error())
		font = nil
	}

	scene.build(renderSystem, font)

	world.AddSystem(scene.camera)
	world.AddSystem(scene.input)
	world.AddSystem(&gameSystem{scene: scene})
	world.AddSystem(scene.hud)

	scene.logger.Info(ctx, "scene ready",
		"level", scene.game.Level,
		"follow_window", scene.opts.FollowWindow,
		"textures", scene.assets.Loaded(),
	)
}

// build wires the frontend systems around sink
func (scene *GameScene) build(sink spriteSink, font *common.Font) {
	scene.camera = NewCameraSystem(scene.game.Input, scene.game.Bounds, scene.opts.FollowWindow)
	scene.input = NewInputSystem(scene.game.Input, scene.camera)
	scene.hud = NewHUDSystem(sink, font)
	scene.renderer = NewEngoRenderer(sink, scene.camera, scene.assets, scene.hud, render.DefaultTrajectoryStyle)
}

// step advances the game by dt seconds and redraws it
func (scene *GameScene) step(dt float32) {
	scene.game.Frame(float64(dt))
	scene.camera.SetWorld(scene.game.Bounds)
	scene.game.Render(scene.renderer)
}

// Exit is called when engo closes the window
func (scene *GameScene) Exit() {
	scene.logger.Info(context.Background(), "scene exiting", "level", scene.game.Level, "frames", scene.frames())
	if scene.opts.OnExit != nil {
		scene.opts.OnExit()
	}
}

func (scene *GameScene) frames() uint64 {
	if scene.renderer == nil {
		return 0
	}
	return scene.renderer.Frames()
}

// gameSystem runs the simulation once per engo frame
type gameSystem struct {
	scene *GameScene
}

// Remove satisfies the ecs.System interface
func (gs *gameSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the game
func (gs *gameSystem) Update(dt float32) {
	gs.scene.step(dt)
}
