// cmd/slingshot/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-slingshot/pkg/logging"
	engorender "github.com/opd-ai/go-slingshot/pkg/render/engo"
	"github.com/opd-ai/go-slingshot/pkg/session"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	savePath := flag.String("save", "", "Path to the save file (overrides SLINGSHOT_SAVE_PATH)")
	level := flag.Int("level", 0, "Start at this level instead of the saved one")
	difficulty := flag.String("difficulty", "", "Difficulty: easy, normal or hard")
	seed := flag.Int64("seed", 0, "Fix the first level's orb layout")
	noSave := flag.Bool("no-save", false, "Do not read or write the save file")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	fixed := flag.Bool("fixed", false, "Keep the configured play area and letterbox it when the window changes size")
	flag.Parse()

	ctx := context.Background()
	logger := logging.NewLogger()

	sess, err := session.Open(ctx, session.Options{
		ConfigPath: *configPath,
		SavePath:   *savePath,
		Difficulty: *difficulty,
		Seed:       *seed,
		Level:      *level,
		NoSave:     *noSave,
	}, logger)
	if err != nil {
		logger.Error(ctx, "Failed to start game", err)
		os.Exit(1)
	}

	window := sess.Config.WindowConfig
	sceneOpts := engorender.DefaultSceneOptions()
	sceneOpts.FollowWindow = !*fixed
	sceneOpts.OnExit = func() {
		if err := sess.Close(ctx); err != nil {
			logger.Error(ctx, "Failed to save progress", err)
		}
	}
	scene := engorender.NewGameScene(sess.Game, sceneOpts, logger)

	opts := engo.RunOptions{
		Title:      "Slingshot",
		Width:      int(window.Width),
		Height:     int(window.Height),
		Fullscreen: *fullscreen,
		VSync:      true,
		FPSLimit:   window.TargetFPS,
	}

	logger.Info(ctx, "starting window",
		"width", opts.Width,
		"height", opts.Height,
		"follow_window", sceneOpts.FollowWindow,
	)
	engo.Run(opts, scene)
}
