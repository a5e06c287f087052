// cmd/slingshot-tui/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/render"
	"github.com/opd-ai/go-slingshot/pkg/session"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	savePath := flag.String("save", "", "Path to the save file (overrides SLINGSHOT_SAVE_PATH)")
	level := flag.Int("level", 0, "Start at this level instead of the saved one")
	difficulty := flag.String("difficulty", "", "Difficulty: easy, normal or hard")
	seed := flag.Int64("seed", 0, "Fix the first level's orb layout")
	noSave := flag.Bool("no-save", false, "Do not read or write the save file")
	logPath := flag.String("log", "slingshot-tui.log", "Log file; the terminal is in use")
	flag.Parse()

	ctx := context.Background()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logging.NewLogger().Error(ctx, "Failed to open log file", err, "path", *logPath)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := logging.NewLoggerWithWriter(logFile)

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
		logging.NewLogger().Error(ctx, "Failed to start game", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		logger.Error(ctx, "Failed to initialize terminal screen", err)
		sess.Close(ctx)
		os.Exit(1)
	}
	screen.EnableMouse()

	run(ctx, screen, sess.Game, logger)
	screen.Fini()

	if err := sess.Close(ctx); err != nil {
		logger.Error(ctx, "Failed to save progress", err)
	}
}

// run drives the game until the player quits or a signal arrives. Terminal
// events are read on their own goroutine and handed to the loop.
func run(ctx context.Context, screen tcell.Screen, game *engine.Game, logger *logging.Logger) {
	renderer := render.NewTerminalRenderer(screen, game.Bounds, render.DefaultTrajectoryStyle)
	ptr := newPointer(renderer.ScreenToWorld)

	fps := max(game.Config.WindowConfig.TargetFPS, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	timer := engine.NewFrameTimer(engine.SystemClock{}, game.Config.GameRules.MaxFrameTime)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	logger.Info(ctx, "terminal frontend running", "fps", fps)
	for {
		select {
		case ev := <-eventChan:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				continue
			}
			events, quit := ptr.translate(ev)
			if quit {
				return
			}
			for _, e := range events {
				game.Input.Push(e)
			}

		case sig := <-sigChan:
			logger.Info(ctx, "Shutting down", "signal", sig.String())
			return

		case <-ticker.C:
			game.Frame(timer.Tick())
			renderer.SetBounds(game.Bounds)
			game.Render(renderer)
		}
	}
}
