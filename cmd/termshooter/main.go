// Command termshooter plays the shooter in a terminal. The mouse or the arrow
// keys stand in for the tracked hand.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"fingershooter/game"
	"fingershooter/term"
	"fingershooter/tuning"
)

// drawRate is how often the terminal is repainted, independent of the tick rate
const drawRate = 30

func main() {
	var (
		configPath = flag.String("config", "", "tuning YAML file overriding the embedded defaults")
		watch      = flag.Bool("watch", false, "reload the tuning file when it changes")
		debug      = flag.Bool("debug", false, "start with the debug overlay on")
		seed       = flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
		tps        = flag.Int("tps", 0, "simulation ticks per second (0 keeps the tuning value)")
		profiles   = flag.String("profiles", "", "directory for FPS-drop profiles (empty disables capture)")
		logPath    = flag.String("log", "", "log file (the terminal is the screen, so logs are dropped without one)")
	)
	flag.Parse()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "termshooter: open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	log := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	override := func(cfg game.Config) game.Config {
		if *debug {
			cfg.Debug.Enabled = true
		}
		if *tps > 0 {
			cfg.TickRate = *tps
		}
		return cfg
	}

	err := run(*configPath, *watch, *seed, *profiles, override, log)
	if err != nil {
		log.Error("termshooter exited", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "termshooter: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, watch bool, seed int64, profiles string, override func(game.Config) game.Config, log *slog.Logger) error {
	cfg, err := tuning.Load(configPath)
	if err != nil {
		return err
	}
	cfg = override(cfg)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("termshooter: open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("termshooter: init terminal: %w", err)
	}
	defer screen.Fini()

	src := term.NewSource(screen, cfg, log)
	cell := &game.SnapshotCell{}
	session := game.NewSession(cfg, rand.New(rand.NewSource(seed)), log)
	loop := game.NewLoop(session, src, cell, log)
	log.Info("starting", slog.Int64("seed", seed), slog.String("run", loop.RunID()))

	if profiles != "" {
		profiler, err := game.NewProfiler(profiles, cfg.Debug, log)
		if err != nil {
			return err
		}
		loop.SetProfiler(profiler)
		defer profiler.Wait()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch && configPath != "" {
		w, err := tuning.NewWatcher(configPath)
		if err != nil {
			return err
		}
		defer w.Close()
		go tuning.Follow(ctx, w, func(next game.Config) {
			next = override(next)
			loop.Reload(next)
			src.SetConfig(next)
		}, log)
	}

	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()

	renderer := term.NewRenderer(screen)
	ticker := time.NewTicker(time.Second / drawRate)
	defer ticker.Stop()
	for {
		select {
		case err := <-loopErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case <-ticker.C:
			if snap, ok := cell.Latest(); ok {
				renderer.Draw(snap)
			}
		}
	}
}
