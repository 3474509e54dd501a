package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"fingershooter/game"
	"fingershooter/tuning"
)

// options are the command-line settings layered over the tuning file
type options struct {
	configPath string
	watch      bool
	debug      bool
	seed       int64
	tps        int
	profiles   string
}

// apply layers flag overrides onto a loaded config
func (o options) apply(cfg game.Config) game.Config {
	if o.debug {
		cfg.Debug.Enabled = true
	}
	if o.tps > 0 {
		cfg.TickRate = o.tps
	}
	return cfg
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "tuning YAML file overriding the embedded defaults")
	flag.BoolVar(&opts.watch, "watch", false, "reload the tuning file when it changes")
	flag.BoolVar(&opts.debug, "debug", false, "start with the debug overlay on")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed (0 picks one from the clock)")
	flag.IntVar(&opts.tps, "tps", 0, "simulation ticks per second (0 keeps the tuning value)")
	flag.StringVar(&opts.profiles, "profiles", "", "directory for FPS-drop profiles (empty disables capture)")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(opts, log); err != nil {
		log.Error("fingershooter exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(opts options, log *slog.Logger) error {
	cfg, err := tuning.Load(opts.configPath)
	if err != nil {
		return err
	}
	cfg = opts.apply(cfg)

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("starting", slog.Int64("seed", seed), slog.String("config", opts.configPath))

	latch := game.NewInputLatch(nil)
	cell := &game.SnapshotCell{}
	session := game.NewSession(cfg, rand.New(rand.NewSource(seed)), log)
	loop := game.NewLoop(session, latch, cell, log)
	app := NewApp(cfg, latch, cell, rand.New(rand.NewSource(seed+1)))

	if opts.profiles != "" {
		profiler, err := game.NewProfiler(opts.profiles, cfg.Debug, log)
		if err != nil {
			return err
		}
		loop.SetProfiler(profiler)
		defer profiler.Wait()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.watch && opts.configPath != "" {
		w, err := tuning.NewWatcher(opts.configPath)
		if err != nil {
			return err
		}
		defer w.Close()
		go tuning.Follow(ctx, w, func(next game.Config) {
			next = opts.apply(next)
			loop.Reload(next)
			app.SetConfig(next)
		}, log)
	}

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
		app.Stop()
	}()

	ebiten.SetWindowSize(int(cfg.ScreenWidth), int(cfg.ScreenHeight))
	ebiten.SetWindowTitle("Finger Shooter")
	ebiten.SetWindowResizable(true)

	runErr := ebiten.RunGame(app)
	stop()
	return errors.Join(runErr, <-loopErr)
}
