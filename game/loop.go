package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sink consumes one snapshot per frame. Present must return quickly.
type Sink interface {
	Present(Snapshot)
}

// SnapshotCell is a Sink that keeps only the most recent snapshot, for
// frontends that draw on their own thread.
type SnapshotCell struct {
	mu   sync.Mutex
	snap Snapshot
	ok   bool
}

// Present stores snap as the latest snapshot
func (c *SnapshotCell) Present(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.ok = true
}

// Latest returns the last presented snapshot and whether there was one
func (c *SnapshotCell) Latest() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap, c.ok
}

// Loop drives a session at a fixed tick rate
type Loop struct {
	session  *Session
	src      InputSource
	sink     Sink
	log      *slog.Logger
	runID    uuid.UUID
	reload   chan Config
	fps      *FPSCounter
	profiler *Profiler

	start time.Time
	frame uint64

	// commands polled during calibration, replayed on the next tick
	deferred []Command
}

// NewLoop wires a session to its input source and presentation sink
func NewLoop(session *Session, src InputSource, sink Sink, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.Default()
	}
	id := uuid.New()
	return &Loop{
		session: session,
		src:     src,
		sink:    sink,
		log:     log.With("component", "loop", "run", id.String()),
		runID:   id,
		reload:  make(chan Config, 1),
		fps:     NewFPSCounter(session.Config().Debug.FPSWindow),
	}
}

// SetProfiler enables frame-rate triggered profiling while the debug overlay is on
func (l *Loop) SetProfiler(p *Profiler) {
	l.profiler = p
}

// RunID identifies this loop in logs and the debug overlay
func (l *Loop) RunID() string {
	return l.runID.String()
}

// Reload queues cfg to be applied between frames. Only the newest pending
// config is kept.
func (l *Loop) Reload(cfg Config) {
	for {
		select {
		case l.reload <- cfg:
			return
		default:
		}
		select {
		case <-l.reload:
		default:
		}
	}
}

// Run ticks the session until ctx is done or a quit command arrives. The
// input source is closed on every return path.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := l.src.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("game: close input: %w", cerr))
		}
	}()

	interval := l.session.Config().TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.start = time.Now()
	l.log.Info("loop started", slog.Duration("tick", interval))

	for {
		select {
		case <-ctx.Done():
			l.log.Info("loop stopped", slog.Uint64("frames", l.frame))
			return nil

		case cfg := <-l.reload:
			l.session.Reconfigure(cfg)
			if next := cfg.TickInterval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}

		case t := <-ticker.C:
			if l.tick(ctx, t) {
				l.log.Info("quit requested", slog.Uint64("frames", l.frame))
				return nil
			}
		}
	}
}

// tick runs one frame and reports whether the loop should stop
func (l *Loop) tick(ctx context.Context, t time.Time) bool {
	now := t.Sub(l.start)
	in := l.src.Poll()
	cmds := append(l.deferred, in.Commands...)
	l.deferred = nil

	for _, cmd := range cmds {
		switch cmd {
		case CommandQuit:
			return true
		case CommandToggleDebug:
			l.session.ToggleDebug()
		case CommandRestart:
			if err := l.session.Restart(); err != nil {
				l.log.Debug("command ignored", slog.String("command", cmd.String()), slog.Any("error", err))
			}
		case CommandStart:
			err := l.session.Start(ctx, l.calibrator())
			switch {
			case errors.Is(err, ErrQuit):
				return true
			case errors.Is(err, ErrInvalidCommand):
				l.log.Debug("command ignored", slog.String("command", cmd.String()), slog.Any("error", err))
			case err == nil:
				// The input polled before calibration is stale.
				l.present(time.Now())
				return false
			}
		}
	}

	l.session.Step(in, now)
	l.present(time.Now())
	return false
}

// calibrator returns the source's own handshake, or a presence count over it
func (l *Loop) calibrator() Calibrator {
	if c, ok := l.src.(Calibrator); ok {
		return c
	}
	cfg := l.session.Config()
	return &PresenceCalibrator{
		Source:      l.src,
		Interval:    cfg.TickInterval(),
		Detections:  cfg.Calibration.Detections,
		MissPenalty: cfg.Calibration.MissPenalty,
		Progress: func(p float64) {
			l.session.SetCalibrationProgress(p)
			l.present(time.Now())
		},
		Defer: func(cmd Command) {
			l.deferred = append(l.deferred, cmd)
		},
	}
}

func (l *Loop) present(t time.Time) {
	l.frame++
	fps := l.fps.Tick(t)

	snap := l.session.Snapshot()
	snap.Frame = l.frame
	snap.Debug.FPS = fps
	snap.Debug.RunID = l.runID.String()
	l.sink.Present(snap)

	if l.profiler != nil && snap.Debug.Enabled {
		l.profiler.Observe(fps)
	}
}
