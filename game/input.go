package game

import (
	"context"
	"math"
	"sync"
	"time"
)

// Pointer is a normalized screen position, each axis in [0,1]
type Pointer struct {
	X, Y float64
}

// PointerAt returns the pointer that steers the player's center onto world
// point (x, y). Points outside the mapped range clamp to the [0,1] edge.
func PointerAt(cfg Config, x, y float64) Pointer {
	in := cfg.Input
	return Pointer{
		X: clamp01(MapRange(x, 0, cfg.ScreenWidth, in.MinX, in.MaxX)),
		Y: clamp01(MapRange(y, cfg.PlayableTop(), cfg.ScreenHeight-cfg.Player.Height/2, in.MinY, in.MaxY)),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Input is one frame of player intent
type Input struct {
	// Pointer is nil when the source has no hand (or cursor) this frame
	Pointer *Pointer

	// Fire is the level-triggered fire signal (pinch, mouse button, space bar)
	Fire bool

	// Commands are edge-triggered and delivered exactly once
	Commands []Command
}

// InputSource produces one Input per frame
type InputSource interface {
	// Poll returns the current input without blocking
	Poll() Input

	// Close releases whatever device the source holds
	Close() error
}

// Calibrator is implemented by sources that need a handshake before play starts.
// Calibrate blocks until the source is ready or ctx is done.
type Calibrator interface {
	Calibrate(ctx context.Context) error
}

// PresenceCalibrator succeeds once the source has reported a pointer on
// enough frames. Each miss takes away MissPenalty detections.
type PresenceCalibrator struct {
	Source      InputSource
	Interval    time.Duration
	Detections  int
	MissPenalty int

	// Progress, if set, is called after every poll with a value in [0,1]
	Progress func(float64)

	// Defer, if set, receives every command other than quit polled during
	// the handshake so the caller can act on it afterwards
	Defer func(Command)
}

// Calibrate polls the source every Interval until enough detections accumulate.
// A quit command aborts with ErrQuit. Other commands go to Defer.
func (c *PresenceCalibrator) Calibrate(ctx context.Context) error {
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	count := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		in := c.Source.Poll()
		for _, cmd := range in.Commands {
			if cmd == CommandQuit {
				return ErrQuit
			}
			if c.Defer != nil {
				c.Defer(cmd)
			}
		}
		if in.Pointer != nil {
			count++
		} else {
			count = max(0, count-c.MissPenalty)
		}
		if c.Progress != nil {
			c.Progress(min(1, float64(count)/float64(c.Detections)))
		}
		if count >= c.Detections {
			return nil
		}
	}
}

// InputLatch is an InputSource fed from another goroutine, typically a UI
// thread. It holds the latest pointer and fire state and queues commands.
type InputLatch struct {
	mu       sync.Mutex
	pointer  *Pointer
	fire     bool
	commands []Command
	closed   bool
	onClose  func() error
}

// NewInputLatch returns an empty latch. onClose, if not nil, runs once on Close.
func NewInputLatch(onClose func() error) *InputLatch {
	return &InputLatch{onClose: onClose}
}

// Set records the latest pointer (nil for none) and fire state
func (l *InputLatch) Set(p *Pointer, fire bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p != nil {
		v := *p
		p = &v
	}
	l.pointer = p
	l.fire = fire
}

// Push queues a command for the next Poll
func (l *InputLatch) Push(cmd Command) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.commands = append(l.commands, cmd)
}

// Poll returns the latest state and drains the command queue
func (l *InputLatch) Poll() Input {
	l.mu.Lock()
	defer l.mu.Unlock()
	in := Input{Fire: l.fire, Commands: l.commands}
	if l.pointer != nil {
		p := *l.pointer
		in.Pointer = &p
	}
	l.commands = nil
	return in
}

// Closed reports whether Close has been called
func (l *InputLatch) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Close marks the latch closed and runs the close hook once
func (l *InputLatch) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	hook := l.onClose
	l.mu.Unlock()

	if hook != nil {
		return hook()
	}
	return nil
}
