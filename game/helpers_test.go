package game

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"sync"
)

// testRNG returns a seeded RNG for deterministic tests
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newPlayingSession returns a session already past calibration with no grace window
func newPlayingSession() *Session {
	s := NewSession(DefaultConfig(), testRNG(), testLogger())
	s.state = StatePlaying
	return s
}

// centerPointer returns the normalized pointer that maps to the given world point
func centerPointer(cfg Config, x, y float64) *Pointer {
	return &Pointer{
		X: MapRange(x, 0, cfg.ScreenWidth, cfg.Input.MinX, cfg.Input.MaxX),
		Y: MapRange(y, cfg.PlayableTop(), cfg.ScreenHeight-cfg.Player.Height/2, cfg.Input.MinY, cfg.Input.MaxY),
	}
}

type calibratorFunc func(ctx context.Context) error

func (f calibratorFunc) Calibrate(ctx context.Context) error { return f(ctx) }

// scriptedSource replays a fixed list of inputs, then repeats the last one
type scriptedSource struct {
	mu     sync.Mutex
	inputs []Input
	polls  int
	closed bool
}

func (s *scriptedSource) Poll() Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	if len(s.inputs) == 0 {
		return Input{}
	}
	in := s.inputs[0]
	if len(s.inputs) > 1 {
		s.inputs = s.inputs[1:]
	} else {
		s.inputs[0] = Input{Pointer: in.Pointer, Fire: in.Fire}
	}
	return in
}

func (s *scriptedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *scriptedSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// recordingSink keeps every presented snapshot
type recordingSink struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (r *recordingSink) Present(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recordingSink) all() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot(nil), r.snaps...)
}
