package term

import (
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"fingershooter/game"
)

// Source is a game.InputSource reading a tcell screen. The mouse or the arrow
// keys steer a cursor cell; the left button or the space toggle fires; h
// simulates the hand leaving the camera.
type Source struct {
	screen tcell.Screen
	latch  *game.InputLatch
	log    *slog.Logger
	done   chan struct{}

	mu        sync.Mutex
	cfg       game.Config
	col, row  int
	handAway  bool
	autoFire  bool
	mouseFire bool
}

// NewSource starts reading events from an initialized screen. The cursor
// starts at the center of the playfield with the hand present.
func NewSource(screen tcell.Screen, cfg game.Config, log *slog.Logger) *Source {
	if log == nil {
		log = slog.Default()
	}
	screen.EnableMouse(tcell.MouseMotionEvents)

	s := &Source{
		screen: screen,
		log:    log.With("component", "term_input"),
		done:   make(chan struct{}),
		cfg:    cfg,
	}
	s.latch = game.NewInputLatch(s.stop)

	g := s.grid()
	s.col, s.row = g.Cols/2, hudRows+g.PlayRows()*3/4
	s.publish()

	go s.run()
	return s
}

// Poll implements game.InputSource
func (s *Source) Poll() game.Input {
	return s.latch.Poll()
}

// Close stops the event reader. The screen itself stays open.
func (s *Source) Close() error {
	return s.latch.Close()
}

// SetConfig updates the mapping used for new pointer positions
func (s *Source) SetConfig(cfg game.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.publish()
}

func (s *Source) stop() error {
	// Wake PollEvent so run can see the latch is closed.
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	<-s.done
	return nil
}

func (s *Source) run() {
	defer close(s.done)
	for {
		ev := s.screen.PollEvent()
		if ev == nil || s.latch.Closed() {
			return
		}
		s.handle(ev)
	}
}

func (s *Source) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		s.handleKey(ev)
	case *tcell.EventMouse:
		col, row := ev.Position()
		s.mu.Lock()
		s.col, s.row = col, row
		s.handAway = false
		s.mouseFire = ev.Buttons()&tcell.Button1 != 0
		s.mu.Unlock()
	case *tcell.EventResize:
		s.screen.Sync()
		s.mu.Lock()
		g := s.gridLocked()
		s.col = min(s.col, g.Cols-1)
		s.row = min(s.row, hudRows+g.PlayRows()-1)
		s.mu.Unlock()
	default:
		return
	}
	s.publish()
}

func (s *Source) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.latch.Push(game.CommandQuit)
	case tcell.KeyEnter:
		s.latch.Push(game.CommandStart)
	case tcell.KeyUp:
		s.nudge(0, -1)
	case tcell.KeyDown:
		s.nudge(0, 1)
	case tcell.KeyLeft:
		s.nudge(-1, 0)
	case tcell.KeyRight:
		s.nudge(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			s.latch.Push(game.CommandQuit)
		case 'd':
			s.latch.Push(game.CommandToggleDebug)
		case 'r':
			s.latch.Push(game.CommandRestart)
		case ' ':
			s.mu.Lock()
			s.autoFire = !s.autoFire
			s.mu.Unlock()
		case 'h':
			s.mu.Lock()
			s.handAway = !s.handAway
			s.mu.Unlock()
		}
	}
}

func (s *Source) nudge(dc, dr int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.gridLocked()
	s.col = max(0, min(g.Cols-1, s.col+dc))
	s.row = max(hudRows, min(hudRows+g.PlayRows()-1, s.row+dr))
	s.handAway = false
}

// publish pushes the current cursor and trigger state into the latch
func (s *Source) publish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fire := s.autoFire || s.mouseFire
	if s.handAway {
		s.latch.Set(nil, fire)
		return
	}
	s.latch.Set(PointerAt(s.cfg, s.gridLocked(), s.col, s.row), fire)
}

func (s *Source) grid() Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gridLocked()
}

func (s *Source) gridLocked() Grid {
	cols, rows := s.screen.Size()
	return NewGrid(cols, rows, s.cfg.Viewport())
}
