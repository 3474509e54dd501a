package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrCalibration wraps every failed or timed out start handshake
	ErrCalibration = errors.New("game: calibration failed")

	// ErrInvalidCommand is returned for a command the current state does not accept
	ErrInvalidCommand = errors.New("game: invalid command")

	// ErrQuit reports that a quit was requested while a blocking call was running
	ErrQuit = errors.New("game: quit requested")
)

// Command is a user-facing action, independent of the device that produced it
type Command int

const (
	CommandStart Command = iota
	CommandToggleDebug
	CommandRestart
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandToggleDebug:
		return "toggle_debug"
	case CommandRestart:
		return "restart"
	case CommandQuit:
		return "quit"
	}
	return "unknown"
}

// Start runs the calibration handshake and, if it succeeds, begins play.
// The handshake is bounded by the configured calibration timeout. On failure
// the session stays on the instructions screen and the error is kept for display.
func (s *Session) Start(ctx context.Context, cal Calibrator) error {
	if s.state != StateInstructions {
		return fmt.Errorf("%w: start while %s", ErrInvalidCommand, s.state)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Calibration.Timeout)
	defer cancel()

	s.calibration = 0
	s.log.Info("calibration started", slog.Duration("timeout", s.cfg.Calibration.Timeout))
	if err := cal.Calibrate(ctx); err != nil {
		if errors.Is(err, ErrQuit) {
			return err
		}
		s.lastErr = fmt.Errorf("%w: %w", ErrCalibration, err)
		s.log.Warn("calibration failed", slog.Any("error", err))
		return s.lastErr
	}

	s.lastErr = nil
	s.calibration = 1
	s.startGrace = true
	s.setState(StatePlaying)
	return nil
}

// Restart returns a finished game to the instructions screen with every
// counter and collection reset.
func (s *Session) Restart() error {
	if s.state != StateGameOver {
		return fmt.Errorf("%w: restart while %s", ErrInvalidCommand, s.state)
	}
	s.setState(StateInstructions)
	s.reset()
	return nil
}

// ToggleDebug flips the debug overlay
func (s *Session) ToggleDebug() {
	s.debug = !s.debug
	s.log.Debug("debug overlay toggled", slog.Bool("enabled", s.debug))
}

// SetCalibrationProgress records handshake progress for display
func (s *Session) SetCalibrationProgress(p float64) {
	s.calibration = p
}
