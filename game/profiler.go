package game

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

var (
	errCaptureCooldown  = errors.New("capture on cooldown")
	errAlreadyProfiling = errors.New("already profiling")
)

// FPSCounter measures presented frames per second over a fixed window
type FPSCounter struct {
	window      time.Duration
	windowStart time.Time
	frames      int
	fps         float64
}

// NewFPSCounter creates a counter that refreshes its reading every window
func NewFPSCounter(window time.Duration) *FPSCounter {
	if window <= 0 {
		window = 500 * time.Millisecond
	}
	return &FPSCounter{window: window}
}

// Tick records one frame at t and returns the latest reading. The reading is
// zero until the first full window has elapsed.
func (f *FPSCounter) Tick(t time.Time) float64 {
	if f.windowStart.IsZero() {
		f.windowStart = t
	}
	f.frames++
	if elapsed := t.Sub(f.windowStart); elapsed >= f.window {
		f.fps = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.windowStart = t
	}
	return f.fps
}

// FPS returns the latest reading
func (f *FPSCounter) FPS() float64 {
	return f.fps
}

// Profiler handles automatic performance profiling
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration
	threshold       float64

	log *slog.Logger
	wg  sync.WaitGroup
}

// NewProfiler creates a profiler writing into dir. A capture starts whenever an
// observed frame rate falls below cfg.ProfileBelow.
func NewProfiler(dir string, cfg DebugConfig, log *slog.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("game: create profiles dir: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Profiler{
		captureCooldown: cfg.ProfileCooldown,
		profilesDir:     dir,
		captureDuration: cfg.ProfileLength,
		threshold:       cfg.ProfileBelow,
		log:             log.With("component", "profiler"),
	}, nil
}

// Observe starts a capture if fps is a real reading below the threshold
func (p *Profiler) Observe(fps float64) {
	if fps <= 0 || fps >= p.threshold {
		return
	}
	err := p.CaptureProfile(fmt.Sprintf("fps%.0f", fps))
	switch {
	case err == nil:
		p.log.Warn("fps drop, capturing profile", slog.Float64("fps", fps))
	case errors.Is(err, errCaptureCooldown), errors.Is(err, errAlreadyProfiling):
	default:
		p.log.Error("profile capture", slog.Any("error", err))
	}
}

// CaptureProfile captures a CPU profile and an execution trace in the background
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if since := time.Since(p.lastCaptureTime); since < p.captureCooldown {
		return fmt.Errorf("%w (last capture was %v ago)", errCaptureCooldown, since)
	}
	if p.isProfiling {
		return errAlreadyProfiling
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.log.Error("cpu profile", slog.Any("error", err))
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.log.Error("trace", slog.Any("error", err))
			}
		}()
		wg.Wait()

		p.analyzeProfile(baseName)
	}()

	return nil
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("start cpu profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	p.log.Info("cpu profile saved", slog.String("path", profilePath))
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	p.log.Info("trace saved", slog.String("path", tracePath))
	return nil
}

// analyzeProfile logs the profile size and the heap state at capture time
func (p *Profiler) analyzeProfile(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	info, err := os.Stat(profilePath)
	if err != nil {
		p.log.Warn("could not analyze profile", slog.Any("error", err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.log.Info("profile captured",
		slog.String("path", profilePath),
		slog.Float64("size_kb", float64(info.Size())/1024),
		slog.String("view", "go tool pprof -http=:8080 "+profilePath),
		slog.Uint64("alloc_kb", m.Alloc/1024),
		slog.Uint64("total_alloc_kb", m.TotalAlloc/1024),
		slog.Uint64("sys_kb", m.Sys/1024),
		slog.Uint64("num_gc", uint64(m.NumGC)),
		slog.Uint64("heap_objects", m.HeapObjects),
	)
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// Wait blocks until any running capture has finished writing
func (p *Profiler) Wait() {
	p.wg.Wait()
}
