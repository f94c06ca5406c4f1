// Package playback implements the frame scheduling state machine: it
// owns play/stop/seek, advances the current frame index on a fixed-rate
// clock, and drives composition of the current frame onto the surface.
package playback

import (
	"sync"
	"time"

	"github.com/lithica-io/flipbook/frame"
	"github.com/lithica-io/flipbook/log"
	"github.com/lithica-io/flipbook/metrics"
	"github.com/lithica-io/flipbook/surface"
	"github.com/lithica-io/flipbook/types"
)

// DefaultFPS is the default target playback rate.
const DefaultFPS = 24

// DefaultRefreshRate is the default tick evaluation rate in Hz. Each
// tick is one opportunity to advance; the effective frame rate is capped
// at, but not necessarily equal to, this rate.
const DefaultRefreshRate = 60

// Options configures a Scheduler.
type Options struct {
	// FrameCount is the sequence length (required, positive).
	FrameCount int
	// FPS is the target playback rate. Zero uses DefaultFPS.
	FPS int
	// Loop restarts the sequence after the last frame.
	Loop bool
	// PlayOnce halts playback after the final frame has been shown once.
	PlayOnce bool
	// RefreshRate is the tick rate in Hz. Zero uses DefaultRefreshRate.
	RefreshRate int
	// Store supplies frames by index (required).
	Store *frame.Store
	// Surface is the drawing target (required).
	Surface surface.Surface
	// Metrics receives playback counters (optional).
	Metrics *metrics.Collector
	// Logger receives playback diagnostics (optional).
	Logger *log.Logger
	// OnStopped, if non-nil, is invoked (on its own goroutine) each time
	// the scheduler leaves the playing state.
	OnStopped func(frameIndex int)
}

// Scheduler is the playback state machine. All state transitions happen
// under one mutex, so a Stop that has returned is guaranteed to precede
// any later tick's observation of the state: no stale tick can advance
// or render after Stop.
type Scheduler struct {
	frameCount int
	loop       bool
	playOnce   bool
	interval   time.Duration
	refresh    time.Duration

	store     *frame.Store
	surface   surface.Surface
	collector *metrics.Collector
	logger    *log.Logger
	onStopped func(int)

	// nowFunc is the time source, a seam for tests.
	nowFunc func() time.Time

	mu            sync.Mutex
	status        types.PlaybackStatus
	index         int
	lastTick      time.Time
	completedOnce bool
	ready         bool
	failed        bool
	stop          chan struct{}
}

// NewScheduler creates an idle scheduler. Play is gated until MarkReady.
func NewScheduler(opts Options) *Scheduler {
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	refresh := opts.RefreshRate
	if refresh <= 0 {
		refresh = DefaultRefreshRate
	}
	// Callers validate frame counts, but the advance arithmetic divides
	// by frameCount, so clamp rather than trust.
	frameCount := opts.FrameCount
	if frameCount < 1 {
		frameCount = 1
	}
	return &Scheduler{
		frameCount: frameCount,
		loop:       opts.Loop,
		playOnce:   opts.PlayOnce,
		interval:   time.Second / time.Duration(fps),
		refresh:    time.Second / time.Duration(refresh),
		store:      opts.Store,
		surface:    opts.Surface,
		collector:  opts.Metrics,
		logger:     opts.Logger,
		onStopped:  opts.OnStopped,
		nowFunc:    time.Now,
		status:     types.StatusIdle,
	}
}

// MarkReady unblocks Play once every frame has loaded.
func (s *Scheduler) MarkReady() {
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
}

// MarkFailed permanently disables playback; Play and PlayFrom become
// silent no-ops. Used when frame loading fails.
func (s *Scheduler) MarkFailed() {
	s.mu.Lock()
	s.failed = true
	s.mu.Unlock()
}

// Status returns the current playback status.
func (s *Scheduler) Status() types.PlaybackStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Index returns the current frame index.
func (s *Scheduler) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Play starts playback from frame 0. It is a no-op while already
// playing, while frames are still loading, or after a fatal load error.
// It never returns an error; failure modes are silent by design.
func (s *Scheduler) Play() {
	s.playFrom(0)
}

// PlayFrom starts playback from the given frame index, clamped into
// [0, frameCount-1]. Same guards as Play.
func (s *Scheduler) PlayFrom(startIndex int) {
	s.playFrom(startIndex)
}

func (s *Scheduler) playFrom(startIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed || !s.ready || s.status == types.StatusPlaying {
		return
	}

	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex > s.frameCount-1 {
		startIndex = s.frameCount - 1
	}

	s.index = startIndex
	s.completedOnce = false
	s.status = types.StatusPlaying
	s.lastTick = s.nowFunc()
	s.armLocked()

	if s.logger != nil {
		s.logger.Debug("playback started", map[string]any{"frame": s.index})
	}
}

// Stop halts playback, preserving the current frame position. It is a
// no-op unless playing; in particular a Stop before the first Play
// leaves the state idle. Once Stop returns, no pending tick can still
// execute.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != types.StatusPlaying {
		return
	}
	s.haltLocked()
}

// armLocked starts the tick loop for the current playing run.
func (s *Scheduler) armLocked() {
	stop := make(chan struct{})
	s.stop = stop
	ticker := time.NewTicker(s.refresh)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.tick(s.nowFunc())
			}
		}
	}()
}

// haltLocked transitions to stopped and cancels the tick loop.
func (s *Scheduler) haltLocked() {
	s.status = types.StatusStopped
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	if s.logger != nil {
		s.logger.Debug("playback stopped", map[string]any{"frame": s.index})
	}
	if s.onStopped != nil {
		go s.onStopped(s.index)
	}
}

// tick evaluates one clock tick at time now. If the target frame
// interval has not yet elapsed, nothing advances and nothing redraws.
// Otherwise the current frame is rendered, then the index advances by
// exactly one, modulo the frame count. Residual elapsed time beyond the
// interval carries into lastTick so long runs do not drift.
func (s *Scheduler) tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != types.StatusPlaying {
		return
	}
	s.collector.IncTick()

	elapsed := now.Sub(s.lastTick)
	if elapsed < s.interval {
		return
	}

	if err := s.renderLocked(); err != nil {
		// A draw failure is fatal to this playback run, not to the
		// session: stop, keep the position, stay restartable.
		s.collector.IncRenderFailure()
		if s.logger != nil {
			s.logger.Error("render failed", map[string]any{
				"frame": s.index,
				"error": err.Error(),
			})
		}
		s.haltLocked()
		return
	}

	if s.index == s.frameCount-1 {
		s.completedOnce = true
		s.collector.IncWrap()
		if s.playOnce && !s.loop {
			// The final frame has just been rendered; freeze there.
			s.haltLocked()
			return
		}
	}

	if !(s.playOnce && !s.loop && s.completedOnce) {
		s.index = (s.index + 1) % s.frameCount
	}
	s.lastTick = now.Add(-(elapsed % s.interval))
}

// renderLocked draws the current frame. An empty slot (which should not
// happen after a completed load) is skipped silently.
func (s *Scheduler) renderLocked() error {
	f, ok := s.store.Frame(s.index)
	if !ok {
		return nil
	}
	if err := s.surface.Draw(f.Image); err != nil {
		return err
	}
	s.collector.IncFrameRendered()
	return nil
}

// RenderCurrent draws the current frame outside the tick cycle, for the
// initial paint and for forced re-renders after a resize. Unlike the
// tick path a failure here does not change playback state.
func (s *Scheduler) RenderCurrent() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked()
}

// ApplySize runs a surface mutation and re-renders the current frame as
// one step, so no tick can draw between the resize and the repaint.
func (s *Scheduler) ApplySize(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	return s.renderLocked()
}
