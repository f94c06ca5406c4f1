// Package session assembles a playable frame sequence: it owns the
// loader, the sizer and the playback scheduler for one sequence, and
// publishes lifecycle events to an optional downstream adapter.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lithica-io/flipbook/adapter"
	"github.com/lithica-io/flipbook/frame"
	"github.com/lithica-io/flipbook/log"
	"github.com/lithica-io/flipbook/metrics"
	"github.com/lithica-io/flipbook/playback"
	"github.com/lithica-io/flipbook/sizing"
	"github.com/lithica-io/flipbook/surface"
	"github.com/lithica-io/flipbook/types"
)

// DefaultImageBasePath is prepended to sequence directories when no
// base path is configured.
const DefaultImageBasePath = "assets/sequences/"

// DefaultDigits is the default zero-padding width of frame numbers.
const DefaultDigits = 3

// publishTimeout bounds a single adapter publish.
const publishTimeout = 5 * time.Second

// ConfigurationError reports an invalid session configuration. It is
// fatal: New refuses to construct a session from a bad config.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("configuration: missing required field %q", e.Field)
	}
	return fmt.Sprintf("configuration: invalid field %q: %s", e.Field, e.Reason)
}

// Config describes one frame sequence session.
type Config struct {
	// Surface is the drawing target (required).
	Surface surface.Surface
	// NamePrefix names the sequence (required). It is both the directory
	// segment and the filename stem of the sequence's frames.
	NamePrefix string
	// FrameCount is the number of frames in the sequence (required,
	// positive).
	FrameCount int

	// ImageBasePath is the path prefix under which sequence directories
	// live. Empty uses DefaultImageBasePath.
	ImageBasePath string
	// Digits is the zero-padding width of frame numbers. Zero uses
	// DefaultDigits.
	Digits int
	// FPS is the target playback rate. Zero uses playback.DefaultFPS.
	FPS int

	// NoLoop disables restarting the sequence after the last frame.
	NoLoop bool
	// NoAutoplay disables starting playback automatically once loaded.
	NoAutoplay bool
	// PlayOnce halts playback after the final frame has been shown once.
	PlayOnce bool
	// Debug enables debug-level logging for this session.
	Debug bool

	// BatchSize overrides the frame loader's batch size when positive.
	BatchSize int
	// RefreshRate overrides the scheduler tick rate in Hz when positive.
	RefreshRate int

	// ContainerWidth and ContainerHeight, when both positive, size the
	// surface before the first frame is painted.
	ContainerWidth  int
	ContainerHeight int

	// Source supplies frame bytes. Nil uses a filesystem source rooted
	// at the working directory.
	Source frame.Source
	// Adapter receives lifecycle events (optional). The session does not
	// close it.
	Adapter adapter.Adapter
	// OnProgress receives loading progress fractions in (0, 1].
	OnProgress frame.ProgressFunc
	// Logger overrides the session's logger (optional).
	Logger *log.Logger
}

// Validate reports the first configuration problem, or nil.
func (c *Config) Validate() error {
	if c.Surface == nil {
		return &ConfigurationError{Field: "surface"}
	}
	if c.NamePrefix == "" {
		return &ConfigurationError{Field: "name_prefix"}
	}
	if c.FrameCount <= 0 {
		if c.FrameCount == 0 {
			return &ConfigurationError{Field: "frame_count"}
		}
		return &ConfigurationError{Field: "frame_count", Reason: fmt.Sprintf("must be positive, got %d", c.FrameCount)}
	}
	if c.Digits < 0 {
		return &ConfigurationError{Field: "digits", Reason: fmt.Sprintf("must be positive, got %d", c.Digits)}
	}
	if c.FPS < 0 {
		return &ConfigurationError{Field: "fps", Reason: fmt.Sprintf("must be positive, got %d", c.FPS)}
	}
	return nil
}

// Session drives playback of one frame sequence. Construction is inert:
// no I/O happens until Start.
type Session struct {
	meta      types.SessionMeta
	cfg       Config
	logger    *log.Logger
	collector *metrics.Collector

	store *frame.Store
	sizer *sizing.Sizer
	sched *playback.Scheduler

	mu        sync.Mutex
	started   bool
	loadErr   error
	container [2]int
}

// New validates the config and assembles a session. No frames are
// loaded and nothing is drawn until Start.
func New(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.ImageBasePath == "" {
		cfg.ImageBasePath = DefaultImageBasePath
	}
	if cfg.Digits == 0 {
		cfg.Digits = DefaultDigits
	}
	if cfg.Source == nil {
		cfg.Source = frame.NewFSSource("")
	}

	meta := types.SessionMeta{
		SessionID: uuid.NewString(),
		Prefix:    cfg.NamePrefix,
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewLogger(meta, cfg.Debug)
	}
	collector := metrics.NewCollector(meta.Prefix, meta.SessionID, cfg.Source.Kind())

	store := frame.NewStore(cfg.FrameCount, frame.StoreOptions{
		Source:    cfg.Source,
		Paths:     frame.NewPathBuilder(cfg.ImageBasePath, cfg.NamePrefix, cfg.Digits),
		BatchSize: cfg.BatchSize,
		Metrics:   collector,
		Logger:    logger,
	})

	s := &Session{
		meta:      meta,
		cfg:       cfg,
		logger:    logger,
		collector: collector,
		store:     store,
		sizer:     sizing.NewSizer(),
		container: [2]int{cfg.ContainerWidth, cfg.ContainerHeight},
	}

	s.sched = playback.NewScheduler(playback.Options{
		FrameCount:  cfg.FrameCount,
		FPS:         cfg.FPS,
		Loop:        !cfg.NoLoop,
		PlayOnce:    cfg.PlayOnce,
		RefreshRate: cfg.RefreshRate,
		Store:       store,
		Surface:     cfg.Surface,
		Metrics:     collector,
		Logger:      logger,
		OnStopped: func(frameIndex int) {
			s.publish(s.newEvent(types.EventPlaybackStopped, frameIndex, nil))
		},
	})

	return s, nil
}

// Start loads all frames, establishes sizing from the first frame,
// paints it, and begins playback unless autoplay is disabled. A load
// failure permanently disables the session: Play, PlayFrom and Stop
// become no-ops and the error is returned here and from Err.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("session %s: already started", s.meta.SessionID)
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info("loading frames", map[string]any{
		"frame_count": s.cfg.FrameCount,
		"base_path":   s.cfg.ImageBasePath,
	})

	if err := s.store.LoadAll(ctx, s.onProgress); err != nil {
		s.mu.Lock()
		s.loadErr = err
		s.mu.Unlock()
		s.sched.MarkFailed()
		s.logger.Error("frame loading failed", map[string]any{"error": err.Error()})
		s.publish(s.newEvent(types.EventLoadFailed, -1, err))
		return fmt.Errorf("session %s: %w", s.meta.SessionID, err)
	}

	first, ok := s.store.Frame(0)
	if !ok {
		// Cannot happen after a successful LoadAll; guard anyway.
		err := fmt.Errorf("session %s: first frame missing after load", s.meta.SessionID)
		s.mu.Lock()
		s.loadErr = err
		s.mu.Unlock()
		s.sched.MarkFailed()
		return err
	}
	s.sizer.Establish(first.Width, first.Height)

	s.mu.Lock()
	cw, ch := s.container[0], s.container[1]
	s.mu.Unlock()
	if cw > 0 && ch > 0 {
		s.applySize(cw, ch)
	}

	s.sched.MarkReady()
	s.logger.Info("frames loaded", map[string]any{
		"frame_count": s.cfg.FrameCount,
		"width":       first.Width,
		"height":      first.Height,
	})
	s.publish(s.newEvent(types.EventFramesLoaded, -1, nil))

	if !s.cfg.NoAutoplay {
		s.Play()
	}
	return nil
}

// Play starts playback from the first frame. No-op while playing, not
// yet loaded, or after a load failure.
func (s *Session) Play() {
	if s.Err() != nil {
		return
	}
	before := s.sched.Status()
	s.sched.Play()
	s.notifyStarted(before)
}

// PlayFrom starts playback from the given frame index, clamped into
// range. Guards as Play.
func (s *Session) PlayFrom(frameIndex int) {
	if s.Err() != nil {
		return
	}
	before := s.sched.Status()
	s.sched.PlayFrom(frameIndex)
	s.notifyStarted(before)
}

// Stop halts playback, keeping the current frame on the surface. No-op
// unless playing.
func (s *Session) Stop() {
	if s.Err() != nil {
		return
	}
	s.sched.Stop()
}

// Resize reacts to a container size change: the sizer derives new
// surface dimensions, the surface is resized and the current frame is
// repainted in one step. Silent no-op before the first frame has
// established the aspect ratio.
func (s *Session) Resize(containerWidth, containerHeight int) {
	s.mu.Lock()
	s.container = [2]int{containerWidth, containerHeight}
	s.mu.Unlock()
	s.applySize(containerWidth, containerHeight)
}

func (s *Session) applySize(containerWidth, containerHeight int) {
	w, h, ok := s.sizer.Resize(containerWidth, containerHeight)
	if !ok {
		return
	}
	err := s.sched.ApplySize(func() {
		s.cfg.Surface.SetSize(w, h)
	})
	if err != nil {
		s.logger.Warn("repaint after resize failed", map[string]any{"error": err.Error()})
	}
}

// Status returns the current playback status.
func (s *Session) Status() types.PlaybackStatus {
	return s.sched.Status()
}

// FrameIndex returns the current frame index.
func (s *Session) FrameIndex() int {
	return s.sched.Index()
}

// Err returns the load failure that disabled this session, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Meta returns the session's identity.
func (s *Session) Meta() types.SessionMeta {
	return s.meta
}

// Metrics returns a snapshot of the session's counters.
func (s *Session) Metrics() metrics.Snapshot {
	return s.collector.Snapshot()
}

// Close stops playback. It does not close the adapter, which the caller
// owns.
func (s *Session) Close() error {
	s.sched.Stop()
	return nil
}

func (s *Session) onProgress(fraction float64) {
	s.logger.Debug("load progress", map[string]any{"fraction": fraction})
	if s.cfg.OnProgress != nil {
		s.cfg.OnProgress(fraction)
	}
}

// notifyStarted publishes playback_started when the preceding call
// actually transitioned the scheduler into playing.
func (s *Session) notifyStarted(before types.PlaybackStatus) {
	if before == types.StatusPlaying {
		return
	}
	if s.sched.Status() != types.StatusPlaying {
		return
	}
	go s.publish(s.newEvent(types.EventPlaybackStarted, s.sched.Index(), nil))
}

func (s *Session) newEvent(eventType types.SessionEventType, frameIndex int, cause error) *types.SessionEvent {
	ev := &types.SessionEvent{
		ContractVersion: types.Version,
		EventType:       eventType,
		SessionID:       s.meta.SessionID,
		Prefix:          s.meta.Prefix,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		FrameCount:      s.cfg.FrameCount,
		FrameIndex:      frameIndex,
	}
	if cause != nil {
		ev.Error = cause.Error()
	}
	return ev
}

// publish sends an event to the adapter, if any. Publish failures are
// logged and never affect playback.
func (s *Session) publish(event *types.SessionEvent) {
	if s.cfg.Adapter == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.cfg.Adapter.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", map[string]any{
			"event_type": string(event.EventType),
			"error":      err.Error(),
		})
	}
}
