package session

import (
	"context"
	"errors"
	"image"
	"io"
	"testing"
	"time"

	"github.com/lithica-io/flipbook/adapter"
	"github.com/lithica-io/flipbook/frame"
	"github.com/lithica-io/flipbook/log"
	"github.com/lithica-io/flipbook/surface"
	"github.com/lithica-io/flipbook/types"
)

func quietLogger() *log.Logger {
	meta := types.SessionMeta{SessionID: "test-session", Prefix: "test"}
	return log.NewLogger(meta, false).WithOutput(io.Discard)
}

// stubConfig returns a config backed by a stub source holding count
// frames of the given natural size, with autoplay disabled.
func stubConfig(count, width, height int) (Config, *frame.StubSource, *surface.Stub, *adapter.Stub) {
	source := frame.NewStubSource()
	paths := frame.NewPathBuilder("seq/", "intro", 3)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 1; i <= count; i++ {
		source.Add(paths.Path(i), img)
	}

	surf := surface.NewStub()
	events := adapter.NewStub()

	cfg := Config{
		Surface:       surf,
		NamePrefix:    "intro",
		FrameCount:    count,
		ImageBasePath: "seq/",
		NoAutoplay:    true,
		RefreshRate:   1,
		Source:        source,
		Adapter:       events,
		Logger:        quietLogger(),
	}
	return cfg, source, surf, events
}

func waitForEvent(t *testing.T, events *adapter.Stub, want types.SessionEventType) *types.SessionEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, ev := range events.Events() {
			if ev.EventType == want {
				return ev
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s event", want)
	return nil // unreachable
}

func TestNew_Validation(t *testing.T) {
	surf := surface.NewStub()
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{
			name:      "missing surface",
			cfg:       Config{NamePrefix: "intro", FrameCount: 10},
			wantField: "surface",
		},
		{
			name:      "missing name prefix",
			cfg:       Config{Surface: surf, FrameCount: 10},
			wantField: "name_prefix",
		},
		{
			name:      "missing frame count",
			cfg:       Config{Surface: surf, NamePrefix: "intro"},
			wantField: "frame_count",
		},
		{
			name:      "negative frame count",
			cfg:       Config{Surface: surf, NamePrefix: "intro", FrameCount: -1},
			wantField: "frame_count",
		},
		{
			name:      "negative fps",
			cfg:       Config{Surface: surf, NamePrefix: "intro", FrameCount: 10, FPS: -24},
			wantField: "fps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, cfgErr.Field)
			}
		})
	}
}

func TestConfigurationError_Message(t *testing.T) {
	err := &ConfigurationError{Field: "surface"}
	want := `configuration: missing required field "surface"`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestNew_IsInert(t *testing.T) {
	cfg, source, surf, _ := stubConfig(5, 800, 400)

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = s.Close() }()

	if got := len(source.OpenOrder()); got != 0 {
		t.Errorf("expected no opens before Start, got %d", got)
	}
	if got := surf.DrawCount(); got != 0 {
		t.Errorf("expected no draws before Start, got %d", got)
	}
	if got := s.Status(); got != types.StatusIdle {
		t.Errorf("expected idle before Start, got %v", got)
	}
}

func TestStart_LoadsAndReportsProgress(t *testing.T) {
	cfg, _, _, events := stubConfig(5, 800, 400)

	var fractions []float64
	cfg.OnProgress = func(f float64) { fractions = append(fractions, f) }

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if len(fractions) == 0 || fractions[len(fractions)-1] != 1.0 {
		t.Errorf("expected progress to reach 1.0, got %v", fractions)
	}

	ev := waitForEvent(t, events, types.EventFramesLoaded)
	if ev.FrameCount != 5 {
		t.Errorf("expected frame count 5, got %d", ev.FrameCount)
	}
	if ev.Prefix != "intro" {
		t.Errorf("expected prefix intro, got %s", ev.Prefix)
	}

	if got := s.Status(); got != types.StatusIdle {
		t.Errorf("autoplay disabled: expected idle after Start, got %v", got)
	}
}

func TestStart_InitialContainerPaintsFirstFrame(t *testing.T) {
	cfg, _, surf, _ := stubConfig(5, 800, 400)
	cfg.ContainerWidth = 400
	cfg.ContainerHeight = 300

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	// min(400/800, 300/400) = 0.5 → 400x200
	w, h := surf.Size()
	if w != 400 || h != 200 {
		t.Errorf("expected surface 400x200, got %dx%d", w, h)
	}
	if got := surf.DrawCount(); got != 1 {
		t.Errorf("expected exactly one initial paint, got %d", got)
	}
}

func TestStart_Autoplay(t *testing.T) {
	cfg, _, _, events := stubConfig(3, 80, 40)
	cfg.NoAutoplay = false

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if got := s.Status(); got != types.StatusPlaying {
		t.Errorf("expected playing after autoplay Start, got %v", got)
	}

	ev := waitForEvent(t, events, types.EventPlaybackStarted)
	if ev.FrameIndex != 0 {
		t.Errorf("expected start at frame 0, got %d", ev.FrameIndex)
	}
}

func TestStart_LoadFailureDisablesSession(t *testing.T) {
	cfg, source, _, events := stubConfig(5, 800, 400)
	paths := frame.NewPathBuilder("seq/", "intro", 3)
	source.Fail(paths.Path(3), errors.New("connection refused"))

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected Start to fail")
	}
	if s.Err() == nil {
		t.Fatal("expected Err to report the load failure")
	}

	ev := waitForEvent(t, events, types.EventLoadFailed)
	if ev.Error == "" {
		t.Error("expected load_failed event to carry the error")
	}
	if !ev.EventType.IsTerminal() {
		t.Error("expected load_failed to be terminal")
	}

	// Playback controls are permanently disabled.
	s.Play()
	if got := s.Status(); got != types.StatusIdle {
		t.Errorf("expected Play to be a no-op, got status %v", got)
	}
	s.PlayFrom(2)
	if got := s.Status(); got != types.StatusIdle {
		t.Errorf("expected PlayFrom to be a no-op, got status %v", got)
	}
}

func TestStart_Twice(t *testing.T) {
	cfg, _, _, _ := stubConfig(3, 80, 40)

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected second Start to fail")
	}
}

func TestPlayStop(t *testing.T) {
	cfg, _, _, events := stubConfig(3, 80, 40)

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	s.Play()
	if got := s.Status(); got != types.StatusPlaying {
		t.Fatalf("expected playing, got %v", got)
	}

	s.Stop()
	if got := s.Status(); got != types.StatusStopped {
		t.Fatalf("expected stopped, got %v", got)
	}

	ev := waitForEvent(t, events, types.EventPlaybackStopped)
	if ev.SessionID != s.Meta().SessionID {
		t.Errorf("expected session id %s, got %s", s.Meta().SessionID, ev.SessionID)
	}
}

func TestResize_BeforeEstablishIsSilentNoOp(t *testing.T) {
	cfg, _, surf, _ := stubConfig(3, 80, 40)

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = s.Close() }()

	s.Resize(640, 480)

	if got := surf.ResizeCount(); got != 0 {
		t.Errorf("expected no surface resize before Start, got %d", got)
	}
}

func TestResize_AfterStartRepaints(t *testing.T) {
	cfg, _, surf, _ := stubConfig(3, 800, 400)

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	before := surf.DrawCount()
	s.Resize(200, 300)

	// min(200/800, 300/400) = 0.25 → 200x100
	w, h := surf.Size()
	if w != 200 || h != 100 {
		t.Errorf("expected surface 200x100, got %dx%d", w, h)
	}
	if got := surf.DrawCount(); got != before+1 {
		t.Errorf("expected one repaint after resize, got %d draws", got-before)
	}
}

func TestInitAll_IsolatesFailures(t *testing.T) {
	good, _, _, _ := stubConfig(3, 80, 40)

	bad := good
	bad.NamePrefix = "broken"
	bad.FrameCount = 0

	sessions, failures := InitAll(context.Background(), []Config{good, bad})
	for _, s := range sessions {
		s := s
		defer func() { _ = s.Close() }()
	}

	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Meta().Prefix != "intro" {
		t.Errorf("expected surviving session intro, got %s", sessions[0].Meta().Prefix)
	}

	err, ok := failures["broken"]
	if !ok {
		t.Fatalf("expected failure for broken, got %v", failures)
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}
