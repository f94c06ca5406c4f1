package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/lithica-io/flipbook/cli/config"
	"github.com/lithica-io/flipbook/frame"
	"github.com/lithica-io/flipbook/session"
)

// resolveWith runs resolveSequence against the play command's flag set.
func resolveWith(t *testing.T, cfgYAML string, args ...string) (session.Config, error) {
	t.Helper()

	argv := []string{"flipbook", "test"}
	if cfgYAML != "" {
		path := filepath.Join(t.TempDir(), "flipbook.yaml")
		if err := os.WriteFile(path, []byte(cfgYAML), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		argv = append(argv, "--config", path)
	}
	argv = append(argv, args...)

	var (
		sc         session.Config
		resolveErr error
	)
	app := &cli.App{
		Commands: []*cli.Command{{
			Name:  "test",
			Flags: PlayCommand().Flags,
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c)
				if err != nil {
					resolveErr = err
					return nil
				}
				sc, resolveErr = resolveSequence(c, cfg)
				return nil
			},
		}},
	}
	if err := app.Run(argv); err != nil {
		t.Fatalf("app.Run: %v", err)
	}
	return sc, resolveErr
}

const manifestYAML = `
defaults:
  base_path: "assets/clips/"
  fps: 12
  digits: 4
sequences:
  intro:
    frame_count: 120
    fps: 24
    no_loop: true
  outro:
    frame_count: 45
`

func TestResolveSequence_ManifestEntry(t *testing.T) {
	sc, err := resolveWith(t, manifestYAML, "--sequence", "intro")
	if err != nil {
		t.Fatalf("resolveSequence: %v", err)
	}

	if sc.NamePrefix != "intro" {
		t.Errorf("NamePrefix = %q, want intro", sc.NamePrefix)
	}
	if sc.FrameCount != 120 {
		t.Errorf("FrameCount = %d, want 120", sc.FrameCount)
	}
	if sc.FPS != 24 {
		t.Errorf("FPS = %d, want entry fps 24", sc.FPS)
	}
	if sc.ImageBasePath != "assets/clips/" {
		t.Errorf("ImageBasePath = %q, want defaults base_path", sc.ImageBasePath)
	}
	if sc.Digits != 4 {
		t.Errorf("Digits = %d, want defaults digits 4", sc.Digits)
	}
	if !sc.NoLoop {
		t.Error("NoLoop should come from the manifest entry")
	}
}

func TestResolveSequence_FlagBeatsManifest(t *testing.T) {
	sc, err := resolveWith(t, manifestYAML,
		"--sequence", "intro", "--fps", "60", "--frames", "7", "--base-path", "cdn/")
	if err != nil {
		t.Fatalf("resolveSequence: %v", err)
	}

	if sc.FPS != 60 {
		t.Errorf("FPS = %d, want flag value 60", sc.FPS)
	}
	if sc.FrameCount != 7 {
		t.Errorf("FrameCount = %d, want flag value 7", sc.FrameCount)
	}
	if sc.ImageBasePath != "cdn/" {
		t.Errorf("ImageBasePath = %q, want flag value cdn/", sc.ImageBasePath)
	}
}

func TestResolveSequence_EntryFallsBackToDefaults(t *testing.T) {
	sc, err := resolveWith(t, manifestYAML, "--sequence", "outro")
	if err != nil {
		t.Fatalf("resolveSequence: %v", err)
	}

	if sc.FPS != 12 {
		t.Errorf("FPS = %d, want defaults fps 12", sc.FPS)
	}
	if sc.FrameCount != 45 {
		t.Errorf("FrameCount = %d, want 45", sc.FrameCount)
	}
}

func TestResolveSequence_PositionalArgLooksUpManifest(t *testing.T) {
	sc, err := resolveWith(t, manifestYAML, "intro")
	if err != nil {
		t.Fatalf("resolveSequence: %v", err)
	}
	if sc.FrameCount != 120 {
		t.Errorf("FrameCount = %d, want manifest entry's 120", sc.FrameCount)
	}
}

func TestResolveSequence_BarePrefix(t *testing.T) {
	sc, err := resolveWith(t, "", "--prefix", "teaser", "--frames", "9")
	if err != nil {
		t.Fatalf("resolveSequence: %v", err)
	}

	if sc.NamePrefix != "teaser" {
		t.Errorf("NamePrefix = %q, want teaser", sc.NamePrefix)
	}
	if sc.Source == nil {
		t.Fatal("Source should default to fs")
	}
	if sc.Source.Kind() != "fs" {
		t.Errorf("Source.Kind() = %q, want fs", sc.Source.Kind())
	}
}

func TestResolveSequence_DefaultBasePath(t *testing.T) {
	sc, err := resolveWith(t, "", "--prefix", "anim", "--frames", "5")
	if err != nil {
		t.Fatalf("resolveSequence: %v", err)
	}

	// Every command must resolve the same path contract the session
	// does, so the default base path is applied during resolution, not
	// left to session.New.
	if sc.ImageBasePath != session.DefaultImageBasePath {
		t.Errorf("ImageBasePath = %q, want %q", sc.ImageBasePath, session.DefaultImageBasePath)
	}

	got := frame.NewPathBuilder(sc.ImageBasePath, sc.NamePrefix, sc.Digits).Path(1)
	want := "assets/sequences/anim/anim001.webp"
	if got != want {
		t.Errorf("resolved frame path = %q, want %q", got, want)
	}
}

func TestResolveSequence_RequiresName(t *testing.T) {
	_, err := resolveWith(t, "")
	if err == nil {
		t.Fatal("expected error when no sequence is named")
	}
}

func TestResolveSequence_UnknownManifestEntry(t *testing.T) {
	_, err := resolveWith(t, manifestYAML, "--sequence", "missing")
	if err == nil {
		t.Fatal("expected error for unknown --sequence")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error %q should name the missing sequence", err)
	}
}

func TestResolveSource_HTTPRequiresRoot(t *testing.T) {
	_, err := resolveWith(t, "", "--prefix", "x", "--source", "http")
	if err == nil {
		t.Fatal("expected error for http source without root")
	}
}

func TestResolveSource_UnknownKind(t *testing.T) {
	_, err := resolveWith(t, "", "--prefix", "x", "--source", "ftp")
	if err == nil {
		t.Fatal("expected error for unknown source kind")
	}
	if !strings.Contains(err.Error(), "ftp") {
		t.Errorf("error %q should name the bad source", err)
	}
}

func TestResolveAdapter_NoneConfigured(t *testing.T) {
	a, err := resolveAdapter(&config.Config{})
	if err != nil {
		t.Fatalf("resolveAdapter: %v", err)
	}
	if a != nil {
		t.Error("no adapter config should yield a nil adapter")
	}
}

func TestResolveAdapter_Webhook(t *testing.T) {
	a, err := resolveAdapter(&config.Config{
		Adapter: config.AdapterConfig{
			Type: "webhook",
			URL:  "https://hooks.example.com/events",
		},
	})
	if err != nil {
		t.Fatalf("resolveAdapter: %v", err)
	}
	if a == nil {
		t.Fatal("expected a webhook adapter")
	}
	_ = a.Close()
}

func TestResolveAdapter_Redis(t *testing.T) {
	a, err := resolveAdapter(&config.Config{
		Adapter: config.AdapterConfig{
			Type: "redis",
			URL:  "redis://localhost:6379",
		},
	})
	if err != nil {
		t.Fatalf("resolveAdapter: %v", err)
	}
	if a == nil {
		t.Fatal("expected a redis adapter")
	}
	_ = a.Close()
}

func TestResolveAdapter_UnknownType(t *testing.T) {
	_, err := resolveAdapter(&config.Config{
		Adapter: config.AdapterConfig{Type: "kafka"},
	})
	if err == nil {
		t.Fatal("expected error for unknown adapter type")
	}
}

func TestLoadConfig_ExplicitPathMustExist(t *testing.T) {
	_, err := resolveWith(t, "", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "--prefix", "x")
	if err == nil {
		t.Fatal("explicit --config pointing at a missing file should fail")
	}
}

func TestPlayCommand_DeclaresPlaybackFlags(t *testing.T) {
	want := map[string]bool{
		"fps": false, "no-loop": false, "no-autoplay": false,
		"play-once": false, "batch-size": false, "refresh-rate": false,
		"stats": false, "debug": false,
	}
	for _, f := range PlayCommand().Flags {
		name := f.Names()[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("play command is missing flag --%s", name)
		}
	}
}

func TestReadOnlyFlags_IncludesFormat(t *testing.T) {
	hasFormat := false
	for _, f := range ReadOnlyFlags() {
		if f.Names()[0] == "format" {
			hasFormat = true
			break
		}
	}
	if !hasFormat {
		t.Error("ReadOnlyFlags should include --format")
	}
}
