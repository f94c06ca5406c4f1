package term_test

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/lithica-io/flipbook/surface/term"
)

func TestRender_RowCount(t *testing.T) {
	buf := image.NewRGBA(image.Rect(0, 0, 4, 6))
	out := term.Render(buf)
	// 6 pixel rows render as 3 cell rows.
	if got := strings.Count(out, "\n") + 1; got != 3 {
		t.Errorf("rendered rows = %d, want 3", got)
	}
}

func TestRender_EmptyBuffer(t *testing.T) {
	if out := term.Render(image.NewRGBA(image.Rectangle{})); out != "" {
		t.Errorf("rendered empty buffer = %q, want empty string", out)
	}
}

func TestRender_OddHeightDropsLastRow(t *testing.T) {
	buf := image.NewRGBA(image.Rect(0, 0, 2, 5))
	out := term.Render(buf)
	if got := strings.Count(out, "\n") + 1; got != 2 {
		t.Errorf("rendered rows = %d, want 2 (row 5 has no pair)", got)
	}
}

func TestSurface_DeliversRenderedFrames(t *testing.T) {
	var frames []string
	s := term.New(func(rendered string) { frames = append(frames, rendered) })
	s.SetSize(2, 2)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 0xff, A: 0xff})
	if err := s.Draw(img); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if len(frames) != 1 {
		t.Fatalf("delivered %d frames, want 1", len(frames))
	}
	if !strings.Contains(frames[0], "▀") {
		t.Errorf("rendered frame missing half-block glyph: %q", frames[0])
	}
}
