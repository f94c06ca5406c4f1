package surface_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/lithica-io/flipbook/surface"
)

func uniform(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestImage_SetSizeAndSize(t *testing.T) {
	s := surface.NewImage(nil)

	if w, h := s.Size(); w != 0 || h != 0 {
		t.Errorf("initial size = %dx%d, want 0x0", w, h)
	}

	s.SetSize(400, 200)
	if w, h := s.Size(); w != 400 || h != 200 {
		t.Errorf("size after SetSize = %dx%d, want 400x200", w, h)
	}

	s.SetSize(-1, -1)
	if w, h := s.Size(); w != 0 || h != 0 {
		t.Errorf("size after negative SetSize = %dx%d, want 0x0", w, h)
	}
}

func TestImage_DrawScalesIntoBounds(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}

	var painted *image.RGBA
	s := surface.NewImage(func(buf *image.RGBA) { painted = buf })
	s.SetSize(8, 4)

	if err := s.Draw(uniform(2, 1, red)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if painted == nil {
		t.Fatal("paint hook not invoked")
	}
	b := painted.Bounds()
	if b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("painted bounds = %v, want 8x4", b)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if got := painted.RGBAAt(x, y); got != red {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, red)
			}
		}
	}
}

func TestImage_DrawZeroSizeIsNoOp(t *testing.T) {
	called := false
	s := surface.NewImage(func(*image.RGBA) { called = true })

	if err := s.Draw(uniform(2, 2, color.RGBA{A: 0xff})); err != nil {
		t.Fatalf("Draw on unsized surface: %v", err)
	}
	if called {
		t.Error("paint hook invoked on zero-sized surface")
	}
}

func TestImage_SetSizeClearsContent(t *testing.T) {
	var painted *image.RGBA
	s := surface.NewImage(func(buf *image.RGBA) { painted = buf })
	s.SetSize(4, 4)

	if err := s.Draw(uniform(4, 4, color.RGBA{R: 0xff, A: 0xff})); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	// Same size again: the buffer is reallocated, old pixels are gone.
	s.SetSize(4, 4)
	if err := s.Draw(uniform(4, 4, color.RGBA{G: 0xff, A: 0xff})); err != nil {
		t.Fatalf("Draw after resize: %v", err)
	}
	want := color.RGBA{G: 0xff, A: 0xff}
	if got := painted.RGBAAt(0, 0); got != want {
		t.Errorf("pixel after resize+redraw = %v, want %v", got, want)
	}
}
