package surface

import (
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// Image is a Surface backed by an in-memory RGBA buffer. Frames are
// scaled into the buffer with bilinear interpolation. An optional paint
// hook observes the buffer after each draw; terminal and test surfaces
// build on it.
type Image struct {
	mu      sync.Mutex
	buf     *image.RGBA
	onPaint func(*image.RGBA)
}

// NewImage creates a zero-sized image surface. onPaint, if non-nil, is
// called with the backing buffer after every draw. The buffer is only
// valid for the duration of the call.
func NewImage(onPaint func(*image.RGBA)) *Image {
	return &Image{onPaint: onPaint}
}

// SetSize implements Surface. The backing buffer is reallocated, which
// discards previously rendered content.
func (s *Image) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.mu.Lock()
	s.buf = image.NewRGBA(image.Rect(0, 0, width, height))
	s.mu.Unlock()
}

// Size implements Surface.
func (s *Image) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return 0, 0
	}
	b := s.buf.Bounds()
	return b.Dx(), b.Dy()
}

// Draw implements Surface.
func (s *Image) Draw(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil || s.buf.Bounds().Empty() {
		return nil
	}

	draw.ApproxBiLinear.Scale(s.buf, s.buf.Bounds(), img, img.Bounds(), draw.Src, nil)
	if s.onPaint != nil {
		s.onPaint(s.buf)
	}
	return nil
}
