package surface

import (
	"image"
	"sync"
)

// Stub is an in-memory Surface for tests. It records sizes and drawn
// images, and can be primed to fail draws.
type Stub struct {
	mu      sync.Mutex
	width   int
	height  int
	drawn   []image.Image
	resizes int
	drawErr error
}

// NewStub creates a stub surface.
func NewStub() *Stub {
	return &Stub{}
}

// FailDraws makes every subsequent Draw return err (nil restores).
func (s *Stub) FailDraws(err error) {
	s.mu.Lock()
	s.drawErr = err
	s.mu.Unlock()
}

// SetSize implements Surface.
func (s *Stub) SetSize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.resizes++
	s.mu.Unlock()
}

// Size implements Surface.
func (s *Stub) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Draw implements Surface.
func (s *Stub) Draw(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawErr != nil {
		return s.drawErr
	}
	s.drawn = append(s.drawn, img)
	return nil
}

// DrawCount returns how many draws succeeded.
func (s *Stub) DrawCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drawn)
}

// LastDrawn returns the most recently drawn image, or nil.
func (s *Stub) LastDrawn() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.drawn) == 0 {
		return nil
	}
	return s.drawn[len(s.drawn)-1]
}

// ResizeCount returns how many times SetSize was called.
func (s *Stub) ResizeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resizes
}
