package frame

import (
	"image"
	"sync"
)

// Frame is one decoded still image in a sequence, identified externally
// by its 1-based number.
type Frame struct {
	// Image is the decoded frame.
	Image image.Image
	// Width and Height are the natural dimensions of the decoded image,
	// independent of any display scaling.
	Width  int
	Height int
}

// Set is an ordered, fixed-length sequence of frame slots. Slot i holds
// frame number i+1. Slots start empty and transition to loaded exactly
// once; the loaded count is monotonic for the lifetime of the set.
//
// The load phase is the only writer; playback only reads slots that have
// already loaded. The mutex exists so concurrent loads within a batch can
// safely share the loaded counter.
type Set struct {
	mu     sync.Mutex
	slots  []*Frame
	loaded int
}

// NewSet creates a set with n empty slots.
func NewSet(n int) *Set {
	return &Set{slots: make([]*Frame, n)}
}

// Len returns the configured frame count.
func (s *Set) Len() int {
	return len(s.slots)
}

// LoadedCount returns how many slots have loaded.
func (s *Set) LoadedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Complete returns true once every slot has loaded.
func (s *Set) Complete() bool {
	return s.LoadedCount() == len(s.slots)
}

// Frame returns the frame at slot index i (0-based), or false if the
// index is out of range or the slot is still empty.
func (s *Set) Frame(i int) (*Frame, bool) {
	if i < 0 || i >= len(s.slots) {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.slots[i]
	return f, f != nil
}

// put stores a loaded frame at slot index i. Re-loading an already
// loaded slot is a no-op; put reports whether the slot transitioned.
func (s *Set) put(i int, f *Frame) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots[i] != nil {
		return false
	}
	s.slots[i] = f
	s.loaded++
	return true
}
