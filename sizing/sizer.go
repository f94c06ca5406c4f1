// Package sizing computes displayed surface dimensions from a reference
// frame's aspect ratio and the current container size.
package sizing

// State is the current sizing state: the reference (original) frame
// dimensions, the last computed scale factor, and the derived surface
// pixel size.
type State struct {
	OriginalWidth  int
	OriginalHeight int
	Scale          float64
	SurfaceWidth   int
	SurfaceHeight  int
}

// Sizer maintains a uniform scale factor between a reference frame and
// its container. The reference dimensions are established once, from the
// first loaded frame, and never change for the session's lifetime.
type Sizer struct {
	state       State
	established bool
}

// NewSizer creates an unestablished sizer. Resize is a silent no-op
// until Establish has run; sizing cannot proceed without a reference
// frame.
func NewSizer() *Sizer {
	return &Sizer{}
}

// Establish records the reference frame dimensions. Only the first call
// has effect.
func (s *Sizer) Establish(originalWidth, originalHeight int) {
	if s.established || originalWidth <= 0 || originalHeight <= 0 {
		return
	}
	s.state.OriginalWidth = originalWidth
	s.state.OriginalHeight = originalHeight
	s.established = true
}

// Established returns true once reference dimensions are known.
func (s *Sizer) Established() bool {
	return s.established
}

// Resize computes the surface size for the given container size,
// preserving aspect ratio with the min-ratio rule:
//
//	scale = min(containerWidth/originalWidth, containerHeight/originalHeight)
//
// It is a pure function of the container size and the fixed reference
// dimensions. Called before Establish it returns (0, 0, false) and
// changes nothing. Callers must invoke it once immediately after
// Establish, and again on every container size change; resizing a
// drawable clears its contents, so the current frame must be re-rendered
// afterwards.
func (s *Sizer) Resize(containerWidth, containerHeight int) (surfaceWidth, surfaceHeight int, ok bool) {
	if !s.established {
		return 0, 0, false
	}

	sw := float64(containerWidth) / float64(s.state.OriginalWidth)
	sh := float64(containerHeight) / float64(s.state.OriginalHeight)
	scale := sw
	if sh < scale {
		scale = sh
	}
	if scale < 0 {
		scale = 0
	}

	s.state.Scale = scale
	s.state.SurfaceWidth = int(float64(s.state.OriginalWidth) * scale)
	s.state.SurfaceHeight = int(float64(s.state.OriginalHeight) * scale)
	return s.state.SurfaceWidth, s.state.SurfaceHeight, true
}

// State returns a copy of the current sizing state.
func (s *Sizer) State() State {
	return s.state
}
