// Package surface defines the drawable target for frame playback.
package surface

import "image"

// Surface is a resizable 2D drawing target. The playback scheduler's
// render step and the sizer's resize step are the only mutators, and the
// session guarantees they never interleave mid-operation.
type Surface interface {
	// SetSize sets the surface's pixel dimensions. Resizing clears any
	// previously rendered content; callers re-render the current frame
	// afterwards.
	SetSize(width, height int)

	// Size returns the current pixel dimensions.
	Size() (width, height int)

	// Draw scales img to fill the surface bounds. A zero-sized surface
	// draws nothing and reports no error.
	Draw(img image.Image) error
}
