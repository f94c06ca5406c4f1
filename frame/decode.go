package frame

import (
	"fmt"
	"image"

	// Frames are webp by contract, but decoding sniffs the actual
	// container so sequences re-encoded as png/jpeg still load.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"io"
)

// decode reads and decodes a single frame image, reporting its natural
// dimensions. The reader is consumed but not closed.
func decode(r io.Reader) (image.Image, int, int, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	b := img.Bounds()
	return img, b.Dx(), b.Dy(), nil
}
