// Package term renders an image surface as ANSI half-block rows for
// terminal display. Each character cell shows two vertically stacked
// pixels: the upper half block glyph takes the top pixel as foreground
// and the bottom pixel as background.
package term

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lithica-io/flipbook/surface"
)

const halfBlock = "▀"

// Surface is a terminal drawing target. Pixel height is twice the cell
// row count, so callers sizing against a terminal window pass
// (columns, rows*2) as the container size.
type Surface struct {
	*surface.Image

	// OnFrame receives each rendered ANSI frame.
	OnFrame func(rendered string)
}

// New creates a terminal surface delivering rendered frames to onFrame.
func New(onFrame func(string)) *Surface {
	s := &Surface{OnFrame: onFrame}
	s.Image = surface.NewImage(func(buf *image.RGBA) {
		if s.OnFrame != nil {
			s.OnFrame(Render(buf))
		}
	})
	return s
}

// Render converts an RGBA buffer to ANSI half-block rows.
func Render(buf *image.RGBA) string {
	b := buf.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return ""
	}

	var out strings.Builder
	for y := 0; y < h-1; y += 2 {
		for x := 0; x < w; x++ {
			top := hexColor(buf, x, y)
			bottom := hexColor(buf, x, y+1)
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(halfBlock)
			out.WriteString(cell)
		}
		if y+2 < h-1 {
			out.WriteString("\n")
		}
	}
	return out.String()
}

func hexColor(buf *image.RGBA, x, y int) string {
	c := buf.RGBAAt(buf.Bounds().Min.X+x, buf.Bounds().Min.Y+y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
