package dump

import (
	"image"
	"image/color"

	"github.com/bodgit/fbdump/format"
)

// Grid holds the decoded pixels of a dump, Channels() bytes per pixel in
// row-major order. It implements the image.Image interface.
type Grid struct {
	Width  int
	Height int
	Format format.Format
	Pix    []uint8
}

// Channels returns the number of bytes per pixel
func (g *Grid) Channels() int {
	return g.Format.Channels()
}

// Mode returns "RGB" or "L" depending on the pixel format
func (g *Grid) Mode() string {
	return g.Format.Mode()
}

// ColorModel implements the image.Image interface
func (g *Grid) ColorModel() color.Model {
	return g.Format.Model()
}

// Bounds implements the image.Image interface
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// At implements the image.Image interface
func (g *Grid) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(g.Bounds())) {
		return g.ColorModel().Convert(color.Transparent)
	}
	c := g.Channels()
	p := g.Pix[(y*g.Width+x)*c:]
	if c == 1 {
		return color.Gray{Y: p[0]}
	}
	return color.RGBA{p[0], p[1], p[2], 0xff}
}

// Image returns the grid as an *image.Gray or an opaque *image.RGBA
func (g *Grid) Image() image.Image {
	r := g.Bounds()
	if g.Channels() == 1 {
		return &image.Gray{
			Pix:    g.Pix,
			Stride: g.Width,
			Rect:   r,
		}
	}

	m := image.NewRGBA(r)
	for i, j := 0, 0; i < len(g.Pix); i, j = i+3, j+4 {
		copy(m.Pix[j:j+3], g.Pix[i:i+3])
		m.Pix[j+3] = 0xff
	}
	return m
}
