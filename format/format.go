/*
Package format implements the pixel formats found in framebuffer memory dumps.

Each format describes how a single memory word is laid out: how many hex
digits it occupies in a dump line, how it unpacks into 8-bit color channels
and how a color packs back into a word.
*/
package format

import (
	"errors"
	"fmt"
	"image/color"
)

// Format identifies the pixel encoding of a memory word.
type Format int

const (
	// RGB565 packs a pixel into 16 bits as RRRRRGGGGGGBBBBB.
	RGB565 Format = iota + 1
	// Grayscale stores a pixel as a single 8-bit intensity.
	Grayscale
)

// ErrUnsupported is returned when a format tag is not recognised.
var ErrUnsupported = errors.New("format: unsupported pixel format")

type variant struct {
	tag      string
	mode     string
	digits   int
	channels int
	model    color.Model
	unpack   func([]uint8, uint32)
	pack     func(color.Color) uint32
}

var variants = map[Format]variant{
	RGB565: {
		tag:      "RGB565",
		mode:     "RGB",
		digits:   4,
		channels: 3,
		model:    color.RGBAModel,
		unpack:   unpackRGB565,
		pack:     packRGB565,
	},
	Grayscale: {
		tag:      "GRAYSCALE",
		mode:     "L",
		digits:   2,
		channels: 1,
		model:    color.GrayModel,
		unpack:   unpackGrayscale,
		pack:     packGrayscale,
	},
}

// Parse returns the Format matching tag exactly.
func Parse(tag string) (Format, error) {
	for f, v := range variants {
		if v.tag == tag {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupported, tag)
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	_, ok := variants[f]
	return ok
}

func (f Format) String() string {
	if v, ok := variants[f]; ok {
		return v.tag
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// MarshalText implements the encoding.TextMarshaler interface.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, f)
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (f *Format) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Digits returns the number of hex digits used by one word.
func (f Format) Digits() int {
	return variants[f].digits
}

// Bits returns the size of one word in bits.
func (f Format) Bits() int {
	return variants[f].digits << 2
}

// Channels returns the number of 8-bit channels per decoded pixel.
func (f Format) Channels() int {
	return variants[f].channels
}

// Mode returns the image mode string, "RGB" or "L".
func (f Format) Mode() string {
	return variants[f].mode
}

// Model returns the color model of decoded pixels.
func (f Format) Model() color.Model {
	return variants[f].model
}

// Unpack decodes word into the first Channels() bytes of dst.
func (f Format) Unpack(dst []uint8, word uint32) {
	variants[f].unpack(dst, word)
}

// Pack encodes c as a word, rounding each channel to the nearest value the
// format can represent.
func (f Format) Pack(c color.Color) uint32 {
	return variants[f].pack(c)
}
