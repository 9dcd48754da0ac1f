package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bodgit/fbdump/descriptor"
)

var (
	// ErrInvalidHexWord is returned when a word is not valid hexadecimal
	ErrInvalidHexWord = errors.New("dump: invalid hex word")
	// ErrTruncatedLine is returned when a line is not a whole number of words
	ErrTruncatedLine = errors.New("dump: truncated line")
	// ErrShapeMismatch is returned when the number of decoded pixels does
	// not match the declared width and height
	ErrShapeMismatch = errors.New("dump: shape mismatch")
)

// Words splits a line into words of width hex digits. The rightmost word is
// returned first, followed by the word to its left, and so on. Surrounding
// whitespace is ignored and a blank line has no words.
func Words(line string, width int) ([]uint32, error) {
	if width <= 0 {
		return nil, fmt.Errorf("dump: invalid word width %d", width)
	}

	line = strings.TrimSpace(line)
	if len(line)%width != 0 {
		return nil, fmt.Errorf("%w: %d hex digits is not a multiple of %d", ErrTruncatedLine, len(line), width)
	}

	words := make([]uint32, 0, len(line)/width)
	for i := len(line) - width; i >= 0; i -= width {
		w, err := strconv.ParseUint(line[i:i+width], 16, width<<2)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHexWord, line[i:i+width])
		}
		words = append(words, uint32(w))
	}

	return words, nil
}

type decoder struct {
	d        descriptor.Descriptor
	channels int
	digits   int
	pix      []uint8

	// Number of pixels seen so far, which may run past the declared size
	n    int
	want int
}

func newDecoder(d descriptor.Descriptor) (*decoder, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	// Grow pix as words arrive so a short dump never pays for the full size
	want := d.Pixels()
	size := want * d.Format.Channels()
	if size > maxInitialPix {
		size = maxInitialPix
	}

	return &decoder{
		d:        d,
		channels: d.Format.Channels(),
		digits:   d.Format.Digits(),
		pix:      make([]uint8, 0, size),
		want:     want,
	}, nil
}

func (d *decoder) line(s string) error {
	words, err := Words(s, d.digits)
	if err != nil {
		return err
	}

	var p [4]uint8
	for _, w := range words {
		if d.n < d.want {
			d.d.Format.Unpack(p[:], w)
			d.pix = append(d.pix, p[:d.channels]...)
		}
		d.n++
	}

	return nil
}

func (d *decoder) finish() (*Grid, error) {
	if d.n != d.want {
		return nil, fmt.Errorf("%w: decoded %d pixels, want %d x %d = %d", ErrShapeMismatch, d.n, d.d.Width, d.d.Height, d.want)
	}
	return &Grid{
		Width:  d.d.Width,
		Height: d.d.Height,
		Format: d.d.Format,
		Pix:    d.pix,
	}, nil
}

// DecodeLines decodes lines, which must not include the header, into a grid
// of the shape and format given by d.
func DecodeLines(lines []string, d descriptor.Descriptor) (*Grid, error) {
	dec, err := newDecoder(d)
	if err != nil {
		return nil, err
	}

	for i, line := range lines {
		if err := dec.line(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	return dec.finish()
}

// Decode reads a complete dump from r, skipping the header lines, and decodes
// it into a grid of the shape and format given by d.
func Decode(r io.Reader, d descriptor.Descriptor) (*Grid, error) {
	dec, err := newDecoder(d)
	if err != nil {
		return nil, err
	}

	s := bufio.NewScanner(r)
	s.Buffer(nil, maxLineSize)

	for n := 1; s.Scan(); n++ {
		if n <= HeaderLines {
			continue
		}
		if err := dec.line(s.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return dec.finish()
}
