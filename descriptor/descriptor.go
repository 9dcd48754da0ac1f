/*
Package descriptor implements the small metadata file written alongside each
framebuffer memory dump.

The file is tab-separated text. The last field of the first line holds the
image size as "<width> x <height>" and the last field of the second line
holds the pixel format tag:

	Size:	320 x 240
	Format:	RGB565
*/
package descriptor

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/bodgit/fbdump/format"
)

const (
	sizeLabel   = "Size:"
	formatLabel = "Format:"
	separator   = "x"
)

// MaxDimension is the largest width or height a descriptor may declare
const MaxDimension = 1 << 16

// ErrMalformed is returned when a descriptor cannot be parsed.
var ErrMalformed = errors.New("descriptor: malformed descriptor")

// Descriptor is the shape and pixel format of a memory dump.
type Descriptor struct {
	Width  int
	Height int
	Format format.Format
}

// Pixels returns the number of pixels the descriptor declares
func (d Descriptor) Pixels() int {
	return d.Width * d.Height
}

// Validate checks the dimensions are positive and no larger than
// MaxDimension, that the decoded size fits in an int and that the format is
// known
func (d Descriptor) Validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.Width > MaxDimension || d.Height > MaxDimension {
		return fmt.Errorf("%w: invalid size %d x %d", ErrMalformed, d.Width, d.Height)
	}
	if !d.Format.Valid() {
		return fmt.Errorf("%w: %v", format.ErrUnsupported, d.Format)
	}
	if d.Width > math.MaxInt/d.Height/d.Format.Channels() {
		return fmt.Errorf("%w: size %d x %d is too large", ErrMalformed, d.Width, d.Height)
	}
	return nil
}

// Last tab-separated field of a line
func lastField(n int, line string) (string, error) {
	line = strings.TrimSpace(line)
	i := strings.LastIndexByte(line, '\t')
	if i < 0 {
		return "", fmt.Errorf("%w: line %d is not tab-delimited", ErrMalformed, n)
	}
	return strings.TrimSpace(line[i+1:]), nil
}

func parseSize(s string) (int, int, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 || fields[1] != separator {
		return 0, 0, fmt.Errorf("%w: size %q is not \"<width> x <height>\"", ErrMalformed, s)
	}

	var dims [2]int
	for i, f := range []string{fields[0], fields[2]} {
		v, err := strconv.Atoi(f)
		if err != nil || v <= 0 {
			return 0, 0, fmt.Errorf("%w: invalid dimension %q", ErrMalformed, f)
		}
		dims[i] = v
	}

	return dims[0], dims[1], nil
}

// Read parses a descriptor from r. Blank lines are skipped and anything after
// the second line is ignored.
func Read(r io.Reader) (Descriptor, error) {
	var lines []string

	s := bufio.NewScanner(r)
	for len(lines) < 2 && s.Scan() {
		if strings.TrimSpace(s.Text()) == "" {
			continue
		}
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return Descriptor{}, err
	}

	if len(lines) < 2 {
		return Descriptor{}, fmt.Errorf("%w: expected 2 lines, found %d", ErrMalformed, len(lines))
	}

	size, err := lastField(1, lines[0])
	if err != nil {
		return Descriptor{}, err
	}

	tag, err := lastField(2, lines[1])
	if err != nil {
		return Descriptor{}, err
	}

	var d Descriptor
	if d.Width, d.Height, err = parseSize(size); err != nil {
		return Descriptor{}, err
	}

	if d.Format, err = format.Parse(tag); err != nil {
		return Descriptor{}, err
	}

	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}

	return d, nil
}

// ReadFile opens file and parses the descriptor within it
func ReadFile(file string) (Descriptor, error) {
	f, err := os.Open(file)
	if err != nil {
		return Descriptor{}, err
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s: %w", file, err)
	}

	return d, nil
}

// MarshalText encodes the descriptor into its textual form
func (d Descriptor) MarshalText() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	b := new(bytes.Buffer)
	fmt.Fprintf(b, "%s\t%d %s %d\n", sizeLabel, d.Width, separator, d.Height)
	fmt.Fprintf(b, "%s\t%s\n", formatLabel, d.Format)

	return b.Bytes(), nil
}

// UnmarshalText decodes the descriptor from its textual form
func (d *Descriptor) UnmarshalText(b []byte) error {
	v, err := Read(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
