package dump

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/bodgit/fbdump/format"
)

const busWidth = 32

var errWordsPerLine = errors.New("dump: words per line must be positive")

// DefaultWordsPerLine returns how many words of format f fill a 32-bit bus
// word, which is the line length used when none is given.
func DefaultWordsPerLine(f format.Format) int {
	if bits := f.Bits(); bits > 0 && bits <= busWidth {
		return busWidth / bits
	}
	return 1
}

type encoder struct {
	w      *bufio.Writer
	f      format.Format
	digits int
	words  []uint32
}

func (e *encoder) header(m image.Image) error {
	b := m.Bounds()
	_, err := fmt.Fprintf(e.w, "# fbdump\n# %d x %d %s\n# %d words per line\n", b.Dx(), b.Dy(), e.f, cap(e.words))
	return err
}

// Write out the buffered words with the first pixel rightmost
func (e *encoder) flush() error {
	if len(e.words) == 0 {
		return nil
	}
	for i := len(e.words) - 1; i >= 0; i-- {
		if _, err := fmt.Fprintf(e.w, "%0*x", e.digits, e.words[i]); err != nil {
			return err
		}
	}
	e.words = e.words[:0]
	_, err := e.w.WriteString("\n")
	return err
}

func (e *encoder) encode(m image.Image) error {
	if err := e.header(m); err != nil {
		return err
	}

	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			e.words = append(e.words, e.f.Pack(m.At(x, y)))
			if len(e.words) == cap(e.words) {
				if err := e.flush(); err != nil {
					return err
				}
			}
		}
	}

	// A short final line is fine, it is still a whole number of words
	if err := e.flush(); err != nil {
		return err
	}

	return e.w.Flush()
}

// Encode writes the Image m to w as a memory dump of format f with
// wordsPerLine words on each line.
func Encode(w io.Writer, m image.Image, f format.Format, wordsPerLine int) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %v", format.ErrUnsupported, f)
	}
	if wordsPerLine <= 0 {
		return errWordsPerLine
	}

	e := encoder{
		w:      bufio.NewWriter(w),
		f:      f,
		digits: f.Digits(),
		words:  make([]uint32, 0, wordsPerLine),
	}

	return e.encode(m)
}
