package fbdump

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownExtension is returned when the output image type cannot be
// worked out from the file extension
var ErrUnknownExtension = errors.New("fbdump: unknown image extension")

type encodeFunc func(io.Writer, image.Image) error

// Reduce m to a palette of at most c.opts.Colors colors
func (c *Converter) paletted(m image.Image) image.Image {
	if c.opts.Colors == 0 {
		return m
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, c.opts.Colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

func (c *Converter) encoder(file string) (encodeFunc, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png":
		return func(w io.Writer, m image.Image) error {
			return png.Encode(w, c.paletted(m))
		}, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: c.opts.Quality})
		}, nil
	case ".gif":
		n := c.opts.Colors
		if n == 0 {
			n = maxColors
		}
		return func(w io.Writer, m image.Image) error {
			return gif.Encode(w, m, &gif.Options{
				NumColors: n,
				Quantizer: &quantize.MedianCutQuantizer{},
				Drawer:    draw.Src,
			})
		}, nil
	case ".bmp":
		return func(w io.Writer, m image.Image) error {
			return bmp.Encode(w, c.paletted(m))
		}, nil
	case ".tif", ".tiff":
		return func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, c.paletted(m), &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: \"%s\"", ErrUnknownExtension, file)
	}
}

// Write file by way of a temporary file in the same directory that is only
// renamed into place once fn succeeds
func writeFile(file string, fn func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	w := bufio.NewWriter(f)
	if err = fn(w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = f.Chmod(0644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), file)
}
