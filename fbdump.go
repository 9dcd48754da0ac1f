/*
Package fbdump is a library for turning textual framebuffer memory dumps into
viewable raster images, and raster images back into memory dumps.
*/
package fbdump

import (
	"errors"
	"image/jpeg"
	"io"
	"log"
	"strings"
)

const (
	defaultWorkers   = 10
	defaultExtension = "png"
	maxColors        = 256
)

// Options controls how images are written and how directories are scanned.
// The zero value is usable.
type Options struct {
	// Colors reduces images to a palette of this many colors, 0 disables
	Colors int
	// Quality is the JPEG quality, 1 to 100
	Quality int
	// Extension is the output image type used by Scan
	Extension string
	// Workers is the number of concurrent conversions used by Scan
	Workers int
	// WordsPerLine is the dump line length used by Export, 0 picks one
	// 32-bit bus word per line
	WordsPerLine int
}

func (o *Options) setDefaults() error {
	switch {
	case o.Colors < 0 || o.Colors == 1 || o.Colors > maxColors:
		return errors.New("fbdump: colors must be 0 or between 2 and 256")
	case o.Quality < 0 || o.Quality > 100:
		return errors.New("fbdump: quality must be between 1 and 100")
	case o.Workers < 0:
		return errors.New("fbdump: workers must not be negative")
	case o.WordsPerLine < 0:
		return errors.New("fbdump: words per line must not be negative")
	}

	if o.Quality == 0 {
		o.Quality = jpeg.DefaultQuality
	}
	if o.Workers == 0 {
		o.Workers = defaultWorkers
	}
	o.Extension = strings.TrimPrefix(o.Extension, ".")
	if o.Extension == "" {
		o.Extension = defaultExtension
	}

	return nil
}

// Converter converts between memory dumps and images
type Converter struct {
	opts   Options
	logger *log.Logger
}

// New returns a Converter using opts which logs progress to logger
func New(opts Options, logger *log.Logger) (*Converter, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Converter{
		opts:   opts,
		logger: logger,
	}, nil
}

// Convert reads the descriptor and dump files and writes the image they
// describe to imageFile using the default options
func Convert(dumpFile, imageFile, descriptorFile string) error {
	c, err := New(Options{}, nil)
	if err != nil {
		return err
	}
	return c.Convert(dumpFile, imageFile, descriptorFile)
}
