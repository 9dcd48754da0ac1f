package fbdump

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"

	"github.com/bodgit/fbdump/descriptor"
	"github.com/bodgit/fbdump/dump"
	"github.com/bodgit/fbdump/format"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

func readImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return m, nil
}

// Export reads imageFile and writes it out as a memory dump of format f to
// dumpFile together with a matching descriptor written to descriptorFile.
func (c *Converter) Export(imageFile, dumpFile, descriptorFile string, f format.Format) error {
	m, err := readImage(imageFile)
	if err != nil {
		return err
	}

	b := m.Bounds()
	d := descriptor.Descriptor{
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: f,
	}

	text, err := d.MarshalText()
	if err != nil {
		return err
	}

	wordsPerLine := c.opts.WordsPerLine
	if wordsPerLine == 0 {
		wordsPerLine = dump.DefaultWordsPerLine(f)
	}

	// A dump is never left behind without its descriptor
	if err := writeFile(descriptorFile, func(w io.Writer) error {
		_, err := w.Write(text)
		return err
	}); err != nil {
		return err
	}

	if err := writeFile(dumpFile, func(w io.Writer) error {
		return dump.Encode(w, m, f, wordsPerLine)
	}); err != nil {
		os.Remove(descriptorFile)
		return err
	}

	c.logger.Printf("Exported \"%s\" to \"%s\" (%d x %d %s)\n", imageFile, dumpFile, d.Width, d.Height, f)

	return nil
}
