package fbdump

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bodgit/fbdump/descriptor"
	"github.com/bodgit/fbdump/dump"
)

func readDump(file string, d descriptor.Descriptor) (*dump.Grid, error) {
	// Read it all in so the file is closed before decoding
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	g, err := dump.Decode(bytes.NewReader(b), d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return g, nil
}

// Convert reads the descriptor and dump files and writes the image they
// describe to imageFile. The image type is chosen from the extension of
// imageFile. Nothing is written unless the whole dump decodes.
func (c *Converter) Convert(dumpFile, imageFile, descriptorFile string) error {
	enc, err := c.encoder(imageFile)
	if err != nil {
		return err
	}

	d, err := descriptor.ReadFile(descriptorFile)
	if err != nil {
		return err
	}

	g, err := readDump(dumpFile, d)
	if err != nil {
		return err
	}

	if err := writeFile(imageFile, func(w io.Writer) error {
		return enc(w, g.Image())
	}); err != nil {
		return err
	}

	c.logger.Printf("Converted \"%s\" to \"%s\" (%d x %d %s)\n", dumpFile, imageFile, d.Width, d.Height, g.Mode())

	return nil
}
