package descriptor

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/fbdump/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tables := []struct {
		name       string
		input      string
		descriptor Descriptor
		err        error
	}{
		{
			name:       "rgb565",
			input:      "Size:\t320 x 240\nFormat:\tRGB565\n",
			descriptor: Descriptor{320, 240, format.RGB565},
		},
		{
			name:       "grayscale",
			input:      "Image size\tpixels\t1 x 1\r\nPixel format\tGRAYSCALE",
			descriptor: Descriptor{1, 1, format.Grayscale},
		},
		{
			name:       "blank lines",
			input:      "\nSize:\t10 x 20\n\n  \nFormat:\tGRAYSCALE\nextra\n",
			descriptor: Descriptor{10, 20, format.Grayscale},
		},
		{
			name:  "empty",
			input: "",
			err:   ErrMalformed,
		},
		{
			name:  "one line",
			input: "Size:\t10 x 10\n",
			err:   ErrMalformed,
		},
		{
			name:  "no tab on size line",
			input: "Size: 10 x 10\nFormat:\tRGB565\n",
			err:   ErrMalformed,
		},
		{
			name:  "no tab on format line",
			input: "Size:\t10 x 10\nFormat: RGB565\n",
			err:   ErrMalformed,
		},
		{
			name:  "bad separator",
			input: "Size:\t10 by 10\nFormat:\tRGB565\n",
			err:   ErrMalformed,
		},
		{
			name:  "not a number",
			input: "Size:\tten x 10\nFormat:\tRGB565\n",
			err:   ErrMalformed,
		},
		{
			name:  "zero width",
			input: "Size:\t0 x 10\nFormat:\tRGB565\n",
			err:   ErrMalformed,
		},
		{
			name:       "trailing tabs",
			input:      "Size:\t2 x 3\t\nFormat:\tRGB565\t \n",
			descriptor: Descriptor{2, 3, format.RGB565},
		},
		{
			name:  "too large",
			input: "Size:\t10000000 x 10000000\nFormat:\tRGB565\n",
			err:   ErrMalformed,
		},
		{
			name:  "overflowing size",
			input: "Size:\t8589934592 x 2147483648\nFormat:\tGRAYSCALE\n",
			err:   ErrMalformed,
		},
		{
			name:  "unsupported format",
			input: "Size:\t10 x 10\nFormat:\tRGB888\n",
			err:   format.ErrUnsupported,
		},
		{
			name:  "case sensitive format",
			input: "Size:\t10 x 10\nFormat:\tgrayscale\n",
			err:   format.ErrUnsupported,
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			d, err := Read(strings.NewReader(table.input))
			if table.err != nil {
				assert.True(t, errors.Is(err, table.err), "got %v", err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, table.descriptor, d)
		})
	}
}

func TestUnsupportedIsNotMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("Size:\t10 x 10\nFormat:\tRGB888\n"))
	assert.False(t, errors.Is(err, ErrMalformed))
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Descriptor{MaxDimension, 1, format.RGB565}.Validate())
	assert.True(t, errors.Is(Descriptor{1, MaxDimension + 1, format.RGB565}.Validate(), ErrMalformed))
	assert.True(t, errors.Is(Descriptor{math.MaxInt, 2, format.Grayscale}.Validate(), ErrMalformed))
	assert.True(t, errors.Is(Descriptor{-1, 2, format.Grayscale}.Validate(), ErrMalformed))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "axi_mem_format.txt")
	require.Nil(t, os.WriteFile(file, []byte("Size:\t4 x 2\nFormat:\tGRAYSCALE\n"), 0644))

	d, err := ReadFile(file)
	require.Nil(t, err)
	assert.Equal(t, Descriptor{4, 2, format.Grayscale}, d)
	assert.Equal(t, 8, d.Pixels())

	_, err = ReadFile(filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestText(t *testing.T) {
	d := Descriptor{64, 40, format.RGB565}

	b, err := d.MarshalText()
	require.Nil(t, err)
	assert.Equal(t, "Size:\t64 x 40\nFormat:\tRGB565\n", string(b))

	var got Descriptor
	require.Nil(t, got.UnmarshalText(b))
	assert.Equal(t, d, got)

	_, err = Descriptor{0, 40, format.RGB565}.MarshalText()
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = Descriptor{MaxDimension + 1, 1, format.Grayscale}.MarshalText()
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = Descriptor{64, 40, 0}.MarshalText()
	assert.True(t, errors.Is(err, format.ErrUnsupported))
}
