package format

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tables := []struct {
		tag    string
		format Format
		err    error
	}{
		{"RGB565", RGB565, nil},
		{"GRAYSCALE", Grayscale, nil},
		{"RGB888", 0, ErrUnsupported},
		{"rgb565", 0, ErrUnsupported},
		{"Grayscale", 0, ErrUnsupported},
		{"", 0, ErrUnsupported},
	}

	for _, table := range tables {
		t.Run(table.tag, func(t *testing.T) {
			f, err := Parse(table.tag)
			if table.err != nil {
				assert.True(t, errors.Is(err, table.err))
				return
			}
			require.Nil(t, err)
			assert.Equal(t, table.format, f)
			assert.Equal(t, table.tag, f.String())
		})
	}
}

func TestProperties(t *testing.T) {
	assert.Equal(t, 4, RGB565.Digits())
	assert.Equal(t, 16, RGB565.Bits())
	assert.Equal(t, 3, RGB565.Channels())
	assert.Equal(t, "RGB", RGB565.Mode())

	assert.Equal(t, 2, Grayscale.Digits())
	assert.Equal(t, 8, Grayscale.Bits())
	assert.Equal(t, 1, Grayscale.Channels())
	assert.Equal(t, "L", Grayscale.Mode())

	assert.False(t, Format(0).Valid())
	assert.Equal(t, "Format(42)", Format(42).String())
}

func TestText(t *testing.T) {
	b, err := Grayscale.MarshalText()
	require.Nil(t, err)
	assert.Equal(t, "GRAYSCALE", string(b))

	var f Format
	require.Nil(t, f.UnmarshalText([]byte("RGB565")))
	assert.Equal(t, RGB565, f)

	assert.True(t, errors.Is(f.UnmarshalText([]byte("YUV422")), ErrUnsupported))

	_, err = Format(0).MarshalText()
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestUnpackRGB565(t *testing.T) {
	tables := []struct {
		word    uint32
		r, g, b uint8
	}{
		{0x0000, 0, 0, 0},
		{0xffff, 255, 255, 255},
		{0xf800, 255, 0, 0},
		{0x07e0, 0, 255, 0},
		{0x001f, 0, 0, 255},
		{0x0841, 8, 8, 8},
		{0x8410, 131, 129, 131},
	}

	for _, table := range tables {
		var dst [3]uint8
		RGB565.Unpack(dst[:], table.word)
		assert.Equal(t, [3]uint8{table.r, table.g, table.b}, dst, "word %#04x", table.word)
	}
}

func TestUnpackGrayscale(t *testing.T) {
	for w := uint32(0); w <= 0xff; w++ {
		var dst [1]uint8
		Grayscale.Unpack(dst[:], w)
		assert.Equal(t, uint8(w), dst[0])
	}
}

func TestPackRoundTrip(t *testing.T) {
	for w := uint32(0); w <= 0xffff; w++ {
		var dst [3]uint8
		RGB565.Unpack(dst[:], w)
		c := color.RGBA{dst[0], dst[1], dst[2], 0xff}
		if got := RGB565.Pack(c); got != w {
			t.Fatalf("word %#04x unpacked to %v packed back to %#04x", w, c, got)
		}
	}

	for w := uint32(0); w <= 0xff; w++ {
		assert.Equal(t, w, Grayscale.Pack(color.Gray{Y: uint8(w)}))
	}
}

func TestPackRounding(t *testing.T) {
	assert.Equal(t, uint32(0xf800), RGB565.Pack(color.RGBA{0xfc, 0x02, 0x03, 0xff}))
	assert.Equal(t, uint32(0x0000), RGB565.Pack(color.RGBA{0x04, 0x02, 0x04, 0xff}))
	assert.Equal(t, uint32(0x4c), Grayscale.Pack(color.RGBA{0xff, 0x00, 0x00, 0xff}))
}
