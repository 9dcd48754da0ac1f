package format

import "image/color"

const (
	max5 = 0x1f
	max6 = 0x3f
)

// Widen a channel of the given maximum to 8 bits, rounding down
func widen(v, max uint32) uint8 {
	return uint8(v * 0xff / max)
}

// Narrow an 8-bit channel to the given maximum, rounding to nearest
func narrow(v uint8, max uint32) uint32 {
	return (uint32(v)*max + 0x7f) / 0xff
}

func unpackRGB565(dst []uint8, w uint32) {
	dst[0] = widen(w>>11&max5, max5)
	dst[1] = widen(w>>5&max6, max6)
	dst[2] = widen(w&max5, max5)
}

func packRGB565(c color.Color) uint32 {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return narrow(rgba.R, max5)<<11 | narrow(rgba.G, max6)<<5 | narrow(rgba.B, max5)
}

func unpackGrayscale(dst []uint8, w uint32) {
	dst[0] = uint8(w)
}

func packGrayscale(c color.Color) uint32 {
	return uint32(color.GrayModel.Convert(c).(color.Gray).Y)
}
