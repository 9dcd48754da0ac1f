/*
Package dump implements a decoder and encoder for textual framebuffer memory
dumps.

A dump starts with three header lines which carry no pixel data. Every
following line is an unbroken run of hex digits holding one or more packed
memory words of fixed width: four digits for RGB565 and two digits for
GRAYSCALE. Within a line the words are stored right to left so the last word
on the line is the first pixel. Lines are concatenated in order to give the
pixels of the image in scan order, left to right and top to bottom.
*/
package dump

// HeaderLines is the number of lines at the start of a dump that are skipped
const HeaderLines = 3

const (
	maxLineSize   = 16 << (10 * 2)
	maxInitialPix = 1 << (10 * 2)
)
