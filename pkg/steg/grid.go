// Package steg implements the pixel-LSB steganographic channel: length
// framing of payload bitstrings, capacity accounting, and sequential
// least-significant-bit embedding and extraction over a grayscale pixel
// grid.
//
// The protocol is symmetric and order-dependent: both sides scan the grid
// in row-major order (row 0 left to right, then row 1, ...), so the k-th
// scanned pixel carries the k-th framed bit. The persisted layout is a
// 32-bit big-endian payload length in the first 32 LSBs followed by the
// payload bits.
package steg

import (
	"github.com/gzrlab/gzrsteg/pkg/errors"
)

// Grid is a grayscale pixel grid of H rows by W columns. Pix holds the
// 8-bit pixel values in row-major order, so Pix[y*W+x] is the pixel at
// column x of row y and the linear index doubles as the channel's scan
// position.
type Grid struct {
	W, H int
	Pix  []uint8
}

// NewGrid allocates a zeroed w×h grid.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{W: w, H: h, Pix: make([]uint8, w*h)}
}

// At returns the pixel at column x, row y.
func (g *Grid) At(x, y int) uint8 {
	return g.Pix[y*g.W+x]
}

// Set writes the pixel at column x, row y.
func (g *Grid) Set(x, y int, v uint8) {
	g.Pix[y*g.W+x] = v
}

// Clone returns a deep copy of the grid. Embed clones before mutating so
// the caller's source image survives untouched.
func (g *Grid) Clone() *Grid {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &Grid{W: g.W, H: g.H, Pix: pix}
}

// SameShape reports whether two grids have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.W == o.W && g.H == o.H
}

// validate checks internal consistency before the channel trusts a grid.
func (g *Grid) validate() error {
	if g == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil pixel grid")
	}
	if len(g.Pix) != g.W*g.H {
		return errors.New(errors.ErrCodeInvalidInput,
			"pixel buffer length %d does not match %dx%d grid", len(g.Pix), g.W, g.H)
	}
	return nil
}
