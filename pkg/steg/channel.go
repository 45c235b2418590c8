package steg

import (
	"github.com/gzrlab/gzrsteg/pkg/errors"
)

// Channel embeds and extracts framed bitstrings over a Grid's LSB plane.
// The channel never retains grids across calls: Embed works on a clone and
// extraction only reads.
type Channel struct {
	grid *Grid
}

// NewChannel wraps a pixel grid. The grid must be internally consistent;
// a malformed grid is rejected once here so the scan loops can stay
// unchecked.
func NewChannel(g *Grid) (*Channel, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &Channel{grid: g}, nil
}

// CapacityBits is the number of LSB slots: one per pixel.
func (c *Channel) CapacityBits() int {
	return c.grid.W * c.grid.H
}

// CapacityBytes is the byte-oriented capacity exposed for pre-flighting
// message sizes: ⌊H*W/8⌋.
func (c *Channel) CapacityBytes() int {
	return c.CapacityBits() / 8
}

// CheckCapacity validates a would-be payload of payloadBits digits against
// the byte capacity, using the estimate ⌊payloadBits/8⌋+1 bytes. The
// estimate is computed from the payload alone and does not count the
// HeaderBits header, so it undercounts true bit demand by 32 bits; the
// estimate is part of the persisted protocol's documented behavior and is
// kept as-is.
func (c *Channel) CheckCapacity(payloadBits int) error {
	if payloadBits < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "negative payload length %d", payloadBits)
	}
	required := payloadBits/8 + 1
	capacity := c.CapacityBytes()
	if required > capacity {
		return errors.New(errors.ErrCodeCapacityExceeded,
			"message needs %d bytes, image holds %d", required, capacity)
	}
	return nil
}

// Embed writes framed into the LSBs of a clone of the channel's grid, one
// bit per pixel in scan order, and returns the clone. Pixels past the end
// of framed keep their original values. Embedding past the grid's capacity
// silently stops at the last pixel; callers are expected to have validated
// capacity first, so Embed itself never fails.
func (c *Channel) Embed(framed string) *Grid {
	stego := c.grid.Clone()

	n := len(framed)
	if n > len(stego.Pix) {
		n = len(stego.Pix)
	}
	for k := 0; k < n; k++ {
		bit := framed[k] - '0'
		stego.Pix[k] = stego.Pix[k]&0xFE | bit
	}
	return stego
}

// ExtractBits collects the LSBs of the pixels at scan positions
// [start, start+length). A range reaching past the grid cannot be
// satisfied and fails with ErrCodeMalformedHeader rather than returning a
// silently shortened result.
func (c *Channel) ExtractBits(start, length int) (string, error) {
	if start < 0 || length < 0 {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"invalid bit range [%d, %d)", start, start+length)
	}
	if start+length > c.CapacityBits() {
		return "", errors.New(errors.ErrCodeMalformedHeader,
			"bit range [%d, %d) extends past the %d-pixel grid", start, start+length, c.CapacityBits())
	}

	bits := make([]byte, length)
	for k := 0; k < length; k++ {
		bits[k] = '0' + c.grid.Pix[start+k]&1
	}
	return string(bits), nil
}

// ExtractHeader reads the first HeaderBits scan positions and parses the
// declared payload length. A declared length that exceeds the remaining
// scan positions cannot have been written by Embed and is rejected as
// malformed instead of being truncated on read.
func (c *Channel) ExtractHeader() (int, error) {
	header, err := c.ExtractBits(0, HeaderBits)
	if err != nil {
		return 0, err
	}
	length, err := ParseHeader(header)
	if err != nil {
		return 0, err
	}
	if length > c.CapacityBits()-HeaderBits {
		return 0, errors.New(errors.ErrCodeMalformedHeader,
			"header declares %d payload bits, grid holds at most %d", length, c.CapacityBits()-HeaderBits)
	}
	return length, nil
}

// ExtractPayload reads length payload bits from the scan positions behind
// the header.
func (c *Channel) ExtractPayload(length int) (string, error) {
	return c.ExtractBits(HeaderBits, length)
}
