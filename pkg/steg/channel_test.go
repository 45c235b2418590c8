package steg

import (
	"strings"
	"testing"

	"github.com/gzrlab/gzrsteg/pkg/errors"
	"github.com/gzrlab/gzrsteg/pkg/tribonacci"
)

// testGrid builds a w×h grid with a deterministic mid-gray pattern so LSB
// changes are visible against known original values.
func testGrid(w, h int) *Grid {
	g := NewGrid(w, h)
	for i := range g.Pix {
		g.Pix[i] = uint8(100 + i%100)
	}
	return g
}

func TestCapacity(t *testing.T) {
	tests := []struct {
		w, h      int
		wantBits  int
		wantBytes int
	}{
		{16, 16, 256, 32},
		{512, 512, 262144, 32768},
		{3, 5, 15, 1},
		{1, 1, 1, 0},
	}

	for _, tt := range tests {
		ch, err := NewChannel(NewGrid(tt.w, tt.h))
		if err != nil {
			t.Fatalf("NewChannel() error = %v", err)
		}
		if got := ch.CapacityBits(); got != tt.wantBits {
			t.Errorf("CapacityBits(%dx%d) = %d, want %d", tt.w, tt.h, got, tt.wantBits)
		}
		if got := ch.CapacityBytes(); got != tt.wantBytes {
			t.Errorf("CapacityBytes(%dx%d) = %d, want %d", tt.w, tt.h, got, tt.wantBytes)
		}
	}
}

func TestNewChannelRejectsMalformedGrid(t *testing.T) {
	g := &Grid{W: 4, H: 4, Pix: make([]uint8, 3)}
	if _, err := NewChannel(g); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
	if _, err := NewChannel(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil grid error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestCheckCapacity(t *testing.T) {
	ch, err := NewChannel(NewGrid(16, 16)) // 32-byte capacity
	if err != nil {
		t.Fatalf("NewChannel() error = %v", err)
	}

	tests := []struct {
		name        string
		payloadBits int
		wantCode    errors.Code
	}{
		{"fits", 240, ""},
		{"boundary of the legacy estimate", 248, ""}, // 248/8+1 = 32 bytes exactly
		{"exceeds", 256, errors.ErrCodeCapacityExceeded},
		{"far too large", 1 << 20, errors.ErrCodeCapacityExceeded},
		{"negative", -1, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ch.CheckCapacity(tt.payloadBits)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("CheckCapacity(%d) error = %v, want nil", tt.payloadBits, err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("CheckCapacity(%d) code = %v, want %v", tt.payloadBits, errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestEmbedExtractSymmetry(t *testing.T) {
	grid := testGrid(8, 8)
	ch, err := NewChannel(grid)
	if err != nil {
		t.Fatalf("NewChannel() error = %v", err)
	}

	framed := Frame("1011001110001")
	stego := ch.Embed(framed)

	out, err := NewChannel(stego)
	if err != nil {
		t.Fatalf("NewChannel(stego) error = %v", err)
	}
	got, err := out.ExtractBits(0, len(framed))
	if err != nil {
		t.Fatalf("ExtractBits() error = %v", err)
	}
	if got != framed {
		t.Errorf("extract(embed(frame)) = %q, want %q", got, framed)
	}
}

func TestEmbedLeavesSourceAndTailUntouched(t *testing.T) {
	grid := testGrid(8, 8)
	original := grid.Clone()
	ch, err := NewChannel(grid)
	if err != nil {
		t.Fatalf("NewChannel() error = %v", err)
	}

	framed := Frame("111000")
	stego := ch.Embed(framed)

	// Source grid is never mutated in place.
	for i := range grid.Pix {
		if grid.Pix[i] != original.Pix[i] {
			t.Fatalf("source pixel %d mutated: %d != %d", i, grid.Pix[i], original.Pix[i])
		}
	}

	// Pixels past the frame keep their original values.
	for i := len(framed); i < len(stego.Pix); i++ {
		if stego.Pix[i] != original.Pix[i] {
			t.Fatalf("tail pixel %d changed: %d != %d", i, stego.Pix[i], original.Pix[i])
		}
	}

	// Embedded pixels differ from the original by at most the LSB.
	for i := 0; i < len(framed); i++ {
		if stego.Pix[i]&0xFE != original.Pix[i]&0xFE {
			t.Fatalf("pixel %d changed above the LSB: %d vs %d", i, stego.Pix[i], original.Pix[i])
		}
		if stego.Pix[i]&1 != framed[i]-'0' {
			t.Fatalf("pixel %d LSB = %d, want bit %c", i, stego.Pix[i]&1, framed[i])
		}
	}
}

func TestEmbedTruncatesAtCapacity(t *testing.T) {
	ch, err := NewChannel(testGrid(4, 4)) // 16 slots
	if err != nil {
		t.Fatalf("NewChannel() error = %v", err)
	}

	framed := strings.Repeat("1", 40)
	stego := ch.Embed(framed)
	for i, p := range stego.Pix {
		if p&1 != 1 {
			t.Fatalf("pixel %d LSB = 0, want 1", i)
		}
	}
}

func TestExtractBitsRangeErrors(t *testing.T) {
	ch, err := NewChannel(testGrid(4, 4))
	if err != nil {
		t.Fatalf("NewChannel() error = %v", err)
	}

	if _, err := ch.ExtractBits(0, 17); !errors.Is(err, errors.ErrCodeMalformedHeader) {
		t.Errorf("past-grid code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedHeader)
	}
	if _, err := ch.ExtractBits(10, 10); !errors.Is(err, errors.ErrCodeMalformedHeader) {
		t.Errorf("offset past-grid code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedHeader)
	}
	if _, err := ch.ExtractBits(-1, 4); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative start code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
	if _, err := ch.ExtractBits(0, -4); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative length code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestExtractHeader(t *testing.T) {
	grid := testGrid(16, 16)
	ch, err := NewChannel(grid)
	if err != nil {
		t.Fatalf("NewChannel() error = %v", err)
	}

	payload := "101100111000"
	stego := ch.Embed(Frame(payload))

	out, err := NewChannel(stego)
	if err != nil {
		t.Fatalf("NewChannel(stego) error = %v", err)
	}
	n, err := out.ExtractHeader()
	if err != nil {
		t.Fatalf("ExtractHeader() error = %v", err)
	}
	if n != len(payload) {
		t.Errorf("ExtractHeader() = %d, want %d", n, len(payload))
	}

	got, err := out.ExtractPayload(n)
	if err != nil {
		t.Fatalf("ExtractPayload() error = %v", err)
	}
	if got != payload {
		t.Errorf("ExtractPayload() = %q, want %q", got, payload)
	}
}

func TestExtractHeaderRejectsOverdeclaredLength(t *testing.T) {
	// All-ones LSB plane: the header reads as 2^32-1, which no 8×8 grid
	// could ever have carried.
	g := NewGrid(8, 8)
	for i := range g.Pix {
		g.Pix[i] = 0xFF
	}
	ch, err := NewChannel(g)
	if err != nil {
		t.Fatalf("NewChannel() error = %v", err)
	}

	if _, err := ch.ExtractHeader(); !errors.Is(err, errors.ErrCodeMalformedHeader) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedHeader)
	}
}

// TestChannelTextEndToEnd runs the §8-style scenario directly against the
// channel: encode the demo message, embed into a zeroed 512×512 grid,
// extract and decode.
func TestChannelTextEndToEnd(t *testing.T) {
	const message = "Hello GZR!"

	payload, err := tribonacci.EncodeText(message)
	if err != nil {
		t.Fatalf("EncodeText() error = %v", err)
	}

	ch, err := NewChannel(NewGrid(512, 512))
	if err != nil {
		t.Fatalf("NewChannel() error = %v", err)
	}
	if err := ch.CheckCapacity(len(payload)); err != nil {
		t.Fatalf("CheckCapacity() error = %v", err)
	}
	stego := ch.Embed(Frame(payload))

	out, err := NewChannel(stego)
	if err != nil {
		t.Fatalf("NewChannel(stego) error = %v", err)
	}
	n, err := out.ExtractHeader()
	if err != nil {
		t.Fatalf("ExtractHeader() error = %v", err)
	}
	bits, err := out.ExtractPayload(n)
	if err != nil {
		t.Fatalf("ExtractPayload() error = %v", err)
	}

	if got := tribonacci.DecodeText(bits); got != message {
		t.Errorf("decoded message = %q, want %q", got, message)
	}
}
