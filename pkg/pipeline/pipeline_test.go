package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/gzrlab/gzrsteg/pkg/errors"
	"github.com/gzrlab/gzrsteg/pkg/imageio"
	"github.com/gzrlab/gzrsteg/pkg/steg"
)

func testRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

// carrierFile writes a deterministic grayscale carrier to disk and returns
// its path.
func carrierFile(t *testing.T, w, h int) string {
	t.Helper()
	grid := steg.NewGrid(w, h)
	for i := range grid.Pix {
		grid.Pix[i] = uint8(100 + i%100)
	}
	path := filepath.Join(t.TempDir(), "carrier.png")
	if err := imageio.Save(path, grid); err != nil {
		t.Fatalf("save carrier: %v", err)
	}
	return path
}

func TestEncodeDecodeEndToEnd(t *testing.T) {
	const message = "Hello GZR!"

	carrier := carrierFile(t, 512, 512)
	stegoPath := filepath.Join(filepath.Dir(carrier), "stego.png")

	r := testRunner()
	encRes, err := r.Encode(context.Background(), EncodeOptions{
		ImagePath:  carrier,
		OutputPath: stegoPath,
		Message:    message,
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if encRes.ID == "" {
		t.Error("EncodeResult.ID is empty")
	}
	if encRes.Stats.PayloadBits != 90 {
		t.Errorf("PayloadBits = %d, want 90", encRes.Stats.PayloadBits)
	}
	if encRes.Stats.FrameBits != 90+steg.HeaderBits {
		t.Errorf("FrameBits = %d, want %d", encRes.Stats.FrameBits, 90+steg.HeaderBits)
	}
	if !encRes.Stats.ValidGZR || encRes.Stats.Pattern111 != 0 {
		t.Errorf("stream validity = (%v, %d), want (true, 0)", encRes.Stats.ValidGZR, encRes.Stats.Pattern111)
	}
	if encRes.Stats.CapacityBytes != 32768 {
		t.Errorf("CapacityBytes = %d, want 32768", encRes.Stats.CapacityBytes)
	}

	decRes, err := r.Decode(context.Background(), DecodeOptions{ImagePath: stegoPath})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decRes.Message != message {
		t.Errorf("decoded message = %q, want %q", decRes.Message, message)
	}
	if decRes.Stats.PayloadBits != 90 {
		t.Errorf("decode PayloadBits = %d, want 90", decRes.Stats.PayloadBits)
	}
	if !decRes.Stats.ValidGZR {
		t.Error("decode reports invalid GZR stream")
	}
}

func TestEncodeCapacityExceeded(t *testing.T) {
	// 16×16 grid: 32-byte capacity. Thirty characters need 270 bits,
	// estimated at 34 bytes.
	carrier := carrierFile(t, 16, 16)
	stegoPath := filepath.Join(filepath.Dir(carrier), "stego.png")

	r := testRunner()
	_, err := r.Encode(context.Background(), EncodeOptions{
		ImagePath:  carrier,
		OutputPath: stegoPath,
		Message:    strings.Repeat("A", 30),
	})
	if !errors.Is(err, errors.ErrCodeCapacityExceeded) {
		t.Fatalf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeCapacityExceeded)
	}

	// The failure fires before any pixel mutation or persistence.
	if _, statErr := os.Stat(stegoPath); !os.IsNotExist(statErr) {
		t.Error("stego file written despite capacity failure")
	}
}

func TestEncodeGridInMemory(t *testing.T) {
	grid := steg.NewGrid(64, 64)

	r := testRunner()
	encRes, err := r.EncodeGrid(context.Background(), grid, "in memory")
	if err != nil {
		t.Fatalf("EncodeGrid() error = %v", err)
	}

	// The caller's grid is untouched; the stego clone carries the bits.
	for _, p := range grid.Pix {
		if p != 0 {
			t.Fatal("source grid mutated by EncodeGrid")
		}
	}

	decRes, err := r.DecodeGrid(context.Background(), encRes.Stego)
	if err != nil {
		t.Fatalf("DecodeGrid() error = %v", err)
	}
	if decRes.Message != "in memory" {
		t.Errorf("decoded message = %q, want %q", decRes.Message, "in memory")
	}
}

func TestEncodeValidation(t *testing.T) {
	r := testRunner()

	tests := []struct {
		name string
		opts EncodeOptions
	}{
		{"missing image", EncodeOptions{Message: "x"}},
		{"missing message", EncodeOptions{ImagePath: "carrier.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Encode(context.Background(), tt.opts)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestEncodeMissingCarrier(t *testing.T) {
	r := testRunner()
	_, err := r.Encode(context.Background(), EncodeOptions{
		ImagePath: filepath.Join(t.TempDir(), "missing.png"),
		Message:   "x",
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestEncodeRejectsWideMessage(t *testing.T) {
	r := testRunner()
	_, err := r.EncodeGrid(context.Background(), steg.NewGrid(64, 64), "snowman ☃")
	if !errors.Is(err, errors.ErrCodeUnsupportedCodePoint) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupportedCodePoint)
	}
}

func TestDecodeGridGarbageHeader(t *testing.T) {
	// An all-ones LSB plane declares an impossible payload length.
	grid := steg.NewGrid(16, 16)
	for i := range grid.Pix {
		grid.Pix[i] = 0xFF
	}

	r := testRunner()
	_, err := r.DecodeGrid(context.Background(), grid)
	if !errors.Is(err, errors.ErrCodeMalformedHeader) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedHeader)
	}
}

func TestCompareWithBinary(t *testing.T) {
	cmp, err := CompareWithBinary("Hello GZR!")
	if err != nil {
		t.Fatalf("CompareWithBinary() error = %v", err)
	}

	if cmp.MessageChars != 10 {
		t.Errorf("MessageChars = %d, want 10", cmp.MessageChars)
	}
	if cmp.GZR.Bits != 90 {
		t.Errorf("GZR.Bits = %d, want 90", cmp.GZR.Bits)
	}
	if cmp.Binary.Bits != 80 {
		t.Errorf("Binary.Bits = %d, want 80", cmp.Binary.Bits)
	}
	if cmp.BitsDelta != 10 {
		t.Errorf("BitsDelta = %d, want 10", cmp.BitsDelta)
	}
	if !cmp.GZR.Valid || cmp.GZR.Pattern111 != 0 {
		t.Errorf("GZR stream validity = (%v, %d), want (true, 0)", cmp.GZR.Valid, cmp.GZR.Pattern111)
	}
	if cmp.DensityReduction <= 0 {
		t.Errorf("DensityReduction = %v, want > 0 (GZR must thin out ones)", cmp.DensityReduction)
	}
	if cmp.Pattern111Reduction < 0 {
		t.Errorf("Pattern111Reduction = %v, want >= 0", cmp.Pattern111Reduction)
	}
}

func TestCompareWithBinaryRejectsWideRunes(t *testing.T) {
	_, err := CompareWithBinary("☃")
	if !errors.Is(err, errors.ErrCodeUnsupportedCodePoint) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupportedCodePoint)
	}
}
