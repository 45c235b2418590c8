package tribonacci

import (
	"strings"
	"testing"

	"github.com/gzrlab/gzrsteg/pkg/errors"
)

// seq255 is the weight sequence the text codec uses for every slot.
var seq255 = Generate(255)

func TestEncodeInt(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{-5, "0"},
		{1, "100000000"},
		{2, "10000000"},   // trimmed: weight-1 zero stripped from the front
		{4, "1000000"},
		{7, "100000"},
		{13, "10000"},
		{24, "1000"},
		{44, "100"},
		{81, "10"},
		{149, "1"},
		{65, "100110100"}, // 65 = 44 + 13 + 7 + 1
		{127, "10000110"},
		{255, "100001011"},
	}

	for _, tt := range tests {
		if got := EncodeInt(tt.n, seq255); got != tt.want {
			t.Errorf("EncodeInt(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDecodeInt(t *testing.T) {
	tests := []struct {
		name   string
		digits string
		want   int
	}{
		{"empty", "", 0},
		{"literal zero", "0", 0},
		{"weight one", "1", 1},
		{"sixty five", "100110100", 65},
		{"max slot", "100001011", 255},
		{"digits past sequence ignored", "1000000000000001", 1},
		{"all zeros", "000000000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeInt(tt.digits, seq255); got != tt.want {
				t.Errorf("DecodeInt(%q) = %d, want %d", tt.digits, got, tt.want)
			}
		})
	}
}

// TestBareRoundTripCensus pins down which values survive EncodeInt→DecodeInt
// without slot padding. The front trim drops low-weight zero positions, so a
// value round-trips bare only when its greedy decomposition includes weight
// 1 (nothing gets trimmed). 117 of the 255 slot values do; the others are
// recovered only through the SlotWidth padding of the text codec. This is a
// regression fixture: a "corrected" canonical encoder would make all 255
// pass and silently break stream compatibility.
func TestBareRoundTripCensus(t *testing.T) {
	passed := 0
	for n := 1; n <= 255; n++ {
		enc := EncodeInt(n, seq255)
		if DecodeInt(enc, seq255) == n {
			passed++
		}
	}
	if passed != 117 {
		t.Errorf("bare round-trip census: %d values passed, want 117", passed)
	}

	// The canonical desync example: 2 loses its weight-1 zero and reads
	// back as 1.
	if got := DecodeInt(EncodeInt(2, seq255), seq255); got != 1 {
		t.Errorf("DecodeInt(EncodeInt(2)) = %d, want the documented desync value 1", got)
	}
}

// TestPaddedRoundTrip verifies that re-padding to the sequence width makes
// every slot value round-trip, which is what the text codec relies on.
func TestPaddedRoundTrip(t *testing.T) {
	for n := 1; n <= 255; n++ {
		enc := EncodeInt(n, seq255)
		padded := strings.Repeat("0", SlotWidth-len(enc)) + enc
		if got := DecodeInt(padded, seq255); got != n {
			t.Errorf("padded round trip: %d → %q → %d", n, padded, got)
		}
	}
}

func TestNo111Property(t *testing.T) {
	for n := 1; n <= 255; n++ {
		enc := EncodeInt(n, seq255)
		if ok, count := VerifyNo111(enc); !ok {
			t.Errorf("EncodeInt(%d) = %q contains %d runs of 111", n, enc, count)
		}
	}
}

func TestEncodeText(t *testing.T) {
	// Bitstream captured from a known-good encode of the demo message.
	const wantHello = "001001100000110010110001010110001010011001010100101000110001100010100010100000010010101000"

	got, err := EncodeText("Hello GZR!")
	if err != nil {
		t.Fatalf("EncodeText() error = %v", err)
	}
	if got != wantHello {
		t.Errorf("EncodeText(\"Hello GZR!\") = %q, want %q", got, wantHello)
	}
	if len(got) != 10*SlotWidth {
		t.Errorf("bitstream length = %d, want %d", len(got), 10*SlotWidth)
	}
	if ok, count := VerifyNo111(got); !ok {
		t.Errorf("encoded stream contains %d runs of 111", count)
	}
}

func TestEncodeTextRejectsWideRunes(t *testing.T) {
	_, err := EncodeText("naïve ☃")
	if err == nil {
		t.Fatal("EncodeText() error = nil, want UNSUPPORTED_CODE_POINT")
	}
	if !errors.Is(err, errors.ErrCodeUnsupportedCodePoint) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupportedCodePoint)
	}
}

func TestTextRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"single char", "A"},
		{"demo message", "Hello GZR!"},
		{"punctuation", "LSB + GZR = stego (2026)!?"},
		{"latin-1 range", "café über ñ"},
		{"full slot value", string(rune(255))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits, err := EncodeText(tt.text)
			if err != nil {
				t.Fatalf("EncodeText() error = %v", err)
			}
			if got := DecodeText(bits); got != tt.text {
				t.Errorf("DecodeText(EncodeText(%q)) = %q", tt.text, got)
			}
		})
	}
}

func TestTextRoundTripAllCodePoints(t *testing.T) {
	for n := 1; n <= 255; n++ {
		text := string(rune(n))
		bits, err := EncodeText(text)
		if err != nil {
			t.Fatalf("EncodeText(%U) error = %v", rune(n), err)
		}
		if got := DecodeText(bits); got != text {
			t.Errorf("code point %d: round trip = %q, want %q", n, got, text)
		}
	}
}

func TestDecodeTextDropsNulAndTail(t *testing.T) {
	bits, err := EncodeText("A\x00B")
	if err != nil {
		t.Fatalf("EncodeText() error = %v", err)
	}

	// The zero slot is a filler and disappears on decode.
	if got := DecodeText(bits); got != "AB" {
		t.Errorf("DecodeText() = %q, want %q (NUL slots are dropped)", got, "AB")
	}

	// An incomplete trailing chunk is discarded silently.
	if got := DecodeText(bits + "1010"); got != "AB" {
		t.Errorf("DecodeText() with partial tail = %q, want %q", got, "AB")
	}
}

func TestVerifyNo111(t *testing.T) {
	tests := []struct {
		bits      string
		wantOK    bool
		wantCount int
	}{
		{"", true, 0},
		{"101010", true, 0},
		{"111", false, 1},
		{"1111", false, 1}, // non-overlapping count
		{"111011100", false, 2},
	}

	for _, tt := range tests {
		ok, count := VerifyNo111(tt.bits)
		if ok != tt.wantOK || count != tt.wantCount {
			t.Errorf("VerifyNo111(%q) = (%v, %d), want (%v, %d)",
				tt.bits, ok, count, tt.wantOK, tt.wantCount)
		}
	}
}

func TestBitDensity(t *testing.T) {
	tests := []struct {
		bits string
		want float64
	}{
		{"", 0},
		{"0000", 0},
		{"1111", 1},
		{"1010", 0.5},
	}

	for _, tt := range tests {
		if got := BitDensity(tt.bits); got != tt.want {
			t.Errorf("BitDensity(%q) = %v, want %v", tt.bits, got, tt.want)
		}
	}

	// The demo message has a markedly lower density than the ~0.5 of
	// random binary: 33 ones across 90 digits.
	bits, err := EncodeText("Hello GZR!")
	if err != nil {
		t.Fatalf("EncodeText() error = %v", err)
	}
	if got := BitDensity(bits); got < 0.36 || got > 0.37 {
		t.Errorf("BitDensity(demo) = %v, want 33/90", got)
	}
}
