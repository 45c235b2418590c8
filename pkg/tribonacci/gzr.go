package tribonacci

import (
	"strings"
	"sync"

	"github.com/gzrlab/gzrsteg/pkg/errors"
)

const (
	// SlotWidth is the fixed digit width of one encoded character. Nine
	// weight positions of the MaxCodePoint sequence cover every value a
	// character slot must represent.
	SlotWidth = 9

	// MaxCodePoint is the largest code point a character slot can carry.
	MaxCodePoint = 255
)

// slotSequence returns the weight sequence used by the text codec. The
// sequence for a given threshold is deterministic, so computing it once is
// indistinguishable from recomputing it per call.
var slotSequence = sync.OnceValue(func() []int {
	return Generate(MaxCodePoint)
})

// EncodeInt returns the GZR digit string for n over seq, ordered smallest
// weight first. n <= 0 encodes as "0".
//
// Digits are produced by greedy decomposition from the largest weight down,
// then the string is reversed and its leading zero digits trimmed. The trim
// shifts the positional meaning of the surviving digits whenever the lowest
// selected weight is not seq[0]: DecodeInt then reads them against smaller
// weights (EncodeInt(2, seq) is "1" followed by zeros, which decodes as 1).
// Left-padding the result back to len(seq) digits, as the text codec does,
// restores the trimmed positions exactly. Callers that need a bare integer
// round trip must re-pad themselves. Downstream framing and decoding are
// calibrated against this exact behavior; do not canonicalize it here.
func EncodeInt(n int, seq []int) string {
	if n <= 0 {
		return "0"
	}

	digits := make([]byte, len(seq))
	remaining := n
	for i := len(seq) - 1; i >= 0; i-- {
		if seq[i] <= remaining {
			digits[i] = '1'
			remaining -= seq[i]
		} else {
			digits[i] = '0'
		}
	}

	out := strings.TrimLeft(string(digits), "0")
	if out == "" {
		return "0"
	}
	return out
}

// DecodeInt sums seq[i] for every position i of digits that holds '1'.
// Positions beyond the end of seq are ignored. An empty string or the
// literal "0" decodes to zero.
func DecodeInt(digits string, seq []int) int {
	if digits == "" || digits == "0" {
		return 0
	}

	total := 0
	for i := 0; i < len(digits) && i < len(seq); i++ {
		if digits[i] == '1' {
			total += seq[i]
		}
	}
	return total
}

// EncodeText encodes text as a GZR bitstream: one SlotWidth-digit slot per
// rune, slots concatenated in text order. Each slot is the rune's EncodeInt
// digits left-padded with '0' to SlotWidth, which restores any positions
// trimmed by EncodeInt.
//
// Runes above MaxCodePoint cannot fit a slot and are rejected with
// ErrCodeUnsupportedCodePoint.
func EncodeText(text string) (string, error) {
	seq := slotSequence()

	var b strings.Builder
	b.Grow(len(text) * SlotWidth)
	for _, r := range text {
		if r > MaxCodePoint {
			return "", errors.New(errors.ErrCodeUnsupportedCodePoint,
				"code point %U exceeds %d and cannot be slot-encoded", r, MaxCodePoint)
		}
		slot := EncodeInt(int(r), seq)
		for pad := SlotWidth - len(slot); pad > 0; pad-- {
			b.WriteByte('0')
		}
		b.WriteString(slot)
	}
	return b.String(), nil
}

// DecodeText decodes a GZR bitstream produced by EncodeText. The stream is
// read in SlotWidth-digit chunks; a chunk decoding to zero is a filler slot
// and is skipped, and an incomplete trailing chunk is discarded. Extraction
// noise therefore surfaces as garbled text, never as an error.
func DecodeText(bits string) string {
	seq := slotSequence()

	var b strings.Builder
	for i := 0; i+SlotWidth <= len(bits); i += SlotWidth {
		v := DecodeInt(bits[i:i+SlotWidth], seq)
		if v > 0 {
			b.WriteRune(rune(v))
		}
	}
	return b.String()
}

// VerifyNo111 reports whether bits is free of the "111" substring, along
// with the number of (non-overlapping) occurrences found.
func VerifyNo111(bits string) (bool, int) {
	n := strings.Count(bits, "111")
	return n == 0, n
}

// BitDensity returns the fraction of '1' digits in bits, or 0 for an empty
// string.
func BitDensity(bits string) float64 {
	if bits == "" {
		return 0
	}
	return float64(strings.Count(bits, "1")) / float64(len(bits))
}
