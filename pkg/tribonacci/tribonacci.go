// Package tribonacci implements the Tribonacci weight sequence and the
// Generalized Zeckendorf Representation (GZR) numeral codec built on it.
//
// The Tribonacci sequence is seeded with [1, 2, 4] and extended by
// T(n) = T(n-1) + T(n-2) + T(n-3). The GZR writes an integer as a sum of
// distinct Tribonacci terms chosen greedily from the largest down. Greedy
// selection guarantees the resulting digit string never contains three
// consecutive '1' digits at adjacent weight positions (if terms k, k+1 and
// k+2 were all selected, their sum T(k+3) would have been selected first).
//
// The "no 111" property is what makes GZR interesting as a steganographic
// payload encoding: the bitstream carries structurally fewer one-runs than
// plain 8-bit binary, lowering its statistical signature in an LSB plane.
//
// # Digit strings
//
// Digit strings are ordered smallest weight first: position i carries weight
// seq[i]. A character slot is a digit string zero-padded on the left to
// SlotWidth digits, wide enough for every code point up to MaxCodePoint.
//
// All functions are pure; the sequence is recomputed (or served from an
// internal once-value) per call and no state is shared across calls.
package tribonacci

// Generate returns the Tribonacci sequence [1, 2, 4, 7, 13, 24, ...] with
// every generated term bounded by threshold. The three seed terms are
// returned whenever threshold >= 1, even when they exceed the threshold
// (Generate(3) == [1, 2, 4]). A threshold below 1 yields nil.
//
// Growth stops before appending a term greater than threshold, and also
// once the last appended term reaches threshold.
func Generate(threshold int) []int {
	if threshold < 1 {
		return nil
	}

	seq := []int{1, 2, 4}
	for seq[len(seq)-1] < threshold {
		next := seq[len(seq)-1] + seq[len(seq)-2] + seq[len(seq)-3]
		if next > threshold {
			break
		}
		seq = append(seq, next)
	}
	return seq
}
