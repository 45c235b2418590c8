package steg

import (
	"fmt"
	"strconv"

	"github.com/gzrlab/gzrsteg/pkg/errors"
)

// HeaderBits is the fixed width of the length header: a 32-digit
// big-endian unsigned binary rendering of the payload's digit count.
// Unlike GZR digit strings this is plain positional binary, so the
// fixed-width zero padding carries no positional caveat.
const HeaderBits = 32

// Frame prefixes payload with its HeaderBits-digit length header. The
// length counts payload digits, not bytes.
func Frame(payload string) string {
	return fmt.Sprintf("%0*b", HeaderBits, len(payload)) + payload
}

// ParseHeader reads the first HeaderBits digits of framed as an unsigned
// big-endian binary integer. A frame shorter than the header is malformed.
func ParseHeader(framed string) (int, error) {
	if len(framed) < HeaderBits {
		return 0, errors.New(errors.ErrCodeMalformedHeader,
			"frame holds %d digits, header needs %d", len(framed), HeaderBits)
	}
	n, err := strconv.ParseUint(framed[:HeaderBits], 2, 32)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeMalformedHeader, err, "parse length header")
	}
	return int(n), nil
}

// Payload returns the n payload digits following the header.
func Payload(framed string, n int) (string, error) {
	if n < 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "negative payload length %d", n)
	}
	if len(framed) < HeaderBits+n {
		return "", errors.New(errors.ErrCodeMalformedHeader,
			"frame holds %d payload digits, header declares %d", len(framed)-HeaderBits, n)
	}
	return framed[HeaderBits : HeaderBits+n], nil
}
