package leb128

import (
	"errors"
	"fmt"
)

// Decode reads one value from the front of data and returns it together with
// the unconsumed rest of data. The rest aliases data.
//
// There is no overflow check: groups beyond bit 63 are dropped, so an
// over-long encoding decodes to a truncated value. Use DecodeCanonical to
// reject such input.
func Decode(data []byte) (uint64, []byte, error) {
	var v uint64
	for i, b := range data {
		v |= uint64(b&groupMask) << (7 * uint(i))
		if b&continuation == 0 {
			return v, data[i+1:], nil
		}
	}
	if len(data) == 0 {
		return 0, nil, leberr(ERR_UNEXPECTED_EOF, "empty input")
	}
	return 0, nil, leberr(ERR_UNEXPECTED_EOF, fmt.Sprintf("unterminated value after %d bytes", len(data)))
}

// DecodeCanonical is Decode restricted to encodings Encode can produce.
// Encodings longer than MaxLen or carrying bits beyond 63 fail with
// ERR_OVERFLOW; a multi-byte encoding ending in a zero group fails with
// ERR_NON_MINIMAL.
func DecodeCanonical(data []byte) (uint64, []byte, error) {
	var v uint64
	for i, b := range data {
		if i == MaxLen-1 {
			// The 10th group holds bit 63 only.
			if b&continuation != 0 || b&groupMask > 1 {
				return 0, nil, leberr(ERR_OVERFLOW, "value exceeds 64 bits")
			}
		}
		v |= uint64(b&groupMask) << (7 * uint(i))
		if b&continuation != 0 {
			continue
		}
		if b == 0 && i > 0 {
			return 0, nil, leberr(ERR_NON_MINIMAL, fmt.Sprintf("zero high group at byte %d", i))
		}
		return v, data[i+1:], nil
	}
	if len(data) == 0 {
		return 0, nil, leberr(ERR_UNEXPECTED_EOF, "empty input")
	}
	return 0, nil, leberr(ERR_UNEXPECTED_EOF, fmt.Sprintf("unterminated value after %d bytes", len(data)))
}

// DecodeN decodes exactly n consecutive values. On failure no values are
// returned.
func DecodeN(data []byte, n int) ([]uint64, []byte, error) {
	if n < 0 {
		return nil, nil, leberr(ERR_INVALID_COUNT, fmt.Sprintf("negative count %d", n))
	}
	// Every value takes at least one byte.
	if uint64(n) > uint64(len(data)) {
		return nil, nil, leberr(ERR_UNEXPECTED_EOF, fmt.Sprintf("count %d exceeds %d input bytes", n, len(data)))
	}
	out := make([]uint64, n)
	rest, err := DecodeInto(out, data)
	if err != nil {
		return nil, nil, err
	}
	return out, rest, nil
}

// DecodeInto fills every element of dst, in order, from the front of data and
// returns the rest. For a fixed-arity result pass an array slice:
//
//	var xyz [3]uint64
//	rest, err := leb128.DecodeInto(xyz[:], buf)
//
// On failure dst may be partially written.
func DecodeInto(dst []uint64, data []byte) ([]byte, error) {
	for i := range dst {
		v, rest, err := Decode(data)
		if err != nil {
			return nil, countErr(err, i, len(dst))
		}
		dst[i] = v
		data = rest
	}
	return data, nil
}

// DecodeList decodes values until data is exhausted. Empty data yields an
// empty, non-nil slice.
func DecodeList(data []byte) ([]uint64, error) {
	// Every value takes at least one byte.
	out := make([]uint64, 0, len(data))
	for len(data) > 0 {
		v, rest, err := Decode(data)
		if err != nil {
			return nil, countErr(err, len(out), -1)
		}
		out = append(out, v)
		data = rest
	}
	return out, nil
}

// countErr annotates a Decode failure with the index of the failing value,
// keeping its code.
func countErr(err error, idx, total int) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if total < 0 {
		return leberr(e.Code, fmt.Sprintf("value %d: %s", idx, e.Msg))
	}
	return leberr(e.Code, fmt.Sprintf("value %d of %d: %s", idx, total, e.Msg))
}
