// Package leb128 implements the unsigned LEB128 varint encoding of uint64
// values.
//
// Each encoded byte carries seven data bits in its low-order bits, least
// significant group first. The high-order bit is the continuation flag: 1 if
// another byte of the same value follows, 0 on the last byte. Sequences of
// values are plain concatenations with no separator or length prefix.
//
// All functions are pure and safe for concurrent use.
package leb128

import "math/bits"

const (
	// MaxLen is the length of the longest canonical encoding (math.MaxUint64).
	MaxLen = 10

	groupMask    = 0x7f
	continuation = 0x80
)

// EncodedLen returns the canonical encoded length of v.
func EncodedLen(v uint64) int {
	if v == 0 {
		return 1
	}
	return (bits.Len64(v) + 6) / 7
}

// Append encodes v and appends it to dst.
func Append(dst []byte, v uint64) []byte {
	for v > groupMask {
		dst = append(dst, byte(v&groupMask)|continuation)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Encode returns the canonical encoding of v in a buffer sized exactly to it.
// Encode(0) is []byte{0x00}.
func Encode(v uint64) []byte {
	return Append(make([]byte, 0, EncodedLen(v)), v)
}

// EncodeList concatenates the encodings of vs in order. An empty vs yields
// an empty, non-nil slice.
func EncodeList(vs []uint64) []byte {
	n := 0
	for _, v := range vs {
		n += EncodedLen(v)
	}
	out := make([]byte, 0, n)
	for _, v := range vs {
		out = Append(out, v)
	}
	return out
}
