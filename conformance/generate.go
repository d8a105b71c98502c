package conformance

import (
	"encoding/hex"
	"fmt"
	"math"

	"leb128.dev/varint/leb128"
)

const DefaultGate = "CV-LEB128"

// StandardVectors returns the supported vector set under gate. Hand-written
// vectors pin the wire format; boundary vectors are derived from the encoder.
func StandardVectors(gate string) *Fixture {
	vs := []Vector{
		{ID: "CV-L-01", Op: OpEncode, Values: []uint64{0}, Hex: "00"},
		{ID: "CV-L-02", Op: OpEncode, Values: []uint64{127}, Hex: "7f"},
		{ID: "CV-L-03", Op: OpEncode, Values: []uint64{128}, Hex: "8001"},
		{ID: "CV-L-04", Op: OpEncode, Values: []uint64{300}, Hex: "ac02"},
		{ID: "CV-L-05", Op: OpEncode, Values: []uint64{math.MaxUint64}, Hex: "ffffffffffffffffff01"},
		{ID: "CV-L-06", Op: OpEncodeList, Values: []uint64{0, 128}, Hex: "008001"},
		{ID: "CV-L-07", Op: OpEncodeList, Hex: ""},
		{ID: "CV-L-08", Op: OpDecode, Hex: "00", Values: []uint64{0}},
		{ID: "CV-L-09", Op: OpDecode, Hex: "ac0201020304", Values: []uint64{300}, ExpectRestHex: "01020304"},
		{ID: "CV-L-10", Op: OpDecode, Hex: "", ExpectErr: string(leb128.ERR_UNEXPECTED_EOF)},
		{ID: "CV-L-11", Op: OpDecode, Hex: "80", ExpectErr: string(leb128.ERR_UNEXPECTED_EOF)},
		{ID: "CV-L-12", Op: OpDecode, Hex: "8080808080808080808001", Values: []uint64{0}},
		{ID: "CV-L-13", Op: OpDecode, Hex: "ffffffffffffffffff02", Values: []uint64{math.MaxInt64}},
		{ID: "CV-L-14", Op: OpDecodeCanonical, Hex: "8080808080808080808001", ExpectErr: string(leb128.ERR_OVERFLOW)},
		{ID: "CV-L-15", Op: OpDecodeCanonical, Hex: "ffffffffffffffffff02", ExpectErr: string(leb128.ERR_OVERFLOW)},
		{ID: "CV-L-16", Op: OpDecodeCanonical, Hex: "8000", ExpectErr: string(leb128.ERR_NON_MINIMAL)},
		{ID: "CV-L-17", Op: OpDecodeCanonical, Hex: "ac02ff", Values: []uint64{300}, ExpectRestHex: "ff"},
		{ID: "CV-L-18", Op: OpDecodeN, Hex: "0080017f", Count: 2, Values: []uint64{0, 128}, ExpectRestHex: "7f"},
		{ID: "CV-L-19", Op: OpDecodeN, Hex: "0080", Count: 2, ExpectErr: string(leb128.ERR_UNEXPECTED_EOF)},
		{ID: "CV-L-20", Op: OpDecodeN, Hex: "00", Count: -1, ExpectErr: string(leb128.ERR_INVALID_COUNT)},
		{ID: "CV-L-21", Op: OpDecodeList, Hex: "008001", Values: []uint64{0, 128}},
		{ID: "CV-L-22", Op: OpDecodeList, Hex: "", Values: nil},
		{ID: "CV-L-23", Op: OpDecodeList, Hex: "00ff", ExpectErr: string(leb128.ERR_UNEXPECTED_EOF)},
	}

	// 2^(7k)-1 is the largest k-byte value and 2^(7k) the smallest (k+1)-byte one.
	for k := 1; k <= 9; k++ {
		hi := uint64(1)<<(7*uint(k)) - 1
		lo := uint64(1) << (7 * uint(k))
		for _, val := range []uint64{hi, lo} {
			enc := leb128.Encode(val)
			vs = append(vs,
				Vector{
					ID:     fmt.Sprintf("CV-L-B%d-%d", k, len(enc)),
					Op:     OpEncode,
					Values: []uint64{val},
					Hex:    hex.EncodeToString(enc),
				},
				Vector{
					ID:        fmt.Sprintf("CV-L-B%d-%d-trunc", k, len(enc)),
					Op:        OpDecode,
					Hex:       hex.EncodeToString(enc[:len(enc)-1]),
					ExpectErr: string(leb128.ERR_UNEXPECTED_EOF),
				},
			)
		}
	}

	return &Fixture{Gate: gate, Vectors: vs}
}
