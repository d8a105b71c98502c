// Package conformance holds LEB128 conformance fixtures: the vector model,
// fixture file IO, the standard vector set, and a runner that checks vectors
// against the leb128 package.
package conformance

const (
	OpEncode          = "encode"
	OpEncodeList      = "encode_list"
	OpDecode          = "decode"
	OpDecodeCanonical = "decode_canonical"
	OpDecodeN         = "decode_n"
	OpDecodeList      = "decode_list"
)

// Vector is one conformance case.
//
// For encode ops Values is the input and Hex the expected encoding. For
// decode ops Hex is the input and Values the expected result, with
// ExpectRestHex the expected unconsumed suffix (decode, decode_canonical,
// decode_n). A non-empty ExpectErr names the expected leb128 error code; the
// other expectations are then ignored.
type Vector struct {
	ID            string   `json:"id"`
	Op            string   `json:"op"`
	Values        []uint64 `json:"values,omitempty"`
	Hex           string   `json:"hex"`
	Count         int      `json:"count,omitempty"`
	ExpectErr     string   `json:"expect_err,omitempty"`
	ExpectRestHex string   `json:"expect_rest_hex,omitempty"`
}

type Fixture struct {
	Gate    string   `json:"gate"`
	Digest  string   `json:"digest,omitempty"`
	Vectors []Vector `json:"vectors"`
}

func (f *Fixture) Find(id string) (Vector, bool) {
	if f == nil {
		return Vector{}, false
	}
	for _, v := range f.Vectors {
		if v.ID == id {
			return v, true
		}
	}
	return Vector{}, false
}
