package conformance

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"leb128.dev/varint/leb128"
)

// Run executes v against the leb128 package and reports the first mismatch.
func Run(v Vector) error {
	switch v.Op {
	case OpEncode:
		if len(v.Values) != 1 {
			return fmt.Errorf("%s: encode wants exactly 1 value, got %d", v.ID, len(v.Values))
		}
		return checkHex(v, leb128.Encode(v.Values[0]))
	case OpEncodeList:
		return checkHex(v, leb128.EncodeList(v.Values))
	case OpDecode, OpDecodeCanonical:
		in, err := vectorInput(v)
		if err != nil {
			return err
		}
		decode := leb128.Decode
		if v.Op == OpDecodeCanonical {
			decode = leb128.DecodeCanonical
		}
		got, rest, err := decode(in)
		if done, cerr := checkErr(v, err); done {
			return cerr
		}
		if len(v.Values) != 1 || got != v.Values[0] {
			return fmt.Errorf("%s: value=%d want=%v", v.ID, got, v.Values)
		}
		return checkRest(v, rest)
	case OpDecodeN:
		in, err := vectorInput(v)
		if err != nil {
			return err
		}
		got, rest, err := leb128.DecodeN(in, v.Count)
		if done, cerr := checkErr(v, err); done {
			return cerr
		}
		if err := checkValues(v, got); err != nil {
			return err
		}
		return checkRest(v, rest)
	case OpDecodeList:
		in, err := vectorInput(v)
		if err != nil {
			return err
		}
		got, err := leb128.DecodeList(in)
		if done, cerr := checkErr(v, err); done {
			return cerr
		}
		return checkValues(v, got)
	default:
		return fmt.Errorf("%s: unknown op %q", v.ID, v.Op)
	}
}

// RunFixture runs every vector and joins the failures.
func RunFixture(f *Fixture) error {
	if f == nil {
		return fmt.Errorf("fixture: nil")
	}
	var errs []error
	for _, v := range f.Vectors {
		if err := Run(v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func vectorInput(v Vector) ([]byte, error) {
	b, err := hex.DecodeString(v.Hex)
	if err != nil {
		return nil, fmt.Errorf("%s: bad hex: %w", v.ID, err)
	}
	return b, nil
}

// checkErr returns done=true when err settles the vector: either an expected
// error matched (nil result) or the outcome contradicts ExpectErr.
func checkErr(v Vector, err error) (bool, error) {
	if v.ExpectErr == "" {
		if err != nil {
			return true, fmt.Errorf("%s: unexpected error: %w", v.ID, err)
		}
		return false, nil
	}
	if err == nil {
		return true, fmt.Errorf("%s: expected %s, got success", v.ID, v.ExpectErr)
	}
	code, ok := leb128.CodeOf(err)
	if !ok || string(code) != v.ExpectErr {
		return true, fmt.Errorf("%s: expected %s, got %v", v.ID, v.ExpectErr, err)
	}
	return true, nil
}

func checkHex(v Vector, got []byte) error {
	if hex.EncodeToString(got) != v.Hex {
		return fmt.Errorf("%s: encode=%x want=%s", v.ID, got, v.Hex)
	}
	return nil
}

func checkRest(v Vector, rest []byte) error {
	want, err := hex.DecodeString(v.ExpectRestHex)
	if err != nil {
		return fmt.Errorf("%s: bad expect_rest_hex: %w", v.ID, err)
	}
	if !bytes.Equal(rest, want) {
		return fmt.Errorf("%s: rest=%x want=%s", v.ID, rest, v.ExpectRestHex)
	}
	return nil
}

func checkValues(v Vector, got []uint64) error {
	if len(got) != len(v.Values) {
		return fmt.Errorf("%s: decoded %d values, want %d", v.ID, len(got), len(v.Values))
	}
	for i := range got {
		if got[i] != v.Values[i] {
			return fmt.Errorf("%s: value[%d]=%d want=%d", v.ID, i, got[i], v.Values[i])
		}
	}
	return nil
}
