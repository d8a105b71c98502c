package conformance

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"leb128.dev/varint/leb128"
)

func TestStandardVectorsPass(t *testing.T) {
	f := StandardVectors(DefaultGate)
	if len(f.Vectors) == 0 {
		t.Fatalf("no vectors")
	}
	seen := make(map[string]struct{}, len(f.Vectors))
	for _, v := range f.Vectors {
		if _, dup := seen[v.ID]; dup {
			t.Fatalf("duplicate vector id %s", v.ID)
		}
		seen[v.ID] = struct{}{}
		t.Run(v.ID, func(t *testing.T) {
			if err := Run(v); err != nil {
				t.Fatalf("%v", err)
			}
		})
	}
}

func TestRunDetectsMismatch(t *testing.T) {
	cases := []struct {
		name string
		v    Vector
	}{
		{"wrong_hex", Vector{ID: "X", Op: OpEncode, Values: []uint64{300}, Hex: "ac03"}},
		{"encode_arity", Vector{ID: "X", Op: OpEncode, Values: []uint64{1, 2}, Hex: "0102"}},
		{"wrong_value", Vector{ID: "X", Op: OpDecode, Hex: "7f", Values: []uint64{126}}},
		{"wrong_rest", Vector{ID: "X", Op: OpDecode, Hex: "7f01", Values: []uint64{127}}},
		{"missing_error", Vector{ID: "X", Op: OpDecode, Hex: "00", ExpectErr: string(leb128.ERR_UNEXPECTED_EOF)}},
		{"wrong_error", Vector{ID: "X", Op: OpDecodeCanonical, Hex: "8000", ExpectErr: string(leb128.ERR_OVERFLOW)}},
		{"unexpected_error", Vector{ID: "X", Op: OpDecodeList, Hex: "80"}},
		{"short_list", Vector{ID: "X", Op: OpDecodeList, Hex: "0001", Values: []uint64{0}}},
		{"bad_hex", Vector{ID: "X", Op: OpDecode, Hex: "zz"}},
		{"unknown_op", Vector{ID: "X", Op: "decode_signed", Hex: "00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Run(tc.v)
			if err == nil {
				t.Fatalf("expected mismatch")
			}
			if !strings.HasPrefix(err.Error(), "X: ") {
				t.Fatalf("error not prefixed with vector id: %v", err)
			}
		})
	}
}

func TestRunFixtureJoinsFailures(t *testing.T) {
	f := &Fixture{Gate: "CV-TEST", Vectors: []Vector{
		{ID: "ok", Op: OpEncode, Values: []uint64{1}, Hex: "01"},
		{ID: "bad1", Op: OpEncode, Values: []uint64{1}, Hex: "02"},
		{ID: "bad2", Op: OpDecode, Hex: "80", Values: []uint64{0}},
	}}
	err := RunFixture(f)
	if err == nil {
		t.Fatalf("expected failures")
	}
	msg := err.Error()
	if !strings.Contains(msg, "bad1") || !strings.Contains(msg, "bad2") || strings.Contains(msg, "ok:") {
		t.Fatalf("unexpected joined error: %v", msg)
	}
	if err := RunFixture(StandardVectors("CV-TEST")); err != nil {
		t.Fatalf("standard vectors: %v", err)
	}
}

func TestWriteFixtureWritesTrailingNewlineAndTightPerms(t *testing.T) {
	dir := t.TempDir()
	path := FixturePath(filepath.Join(dir, "fixtures"), "CV-TEST")

	f := StandardVectors("CV-TEST")
	if err := WriteFixture(path, f); err != nil {
		t.Fatalf("WriteFixture: %v", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode().Perm()&0o077 != 0 {
		t.Fatalf("expected tight perms (no group/other bits), got %o", st.Mode().Perm())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(b) == 0 || b[len(b)-1] != '\n' {
		t.Fatalf("expected trailing newline")
	}
	var parsed Fixture
	if err := json.Unmarshal(b, &parsed); err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if parsed.Gate != "CV-TEST" {
		t.Fatalf("gate mismatch: %q", parsed.Gate)
	}

	loaded, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if err := VerifyDigest(loaded); err != nil {
		t.Fatalf("VerifyDigest: %v", err)
	}
	if len(loaded.Vectors) != len(f.Vectors) {
		t.Fatalf("vectors=%d want=%d", len(loaded.Vectors), len(f.Vectors))
	}
	if err := RunFixture(loaded); err != nil {
		t.Fatalf("RunFixture after reload: %v", err)
	}
}

func TestVerifyDigestDetectsTampering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CV-TEST.json")
	if err := WriteFixture(path, StandardVectors("CV-TEST")); err != nil {
		t.Fatalf("WriteFixture: %v", err)
	}
	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	f.Vectors[0].Hex = "01"
	if err := VerifyDigest(f); err == nil {
		t.Fatalf("expected digest mismatch")
	}

	f.Digest = ""
	if err := VerifyDigest(f); err == nil {
		t.Fatalf("expected missing digest error")
	}
}

func TestDigestIgnoresGate(t *testing.T) {
	a, err := Digest(StandardVectors("A"))
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	b, err := Digest(StandardVectors("B"))
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if a != b {
		t.Fatalf("digest depends on gate")
	}
	if _, err := Digest(nil); err == nil {
		t.Fatalf("expected error for nil fixture")
	}
}

func TestLoadFixtureErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFixture(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFixture(bad); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFixtureFind(t *testing.T) {
	f := StandardVectors(DefaultGate)
	v, ok := f.Find("CV-L-04")
	if !ok || v.Hex != "ac02" {
		t.Fatalf("Find(CV-L-04) = %+v, %v", v, ok)
	}
	if _, ok := f.Find("nope"); ok {
		t.Fatalf("unexpected hit")
	}
	var nilFixture *Fixture
	if _, ok := nilFixture.Find("CV-L-04"); ok {
		t.Fatalf("nil fixture hit")
	}
}

func TestCommittedFixtureIsCurrent(t *testing.T) {
	f, err := LoadFixture(FixturePath("fixtures", DefaultGate))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if err := VerifyDigest(f); err != nil {
		t.Fatalf("VerifyDigest: %v", err)
	}
	if err := RunFixture(f); err != nil {
		t.Fatalf("RunFixture: %v", err)
	}
	want, err := Digest(StandardVectors(DefaultGate))
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if f.Digest != hex.EncodeToString(want[:]) {
		t.Fatalf("committed fixture is stale; regenerate with gen-leb128-fixtures")
	}
}
