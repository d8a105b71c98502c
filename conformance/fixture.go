package conformance

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/sha3"
)

// Digest is the SHA3-256 of the JSON encoding of f.Vectors. Gate and the
// stored digest do not contribute.
func Digest(f *Fixture) ([32]byte, error) {
	if f == nil {
		return [32]byte{}, fmt.Errorf("fixture: nil")
	}
	b, err := json.Marshal(f.Vectors)
	if err != nil {
		return [32]byte{}, fmt.Errorf("fixture json: %w", err)
	}
	h := sha3.New256()
	_, _ = h.Write(b)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}

// VerifyDigest checks f.Digest against the vectors. A fixture without a
// digest fails.
func VerifyDigest(f *Fixture) error {
	if f == nil {
		return fmt.Errorf("fixture: nil")
	}
	if f.Digest == "" {
		return fmt.Errorf("fixture %s: missing digest", f.Gate)
	}
	d, err := Digest(f)
	if err != nil {
		return err
	}
	if got := hex.EncodeToString(d[:]); got != f.Digest {
		return fmt.Errorf("fixture %s: digest mismatch: stored=%s computed=%s", f.Gate, f.Digest, got)
	}
	return nil
}

func FixturePath(dir, gate string) string {
	return filepath.Join(dir, gate+".json")
}

func LoadFixture(path string) (*Fixture, error) {
	b, err := os.ReadFile(path) // #nosec G304 -- path is operator supplied.
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// WriteFixture stamps f.Digest and writes f as indented JSON with a trailing
// newline: write temp -> fsync temp -> rename.
func WriteFixture(path string, f *Fixture) error {
	d, err := Digest(f)
	if err != nil {
		return err
	}
	f.Digest = hex.EncodeToString(d[:])

	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) // #nosec G304 -- tmp path is derived from operator-controlled path.
	if err != nil {
		return fmt.Errorf("open tmp: %w", err)
	}
	_, werr := out.Write(b)
	serr := out.Sync()
	cerr := out.Close()
	if werr != nil {
		return fmt.Errorf("write tmp: %w", werr)
	}
	if serr != nil {
		return fmt.Errorf("fsync tmp: %w", serr)
	}
	if cerr != nil {
		return fmt.Errorf("close tmp: %w", cerr)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
