// Package store records conformance fixtures in a bbolt database.
//
// Each vector's values are stored under its id as a LEB128 count followed by
// the LEB128 values, so reading them back exercises the decoder.
package store

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"leb128.dev/varint/conformance"
	"leb128.dev/varint/leb128"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketVectors = []byte("vectors_by_id")
	bucketMeta    = []byte("meta")

	keyGate   = []byte("gate")
	keyDigest = []byte("digest")
)

type DB struct {
	path string
	db   *bolt.DB
}

func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("db path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}

	d := &DB{path: path, db: bdb}
	if err := d.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketVectors, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *DB) Path() string { return d.path }

// PutFixture replaces the stored corpus with f in one transaction. The
// digest is recomputed from f.Vectors, not taken from f.Digest.
func (d *DB) PutFixture(f *conformance.Fixture) error {
	if d == nil {
		return fmt.Errorf("db: nil")
	}
	digest, err := conformance.Digest(f)
	if err != nil {
		return err
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketVectors); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return fmt.Errorf("reset %s: %w", string(bucketVectors), err)
		}
		vb, err := tx.CreateBucket(bucketVectors)
		if err != nil {
			return fmt.Errorf("create bucket %s: %w", string(bucketVectors), err)
		}
		for _, v := range f.Vectors {
			if v.ID == "" {
				return fmt.Errorf("vector with empty id")
			}
			if err := vb.Put([]byte(v.ID), encodeValues(v.Values)); err != nil {
				return fmt.Errorf("put %s: %w", v.ID, err)
			}
		}
		mb := tx.Bucket(bucketMeta)
		if err := mb.Put(keyGate, []byte(f.Gate)); err != nil {
			return err
		}
		return mb.Put(keyDigest, digest[:])
	})
}

// GetValues returns the stored values of vector id.
func (d *DB) GetValues(id string) ([]uint64, bool, error) {
	var out []uint64
	var ok bool
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketVectors).Get([]byte(id))
		if v == nil {
			return nil
		}
		vals, err := decodeValues(v)
		if err != nil {
			return fmt.Errorf("decode %s: %w", id, err)
		}
		out = vals
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, ok, nil
}

// Meta returns the stored gate and digest.
func (d *DB) Meta() (gate string, digest [32]byte, ok bool, err error) {
	err = d.db.View(func(tx *bolt.Tx) error {
		mb := tx.Bucket(bucketMeta)
		dg := mb.Get(keyDigest)
		if dg == nil {
			return nil
		}
		if len(dg) != len(digest) {
			return fmt.Errorf("stored digest: len=%d", len(dg))
		}
		copy(digest[:], dg)
		gate = string(mb.Get(keyGate))
		ok = true
		return nil
	})
	return gate, digest, ok, err
}

func (d *DB) Count() (int, error) {
	n := 0
	err := d.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketVectors).Stats().KeyN
		return nil
	})
	return n, err
}

// Verify checks that the store holds exactly f: same digest, same vector
// ids, same values.
func (d *DB) Verify(f *conformance.Fixture) error {
	if f == nil {
		return fmt.Errorf("fixture: nil")
	}
	want, err := conformance.Digest(f)
	if err != nil {
		return err
	}
	_, got, ok, err := d.Meta()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("store %s: no fixture recorded", d.path)
	}
	if got != want {
		return fmt.Errorf("store digest %s != fixture digest %s", hex.EncodeToString(got[:]), hex.EncodeToString(want[:]))
	}
	n, err := d.Count()
	if err != nil {
		return err
	}
	if n != len(f.Vectors) {
		return fmt.Errorf("store holds %d vectors, fixture has %d", n, len(f.Vectors))
	}
	for _, v := range f.Vectors {
		vals, ok, err := d.GetValues(v.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: missing from store", v.ID)
		}
		if len(vals) != len(v.Values) {
			return fmt.Errorf("%s: stored %d values, want %d", v.ID, len(vals), len(v.Values))
		}
		for i := range vals {
			if vals[i] != v.Values[i] {
				return fmt.Errorf("%s: value[%d]=%d want=%d", v.ID, i, vals[i], v.Values[i])
			}
		}
	}
	return nil
}

func encodeValues(vals []uint64) []byte {
	out := leb128.Append(nil, uint64(len(vals)))
	for _, v := range vals {
		out = leb128.Append(out, v)
	}
	return out
}

func decodeValues(b []byte) ([]uint64, error) {
	n, rest, err := leb128.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	// Every value takes at least one byte.
	if n > uint64(len(rest)) {
		return nil, fmt.Errorf("count %d exceeds %d remaining bytes", n, len(rest))
	}
	vals, rest, err := leb128.DecodeN(rest, int(n))
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%d trailing bytes", len(rest))
	}
	return vals, nil
}
