package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"leb128.dev/varint/conformance"
	"leb128.dev/varint/conformance/store"
)

var slogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger returns a text logger on w; unknown levels fall back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	lvl, ok := slogLevels[level]
	if !ok {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// generate builds the standard vectors, refuses to write them unless they
// pass the runner, writes the fixture and, with cfg.DBPath set, records and
// verifies it in a vector store.
func generate(cfg conformance.Config, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	f := conformance.StandardVectors(cfg.Gate)
	for _, v := range f.Vectors {
		log.Debug("vector", "id", v.ID, "op", v.Op, "hex", v.Hex)
	}
	if err := conformance.RunFixture(f); err != nil {
		return fmt.Errorf("self-check: %w", err)
	}

	path := conformance.FixturePath(cfg.FixturesDir, cfg.Gate)
	if err := conformance.WriteFixture(path, f); err != nil {
		return err
	}
	log.Info("wrote fixture", "path", path, "vectors", len(f.Vectors), "digest", f.Digest)

	if cfg.DBPath == "" {
		return nil
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if gate, digest, ok, err := db.Meta(); err != nil {
		return err
	} else if ok {
		log.Warn("replacing stored fixture", "gate", gate, "digest", hex.EncodeToString(digest[:]))
	}
	if err := db.PutFixture(f); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := db.Verify(f); err != nil {
		return fmt.Errorf("store verify: %w", err)
	}
	log.Info("recorded fixture", "gate", cfg.Gate, "db", db.Path())
	return nil
}
