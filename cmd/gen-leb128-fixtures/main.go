package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"leb128.dev/varint/conformance"
)

func main() {
	defaults := conformance.DefaultConfig()
	cfg := defaults
	flag.StringVar(&cfg.FixturesDir, "fixtures-dir", defaults.FixturesDir, "directory receiving <gate>.json")
	flag.StringVar(&cfg.Gate, "gate", defaults.Gate, "fixture gate name")
	flag.StringVar(&cfg.DBPath, "db", defaults.DBPath, "optional bbolt vector store to record the fixture into")
	flag.StringVar(&cfg.LogLevel, "log-level", defaults.LogLevel, "log level: debug|info|warn|error")
	dryRun := flag.Bool("dry-run", false, "print effective config and exit")
	flag.Parse()

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Gate = strings.TrimSpace(cfg.Gate)
	if err := conformance.ValidateConfig(cfg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(2)
	}
	if *dryRun {
		if err := printConfig(os.Stdout, cfg); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "config encode failed: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := generate(cfg, newLogger(os.Stderr, cfg.LogLevel)); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "generate failed: %v\n", err)
		os.Exit(1)
	}
}

func printConfig(w io.Writer, cfg conformance.Config) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}
