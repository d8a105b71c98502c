package conformance

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Config drives fixture generation. DBPath is optional; when set the
// fixture is also recorded into a vector store.
type Config struct {
	FixturesDir string `json:"fixtures_dir"`
	Gate        string `json:"gate"`
	DBPath      string `json:"db_path"`
	LogLevel    string `json:"log_level"`
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

func DefaultConfig() Config {
	return Config{
		FixturesDir: filepath.Join("conformance", "fixtures"),
		Gate:        DefaultGate,
		DBPath:      "",
		LogLevel:    "info",
	}
}

func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.FixturesDir) == "" {
		return errors.New("fixtures_dir is required")
	}
	gate := strings.TrimSpace(cfg.Gate)
	if gate == "" {
		return errors.New("gate is required")
	}
	if strings.ContainsAny(gate, `/\`) || gate == "." || gate == ".." {
		return fmt.Errorf("invalid gate %q", cfg.Gate)
	}
	if cfg.DBPath != "" && strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("db_path is blank")
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	return nil
}
