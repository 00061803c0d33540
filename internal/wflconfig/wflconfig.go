// Package wflconfig loads the driver's `.wflcfg` file: a handful of
// line-oriented `key = value` scalars consumed by the core pipeline
// (spec.md §6). Unknown keys are ignored, not rejected, so a config
// file shared across tool versions never breaks an older one.
package wflconfig

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// GlobalConfigPathEnv names the environment variable that overrides
// the default `.wflcfg` lookup location.
const GlobalConfigPathEnv = "WFL_GLOBAL_CONFIG_PATH"

// Config holds the five scalar keys spec.md §6 names. Unrecognised
// keys in the file are skipped rather than surfaced here.
type Config struct {
	TimeoutSeconds    int
	LogLevel          string
	DebugReportEnabled bool
	DebugFullReport   bool
	MaxMemoryMB       int
}

// Default returns the configuration a bare driver run starts from
// before any `.wflcfg` is loaded.
func Default() Config {
	return Config{
		TimeoutSeconds:     60,
		LogLevel:           "warning",
		DebugReportEnabled: false,
		DebugFullReport:    false,
		MaxMemoryMB:        512,
	}
}

// Load reads path, applying recognised keys on top of Default(). A
// missing file is not an error — the default configuration is
// returned as-is, since `.wflcfg` is optional.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Annotatef(err, "opening config file %q", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, errors.Errorf("%s:%d: expected 'key = value', got %q", path, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if err := cfg.apply(key, value); err != nil {
			return cfg, errors.Annotatef(err, "%s:%d", path, lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, errors.Annotatef(err, "reading config file %q", path)
	}
	return cfg, nil
}

func (c *Config) apply(key, value string) error {
	switch key {
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Annotatef(err, "timeout_seconds %q", value)
		}
		c.TimeoutSeconds = n
	case "log_level":
		c.LogLevel = value
	case "debug_report_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Annotatef(err, "debug_report_enabled %q", value)
		}
		c.DebugReportEnabled = b
	case "debug_full_report":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Annotatef(err, "debug_full_report %q", value)
		}
		c.DebugFullReport = b
	case "max_memory_mb":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Annotatef(err, "max_memory_mb %q", value)
		}
		c.MaxMemoryMB = n
	default:
		// unknown keys are ignored by the core (spec.md §6)
	}
	return nil
}

// ResolvePath returns the config file path a driver should load:
// the WFL_GLOBAL_CONFIG_PATH override if set, else the default
// filename in the current directory.
func ResolvePath() string {
	if p := os.Getenv(GlobalConfigPathEnv); p != "" {
		return p
	}
	return ".wflcfg"
}
