package casetree

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
	"golang.org/x/sys/unix"
)

// Defaults substituted for optional keys. Required keys (the input
// CSVs, the work root, the copy-source roots) have no defaults and
// are fatal at startup when missing: a path the run mutates or reads
// from must be stated explicitly, a name or report location may fall
// back.
const (
	DefaultFolder1      = "Homepage"
	DefaultFolder2      = "Individual Gate"
	DefaultMainErrCSV   = "errors_main.csv"
	DefaultNestedErrCSV = "errors_nested.csv"
	DefaultVerifyErrCSV = "errors_verify.csv"
	DefaultLogFile      = "debug.log"
	DefaultLogLevel     = "info"
)

// Config holds the resolved batch-run configuration
type Config struct {
	// Input CSVs. VerifyCSV is optional; empty disables the
	// existence-check pass.
	MainCSV   string
	NestedCSV string
	VerifyCSV string

	// Error CSVs, one per stage, truncated fresh each run
	MainErrCSV   string
	NestedErrCSV string
	VerifyErrCSV string

	// WorkRoot is the root of the materialized tree
	WorkRoot string

	// Copy-source roots searched for identifier / sub-identifier
	// folders.
	SourceMain   string
	SourceNested string

	// Per-identifier subfolder names
	Folder1 string
	Folder2 string

	LogFile  string
	LogLevel string
}

// LoadConfig loads and validates the INI configuration at path.
// Any missing required key, or a required path that does not exist,
// is an error; nothing downstream runs after a failure here.
func LoadConfig(path string) (*Config, error) {
	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	cfg := &Config{
		Folder1:      DefaultFolder1,
		Folder2:      DefaultFolder2,
		MainErrCSV:   DefaultMainErrCSV,
		NestedErrCSV: DefaultNestedErrCSV,
		VerifyErrCSV: DefaultVerifyErrCSV,
		LogFile:      DefaultLogFile,
		LogLevel:     DefaultLogLevel,
	}

	if cfg.MainCSV, err = requiredPath(iniFile, "csv_pathsfiles", "path_main"); err != nil {
		return nil, err
	}
	if cfg.NestedCSV, err = requiredPath(iniFile, "csv_pathsfiles", "path_nested"); err != nil {
		return nil, err
	}
	// The verification CSV is an optional third input
	if v, ok := lookupKey(iniFile, "csv_pathsfiles", "path_verify"); ok {
		abs, err := filepath.Abs(v)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path_verify: %w", err)
		}
		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("verification CSV %s does not exist: %w", abs, err)
		}
		cfg.VerifyCSV = abs
	}

	if cfg.WorkRoot, err = requiredPath(iniFile, "target", "path"); err != nil {
		return nil, err
	}
	if cfg.SourceMain, err = requiredPath(iniFile, "sources", "path_main"); err != nil {
		return nil, err
	}
	if cfg.SourceNested, err = requiredPath(iniFile, "sources", "path_nested"); err != nil {
		return nil, err
	}

	applyOptional(iniFile, "csv_errorfiles", "path_main", &cfg.MainErrCSV)
	applyOptional(iniFile, "csv_errorfiles", "path_nested", &cfg.NestedErrCSV)
	applyOptional(iniFile, "csv_errorfiles", "path_verify", &cfg.VerifyErrCSV)
	applyOptional(iniFile, "subdir", "folder1", &cfg.Folder1)
	applyOptional(iniFile, "subdir", "folder2", &cfg.Folder2)
	applyOptional(iniFile, "log", "file", &cfg.LogFile)
	applyOptional(iniFile, "log", "level", &cfg.LogLevel)

	if err := cfg.preflight(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// lookupKey returns the key value if both section and key exist
func lookupKey(f *ini.File, section, key string) (string, bool) {
	if !f.HasSection(section) {
		return "", false
	}
	s := f.Section(section)
	if !s.HasKey(key) {
		return "", false
	}
	v := s.Key(key).String()
	if v == "" {
		return "", false
	}
	return v, true
}

// requiredPath loads a mandatory key and requires the path to exist
func requiredPath(f *ini.File, section, key string) (string, error) {
	v, ok := lookupKey(f, section, key)
	if !ok {
		return "", fmt.Errorf("could not load section %s, key %s from config file", section, key)
	}
	abs, err := filepath.Abs(v)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s.%s: %w", section, key, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("path specified under section %s, key %s (%s) does not exist: %w", section, key, abs, err)
	}
	return abs, nil
}

func applyOptional(f *ini.File, section, key string, dst *string) {
	if v, ok := lookupKey(f, section, key); ok {
		*dst = v
	}
}

// preflight checks filesystem access up front so a run that cannot
// write its tree fails before the first row, not in the middle.
func (c *Config) preflight() error {
	if err := unix.Access(c.WorkRoot, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("work root %s is not writable: %w", c.WorkRoot, err)
	}
	for _, src := range []string{c.SourceMain, c.SourceNested} {
		if err := unix.Access(src, unix.R_OK|unix.X_OK); err != nil {
			return fmt.Errorf("copy-source root %s is not readable: %w", src, err)
		}
	}
	return nil
}
