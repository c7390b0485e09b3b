package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// ConfigName is the config file base name; viper tries each supported
	// extension (yaml, json, toml, ...).
	ConfigName = "nepse-analyst"
	// DotEnvFile is read from the working directory when present.
	DotEnvFile = ".env"
)

// ConfigDir returns the per-user config directory, or "" when the platform
// has none.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, ConfigName)
}

// SearchPaths lists the directories searched for the config file, in order.
func SearchPaths() []string {
	paths := []string{"."}
	if dir := ConfigDir(); dir != "" {
		paths = append(paths, dir)
	}
	return paths
}

// LoadDotEnv exports the variables in path that are not already set. A
// missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ResolveDataPath resolves a relative data path by walking up from the
// working directory until a directory containing it is found, so the client
// can be started from anywhere inside the project. Absolute paths are
// returned unchanged. When nothing matches the path is resolved against the
// working directory.
func ResolveDataPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	dir, err := os.Getwd()
	if err != nil {
		return p
	}
	start := dir

	for {
		candidate := filepath.Join(dir, p)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Join(start, p)
		}
		dir = parent
	}
}
