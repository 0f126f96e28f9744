// Package paths resolves configuration, data and catalog locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-user directory name under the platform roots.
const appDirName = "curate"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CURATE_CONFIG_DIR"
	EnvDataDir   = "CURATE_DATA_DIR"
	EnvCatalog   = "CURATE_CATALOG"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/curate (fallback ~/.config/curate)
// macOS:   ~/Library/Application Support/curate
// Windows: %APPDATA%/curate
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/curate (fallback ~/.local/share/curate)
// macOS and Windows: same as the config directory.
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

func xdgDir(env, homeFallback string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeFallback, appDirName), nil
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > CURATE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > CURATE_DATA_DIR env > DefaultDataDir().
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}

// ResolveCatalogPath returns the catalog file to load, or "" for the
// embedded catalog. Precedence: flag > CURATE_CATALOG env > configYAMLValue.
// A relative config value is taken relative to configDir, so a config.yaml
// can ship next to its catalog.
func ResolveCatalogPath(flag, configYAMLValue, configDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvCatalog); env != "" {
		return filepath.Abs(env)
	}
	if configYAMLValue == "" {
		return "", nil
	}
	if filepath.IsAbs(configYAMLValue) {
		return configYAMLValue, nil
	}
	return filepath.Join(configDir, configYAMLValue), nil
}
