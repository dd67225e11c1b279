// Package paths resolves configuration and data directory locations for the
// shadowcopy CLI. Environment reads go through the envq resolver so the CLI
// and the library see the environment through the same query path.
package paths

import (
	"path/filepath"
	"runtime"

	"github.com/mesh-intelligence/shadowcopy/pkg/envq"
)

// DefaultDataDirName is the CWD-relative data directory used when no
// override is active.
const DefaultDataDirName = ".shadowcopy-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SHADOWCOPY_CONFIG_DIR"
	EnvDataDir   = "SHADOWCOPY_DATA_DIR"
)

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/shadowcopy (fallback ~/.config/shadowcopy)
// macOS:   ~/Library/Application Support/shadowcopy
// Windows: %APPDATA%/shadowcopy
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg, ok, err := envq.LookupVariable("XDG_CONFIG_HOME"); err != nil {
			return "", err
		} else if ok {
			return filepath.Join(xdg, "shadowcopy"), nil
		}
		home, err := homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "shadowcopy"), nil
	case "windows":
		appData, err := envq.ExpandTemplate("%APPDATA%")
		if err != nil {
			return "", err
		}
		return filepath.Join(appData, "shadowcopy"), nil
	default:
		home, err := homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "shadowcopy"), nil
	}
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/shadowcopy (fallback ~/.local/share/shadowcopy)
// macOS and Windows: same as the config directory.
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg, ok, err := envq.LookupVariable("XDG_DATA_HOME"); err != nil {
			return "", err
		} else if ok {
			return filepath.Join(xdg, "shadowcopy"), nil
		}
		home, err := homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "shadowcopy"), nil
	default:
		return DefaultConfigDir()
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SHADOWCOPY_CONFIG_DIR > platform default.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env, ok, err := envq.LookupVariable(EnvConfigDir); err != nil {
		return "", err
	} else if ok {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config value > SHADOWCOPY_DATA_DIR > $(CWD)/.shadowcopy-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env, ok, err := envq.LookupVariable(EnvDataDir); err != nil {
		return "", err
	} else if ok {
		return filepath.Abs(env)
	}
	cwd, err := envq.CurrentDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

func homeDir() (string, error) {
	home, ok, err := envq.LookupVariable("HOME")
	if err != nil {
		return "", err
	}
	if ok {
		return home, nil
	}
	// Fall back to the current directory rather than guessing a profile
	// path; an unset HOME is a broken environment either way.
	return envq.CurrentDirectory()
}
