package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AppName names the config and data directories
const AppName = "kanri"

// Paths holds the directories kanri reads and writes
type Paths struct {
	ConfigDir string
	DataDir   string
}

// DefaultPaths resolves the platform directories. KANRI_CONFIG_DIR and
// KANRI_DATA_DIR override them.
func DefaultPaths() (Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("user config dir: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("user home dir: %w", err)
	}

	env := map[string]string{
		"XDG_CONFIG_HOME":  os.Getenv("XDG_CONFIG_HOME"),
		"XDG_DATA_HOME":    os.Getenv("XDG_DATA_HOME"),
		"LOCALAPPDATA":     os.Getenv("LOCALAPPDATA"),
		"KANRI_CONFIG_DIR": os.Getenv("KANRI_CONFIG_DIR"),
		"KANRI_DATA_DIR":   os.Getenv("KANRI_DATA_DIR"),
	}
	return PathsFor(runtime.GOOS, env, configDir, home)
}

// PathsFor resolves directories for a platform from its environment
func PathsFor(goos string, env map[string]string, userConfigDir, home string) (Paths, error) {
	if userConfigDir == "" || home == "" {
		return Paths{}, fmt.Errorf("empty base dirs")
	}

	p := Paths{
		ConfigDir: filepath.Join(userConfigDir, AppName),
		DataDir:   filepath.Join(userConfigDir, AppName),
	}
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		if v := strings.TrimSpace(env["XDG_CONFIG_HOME"]); v != "" {
			p.ConfigDir = filepath.Join(v, AppName)
		}
		p.DataDir = filepath.Join(home, ".local", "share", AppName)
		if v := strings.TrimSpace(env["XDG_DATA_HOME"]); v != "" {
			p.DataDir = filepath.Join(v, AppName)
		}
	case "windows":
		if v := strings.TrimSpace(env["LOCALAPPDATA"]); v != "" {
			p.DataDir = filepath.Join(v, AppName)
		}
	}

	if v := strings.TrimSpace(env["KANRI_CONFIG_DIR"]); v != "" {
		p.ConfigDir = v
	}
	if v := strings.TrimSpace(env["KANRI_DATA_DIR"]); v != "" {
		p.DataDir = v
	}
	return p, nil
}

// DBPath returns the database file for a profile
func (p Paths) DBPath(profile Profile) string {
	return filepath.Join(p.DataDir, profile.DBFile)
}

// LogPath returns the log file for a profile
func (p Paths) LogPath(profile Profile) string {
	return filepath.Join(p.DataDir, profile.LogFile)
}

// LockPath returns the single-instance lock file for a profile
func (p Paths) LockPath(profile Profile) string {
	return filepath.Join(p.DataDir, profile.Name+".lock")
}
