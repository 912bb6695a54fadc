package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/story-labs/launcher/internal/branding"
)

// Directory and file names under the launcher root.
const (
	AppsDir      = "apps"
	RecordFile   = "config.json"
	SettingsFile = "settings.yaml"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// Layout resolves every launcher path from a single root directory.
type Layout struct {
	Root string
}

// GetRoot returns the launcher root directory.
// It checks the STORY_TOOLS_HOME environment variable first,
// then falls back to ~/.story-tools.
func GetRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// DefaultLayout returns the layout rooted at GetRoot.
func DefaultLayout() (Layout, error) {
	root, err := GetRoot()
	if err != nil {
		return Layout{}, err
	}
	return Layout{Root: root}, nil
}

// AppsDir returns the directory holding one installed bundle per tool.
func (l Layout) AppsDir() string {
	return filepath.Join(l.Root, AppsDir)
}

// RecordPath returns the installed-version record file.
func (l Layout) RecordPath() string {
	return filepath.Join(l.Root, RecordFile)
}

// SettingsPath returns the user settings file.
func (l Layout) SettingsPath() string {
	return filepath.Join(l.Root, SettingsFile)
}

// AppPath returns where the bundle named appName is installed.
func (l Layout) AppPath(appName string) string {
	return filepath.Join(l.AppsDir(), appName)
}

// EnsureDirs creates the root and apps directories if missing.
func (l Layout) EnsureDirs() error {
	dir := l.AppsDir()
	if err := os.MkdirAll(dir, DirPermNormal); err != nil {
		return fmt.Errorf("creating apps directory %s: %w", dir, err)
	}
	return nil
}

// BundleExists reports whether the bundle directory for appName is present.
func (l Layout) BundleExists(appName string) bool {
	_, err := os.Stat(l.AppPath(appName))
	return err == nil
}
