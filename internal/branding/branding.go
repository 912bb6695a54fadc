// Package branding provides compile-time identity values for the launcher.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a rebrand is a yaml edit followed by a rebuild.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	ClientID    string `yaml:"client_id"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "story-launcher",
			DisplayName: "Story Launcher",
			Description: "Installs and updates Story desktop tools",
			HomeDir:     ".story-tools",
			EnvPrefix:   "STORY_TOOLS",
			ClientID:    "Story-Launcher/1.0",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "story-launcher").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".story-tools").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "STORY_TOOLS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ClientID returns the identifier sent as User-Agent to the release registry.
func ClientID() string { load(); return defaults.ClientID }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "STORY_TOOLS_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
