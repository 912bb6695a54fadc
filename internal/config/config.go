package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/story-labs/launcher/internal/branding"
)

const fileType = "yaml"

// Setting keys.
const (
	KeyRegistryURL     = "registry.url"
	KeyRegistryToken   = "registry.token"
	KeyUserAgent       = "user_agent"
	KeyVerifyChecksums = "verify_checksums"
	KeyLogLevel        = "log_level"
)

// DefaultRegistryURL is the release registry API base.
const DefaultRegistryURL = "https://api.github.com"

var defaults = map[string]any{
	KeyRegistryURL:     DefaultRegistryURL,
	KeyRegistryToken:   "",
	KeyUserAgent:       branding.ClientID(),
	KeyVerifyChecksums: true,
	KeyLogLevel:        "warn",
}

var filePath string

// Settings is a typed snapshot of the effective configuration.
type Settings struct {
	RegistryURL     string
	RegistryToken   string
	UserAgent       string
	VerifyChecksums bool
	LogLevel        string
}

// Load initializes Viper to read from the settings file at path and from
// STORY_TOOLS_* environment variables. A missing file is not an error.
func Load(path string) error {
	filePath = path

	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	_ = viper.BindEnv(KeyRegistryToken, branding.EnvVar("REGISTRY_TOKEN"), "GITHUB_TOKEN")

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading settings %s: %w", path, err)
	}
	return nil
}

// FilePath returns the settings file passed to Load.
func FilePath() string {
	return filePath
}

// Current returns the effective settings.
func Current() Settings {
	return Settings{
		RegistryURL:     viper.GetString(KeyRegistryURL),
		RegistryToken:   viper.GetString(KeyRegistryToken),
		UserAgent:       viper.GetString(KeyUserAgent),
		VerifyChecksums: viper.GetBool(KeyVerifyChecksums),
		LogLevel:        viper.GetString(KeyLogLevel),
	}
}

// Keys returns every known setting key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key is a known setting.
func IsKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the settings file.
func Set(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if filePath == "" {
		return fmt.Errorf("settings not loaded")
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	// File-only instance: values from the environment must not be persisted.
	file := viper.New()
	file.SetConfigFile(filePath)
	file.SetConfigType(fileType)
	if _, err := os.Stat(filePath); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading settings %s: %w", filePath, err)
		}
	}
	file.Set(key, value)

	if err := file.WriteConfigAs(filePath); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	viper.Set(key, value)
	return nil
}
