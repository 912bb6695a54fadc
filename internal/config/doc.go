// Package config manages user-level settings stored at
// ~/.story-tools/settings.yaml. Values can be overridden with STORY_TOOLS_*
// environment variables, e.g. STORY_TOOLS_REGISTRY_URL points the launcher
// at a release mirror.
package config
