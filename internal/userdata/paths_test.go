package userdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetRoot_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORY_TOOLS_HOME", dir)

	got, err := GetRoot()
	if err != nil {
		t.Fatalf("GetRoot failed: %v", err)
	}
	if got != dir {
		t.Errorf("GetRoot() = %q, want %q", got, dir)
	}
}

func TestGetRoot_Default(t *testing.T) {
	home := t.TempDir()
	t.Setenv("STORY_TOOLS_HOME", "")
	t.Setenv("HOME", home)

	got, err := GetRoot()
	if err != nil {
		t.Fatalf("GetRoot failed: %v", err)
	}
	if !strings.HasSuffix(got, ".story-tools") {
		t.Errorf("GetRoot() = %q, expected .story-tools suffix", got)
	}
}

func TestLayoutPaths(t *testing.T) {
	l := Layout{Root: "/root/.story-tools"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"apps", l.AppsDir(), filepath.Join("/root/.story-tools", "apps")},
		{"record", l.RecordPath(), filepath.Join("/root/.story-tools", "config.json")},
		{"settings", l.SettingsPath(), filepath.Join("/root/.story-tools", "settings.yaml")},
		{"bundle", l.AppPath("Tool.app"), filepath.Join("/root/.story-tools", "apps", "Tool.app")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestEnsureDirs(t *testing.T) {
	l := Layout{Root: filepath.Join(t.TempDir(), "root")}
	if err := l.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	info, err := os.Stat(l.AppsDir())
	if err != nil || !info.IsDir() {
		t.Fatalf("apps dir not created: %v", err)
	}
}

func TestBundleExists(t *testing.T) {
	l := Layout{Root: t.TempDir()}
	if l.BundleExists("Tool.app") {
		t.Error("BundleExists reported a missing bundle")
	}
	if err := os.MkdirAll(l.AppPath("Tool.app"), 0755); err != nil {
		t.Fatal(err)
	}
	if !l.BundleExists("Tool.app") {
		t.Error("BundleExists missed an existing bundle")
	}
}
