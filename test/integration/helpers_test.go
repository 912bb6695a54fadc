//go:build integration

package integration_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/story-labs/launcher/internal/manager"
	"github.com/story-labs/launcher/internal/updater"
	"github.com/story-labs/launcher/internal/userdata"
)

const (
	repo    = "joyrider00/spellbook-resolve-sync"
	appName = "Spellbook Resolve Sync.app"
)

// testEnv holds an isolated launcher root and a fake release registry.
type testEnv struct {
	Layout   userdata.Layout
	Registry *registry
	Runner   *recordingRunner
	Commands *manager.Commands
}

// setupTestEnv creates an isolated root via STORY_TOOLS_HOME and wires a
// Commands surface to a fake registry. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("STORY_TOOLS_HOME", t.TempDir())
	layout, err := userdata.DefaultLayout()
	if err != nil {
		t.Fatalf("DefaultLayout: %v", err)
	}

	reg := newRegistry(t)
	runner := &recordingRunner{}
	client := updater.New(
		updater.WithHTTPClient(reg.server.Client()),
		updater.WithBaseURL(reg.server.URL),
	)
	m := manager.New(layout,
		manager.WithReleaseSource(client),
		manager.WithRunner(runner),
		manager.WithGOOS("darwin"),
		manager.WithTempDir(t.TempDir()),
	)

	return &testEnv{
		Layout:   layout,
		Registry: reg,
		Runner:   runner,
		Commands: manager.NewCommands(m),
	}
}

// registry serves the latest release of repo and its assets.
type registry struct {
	server *httptest.Server

	mu        sync.Mutex
	release   updater.Release
	files     map[string][]byte
	downloads int
}

func newRegistry(t *testing.T) *registry {
	t.Helper()
	r := &registry{files: make(map[string][]byte)}
	r.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.mu.Lock()
		defer r.mu.Unlock()

		if req.URL.Path == "/repos/"+repo+"/releases/latest" {
			if r.release.TagName == "" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(r.release)
			return
		}
		if name, ok := strings.CutPrefix(req.URL.Path, "/assets/"); ok {
			if data, ok := r.files[name]; ok {
				r.downloads++
				w.Write(data)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(r.server.Close)
	return r
}

// publish makes tag the latest release with the given assets, in order.
func (r *registry) publish(tag string, names []string, files map[string][]byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.release = updater.Release{TagName: tag}
	for _, n := range names {
		r.release.Assets = append(r.release.Assets, updater.Asset{
			Name:        n,
			DownloadURL: r.server.URL + "/assets/" + n,
		})
	}
	r.files = files
}

func (r *registry) downloadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.downloads
}

// recordingRunner stands in for hdiutil, cp, xattr and open.
type recordingRunner struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.record(name, args)
	return nil, nil
}

func (r *recordingRunner) Start(name string, args ...string) error {
	r.record(name, args)
	return nil
}

func (r *recordingRunner) record(name string, args []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
}

func (r *recordingRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// bundleArchive builds a tar.gz holding an app bundle whose version.txt
// contains marker.
func bundleArchive(t *testing.T, marker string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	for name, body := range map[string]string{
		appName + "/Contents/Info.plist":  "<plist/>",
		appName + "/Contents/version.txt": marker,
	} {
		if err := tw.WriteHeader(&tar.Header{Name: name, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	tw.Close()
	gw.Close()
	return buf.Bytes()
}

// assertFileExists fails the test if path does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

// assertFileNotExists fails the test if path exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected %s not to exist", path)
	}
}

// assertFileContains fails the test if the file does not contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s does not contain %q:\n%s", path, substr, data)
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
