package manager

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/story-labs/launcher/internal/tools"
	"github.com/story-labs/launcher/internal/updater"
	"github.com/story-labs/launcher/internal/userdata"
)

const (
	testRepo = "joyrider00/spellbook-resolve-sync"
	testApp  = "Spellbook Resolve Sync.app"
)

// fakeRegistry serves a single repository's latest release plus its assets.
type fakeRegistry struct {
	server *httptest.Server

	mu         sync.Mutex
	tag        string
	assets     map[string][]byte
	order      []string
	status     int
	downloaded []string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func newFakeRegistry(t *testing.T) *fakeRegistry {
	t.Helper()
	r := &fakeRegistry{assets: make(map[string][]byte), status: http.StatusOK}
	r.server = httptest.NewServer(http.HandlerFunc(r.handle))
	t.Cleanup(r.server.Close)
	return r
}

// publish replaces the latest release.
func (r *fakeRegistry) publish(tag string, assets map[string][]byte, order ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tag = tag
	r.assets = assets
	r.order = order
}

func (r *fakeRegistry) setStatus(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = code
}

func (r *fakeRegistry) downloads() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.downloaded...)
}

func (r *fakeRegistry) handle(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path == "/repos/"+testRepo+"/releases/latest" {
		r.mu.Lock()
		status := r.status
		rel := updater.Release{TagName: r.tag}
		for _, name := range r.order {
			rel.Assets = append(rel.Assets, updater.Asset{
				Name:        name,
				DownloadURL: r.server.URL + "/download/" + name,
			})
		}
		r.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		json.NewEncoder(w).Encode(rel)
		return
	}

	if name, ok := strings.CutPrefix(req.URL.Path, "/download/"); ok {
		n := r.inFlight.Add(1)
		defer r.inFlight.Add(-1)
		for {
			m := r.maxInFlight.Load()
			if n <= m || r.maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(r.delay)

		r.mu.Lock()
		data, ok := r.assets[name]
		r.downloaded = append(r.downloaded, name)
		r.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(data)
		return
	}

	w.WriteHeader(http.StatusNotFound)
}

type call struct {
	name string
	args []string
}

// fakeRunner records every command and never touches the system.
type fakeRunner struct {
	mu       sync.Mutex
	calls    []call
	output   map[string][]byte
	startErr error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{name, args})
	key := name
	if len(args) > 0 {
		key += " " + args[0]
	}
	return f.output[key], nil
}

func (f *fakeRunner) Start(name string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{name, args})
	return f.startErr
}

func (f *fakeRunner) called(name string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// bundleTarGz builds an archive holding a minimal app bundle.
func bundleTarGz(t *testing.T, appName, marker string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	files := map[string]string{
		appName + "/Contents/Info.plist":  "<plist/>",
		appName + "/Contents/MacOS/tool":  "#!/bin/sh",
		appName + "/Contents/version.txt": marker,
	}
	for _, name := range []string{appName + "/Contents/Info.plist", appName + "/Contents/MacOS/tool", appName + "/Contents/version.txt"} {
		body := files[name]
		hdr := &tar.Header{Name: name, Mode: 0755, Size: int64(len(body)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
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

type testEnv struct {
	reg     *fakeRegistry
	runner  *fakeRunner
	layout  userdata.Layout
	tempDir string
	m       *Manager
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		reg:     newFakeRegistry(t),
		runner:  &fakeRunner{output: make(map[string][]byte)},
		layout:  userdata.Layout{Root: filepath.Join(t.TempDir(), ".story-tools")},
		tempDir: t.TempDir(),
	}
	client := updater.New(
		updater.WithHTTPClient(env.reg.server.Client()),
		updater.WithBaseURL(env.reg.server.URL),
	)
	base := []Option{
		WithReleaseSource(client),
		WithRunner(env.runner),
		WithGOOS("darwin"),
		WithTempDir(env.tempDir),
	}
	env.m = New(env.layout, append(base, opts...)...)
	return env
}

// publishTarGz publishes tag with a single tar.gz bundle asset.
func (e *testEnv) publishTarGz(t *testing.T, tag string) {
	t.Helper()
	name := "Spellbook.Resolve.Sync.app.tar.gz"
	e.reg.publish(tag, map[string][]byte{name: bundleTarGz(t, testApp, tag)}, name)
}

// installedMarker reads the version marker inside the installed bundle.
func (e *testEnv) installedMarker(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.layout.AppPath(testApp), "Contents", "version.txt"))
	if err != nil {
		t.Fatalf("reading bundle marker: %v", err)
	}
	return string(data)
}

func (e *testEnv) writeRecord(t *testing.T, content string) {
	t.Helper()
	if err := os.MkdirAll(e.layout.Root, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(e.layout.RecordPath(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func (e *testEnv) makeBundle(t *testing.T) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(e.layout.AppPath(testApp), "Contents"), 0755); err != nil {
		t.Fatal(err)
	}
}

func (e *testEnv) tempEntries(t *testing.T) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(e.tempDir)
	if err != nil {
		t.Fatal(err)
	}
	return entries
}

var resolveSync = tools.ResolveSync
