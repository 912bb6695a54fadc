package manager

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/story-labs/launcher/internal/archive"
	"github.com/story-labs/launcher/internal/platform"
	"github.com/story-labs/launcher/internal/record"
	"github.com/story-labs/launcher/internal/tools"
	"github.com/story-labs/launcher/internal/updater"
	"github.com/story-labs/launcher/internal/userdata"
)

// ReleaseSource resolves and fetches releases. *updater.Client implements it.
type ReleaseSource interface {
	LatestRelease(ctx context.Context, repo string) (*updater.Release, error)
	Download(ctx context.Context, url, dest string, progress updater.ProgressFunc) error
	VerifyChecksum(ctx context.Context, release *updater.Release, assetName, archivePath string) error
}

// Manager installs and inspects tools under one launcher layout.
type Manager struct {
	layout    userdata.Layout
	store     *record.Store
	source    ReleaseSource
	extractor *archive.Extractor
	runner    platform.Runner
	logger    *slog.Logger
	goos      string
	tempDir   string
	progress  updater.ProgressFunc
	verify    bool

	locks map[tools.ID]*sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithReleaseSource sets where releases are resolved and downloaded from.
func WithReleaseSource(s ReleaseSource) Option {
	return func(m *Manager) {
		m.source = s
	}
}

// WithRunner sets the runner for external commands (hdiutil, cp, xattr, opener).
func WithRunner(r platform.Runner) Option {
	return func(m *Manager) {
		m.runner = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithGOOS overrides the target operating system (useful for testing).
func WithGOOS(goos string) Option {
	return func(m *Manager) {
		m.goos = goos
	}
}

// WithTempDir sets where archives are downloaded before extraction.
func WithTempDir(dir string) Option {
	return func(m *Manager) {
		m.tempDir = dir
	}
}

// WithProgress sets a callback for download progress.
func WithProgress(fn updater.ProgressFunc) Option {
	return func(m *Manager) {
		m.progress = fn
	}
}

// WithChecksums enables or disables checksums.txt verification.
func WithChecksums(verify bool) Option {
	return func(m *Manager) {
		m.verify = verify
	}
}

// New creates a Manager for layout.
func New(layout userdata.Layout, opts ...Option) *Manager {
	m := &Manager{
		layout:  layout,
		runner:  platform.ExecRunner{},
		logger:  slog.New(slog.DiscardHandler),
		goos:    runtime.GOOS,
		tempDir: os.TempDir(),
		verify:  true,
		locks:   make(map[tools.ID]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.source == nil {
		m.source = updater.New(updater.WithLogger(m.logger))
	}
	m.store = record.NewStore(layout.RecordPath(), record.WithLogger(m.logger))
	m.extractor = archive.New(archive.WithRunner(m.runner), archive.WithLogger(m.logger))
	for _, d := range tools.All() {
		m.locks[d.ID] = &sync.Mutex{}
	}
	return m
}

// Layout returns the directory layout the manager works in.
func (m *Manager) Layout() userdata.Layout {
	return m.layout
}

func (m *Manager) lock(id tools.ID) func() {
	mu := m.locks[id]
	mu.Lock()
	return mu.Unlock
}
