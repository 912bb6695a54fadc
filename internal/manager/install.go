package manager

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/story-labs/launcher/internal/archive"
	"github.com/story-labs/launcher/internal/platform"
	"github.com/story-labs/launcher/internal/record"
	"github.com/story-labs/launcher/internal/tools"
	"github.com/story-labs/launcher/internal/updater"
)

// Install fetches the latest release of id and installs it, replacing any
// existing bundle. It returns the installed version with leading "v"
// characters removed. Installs of the same tool are serialized.
func (m *Manager) Install(ctx context.Context, id tools.ID) (string, error) {
	d, ok := id.Descriptor()
	if !ok {
		return "", tools.ErrUnknownTool
	}
	defer m.lock(id)()

	log := m.logger.With("tool", d.Key)
	fail := func(stage Stage, err error) error {
		log.Debug("install failed", "stage", stage.String(), "err", err)
		return &StageError{Tool: d.Key, Stage: stage, Err: err}
	}

	log.Debug("install started", "stage", StagePreparing.String())
	if err := m.layout.EnsureDirs(); err != nil {
		return "", fail(StagePreparing, err)
	}

	release, err := m.source.LatestRelease(ctx, d.Repository)
	if err != nil {
		return "", fail(StageResolving, err)
	}

	asset, ok := updater.SelectAsset(release)
	if !ok {
		return "", fail(StageSelecting, ErrNoCompatibleAsset)
	}
	format, _ := archive.FormatFor(asset.Name)

	tmp := filepath.Join(m.tempDir, filepath.Base(asset.Name))
	defer m.removeTemp(tmp)

	log.Info("downloading", "asset", asset.Name, "version", release.Version())
	if err := m.source.Download(ctx, asset.DownloadURL, tmp, m.progress); err != nil {
		return "", fail(StageDownloading, err)
	}

	if m.verify {
		if _, ok := release.FindAsset(updater.ChecksumsAsset); ok {
			if err := m.source.VerifyChecksum(ctx, release, asset.Name, tmp); err != nil {
				return "", fail(StageVerifying, err)
			}
		}
	}

	bundle := m.layout.AppPath(d.AppName)
	if _, err := os.Stat(bundle); err == nil {
		log.Debug("removing existing bundle", "path", bundle)
		if err := os.RemoveAll(bundle); err != nil {
			return "", fail(StageRemovingOld, err)
		}
	}

	if err := m.extractor.Extract(ctx, format, tmp, m.layout.AppsDir(), d.AppName); err != nil {
		return "", fail(StageExtracting, err)
	}
	m.removeTemp(tmp)

	if platform.EnforcesProvenance(m.goos) {
		platform.ClearProvenance(ctx, m.runner, log, bundle)
	}

	version := release.Version()
	err = m.store.Update(func(r *record.Record) {
		r.Set(d.Key, version)
	})
	if err != nil {
		return "", fail(StagePersisting, err)
	}

	log.Info("installed", "version", version, "path", bundle)
	return version, nil
}

// Update reinstalls id from its latest release. It is the same procedure as
// Install.
func (m *Manager) Update(ctx context.Context, id tools.ID) (string, error) {
	return m.Install(ctx, id)
}

func (m *Manager) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		m.logger.Warn("removing temporary download failed", "path", path, "err", err)
	}
}
