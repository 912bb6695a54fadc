package manager

import (
	"context"

	"github.com/story-labs/launcher/internal/tools"
	"github.com/story-labs/launcher/internal/updater"
)

// ToolStatus is the installation state of one tool compared with its latest
// release.
type ToolStatus struct {
	Installed        bool               `json:"installed"`
	InstalledVersion *string            `json:"installed_version"`
	LatestVersion    *string            `json:"latest_version"`
	HasUpdate        bool               `json:"has_update"`
	UpdateKind       updater.UpdateKind `json:"update_kind,omitempty"`
	Error            *string            `json:"error"`
}

// Overview is the status of every known tool.
type Overview struct {
	Tools      map[string]ToolStatus `json:"tools"`
	HasUpdates bool                  `json:"has_updates"`
}

// Status reports whether id is installed and whether its latest release
// differs from the recorded version. It never mutates state. A registry
// failure is carried in the Error field with LatestVersion unset.
func (m *Manager) Status(ctx context.Context, id tools.ID) ToolStatus {
	d, ok := id.Descriptor()
	if !ok {
		return errorStatus("Unknown tool")
	}

	var st ToolStatus
	if v, ok := m.store.Load().Version(d.Key); ok {
		st.InstalledVersion = &v
		st.Installed = m.layout.BundleExists(d.AppName)
	}

	release, err := m.source.LatestRelease(ctx, d.Repository)
	if err != nil {
		m.logger.Debug("status check failed", "tool", d.Key, "err", err)
		msg := err.Error()
		st.Error = &msg
		return st
	}

	latest := release.Version()
	st.LatestVersion = &latest
	st.HasUpdate = st.Installed && st.InstalledVersion != nil && *st.InstalledVersion != latest
	if st.HasUpdate {
		st.UpdateKind = updater.ClassifyUpdate(*st.InstalledVersion, latest)
	}
	return st
}

// Overview checks every known tool.
func (m *Manager) Overview(ctx context.Context) Overview {
	o := Overview{Tools: make(map[string]ToolStatus)}
	for _, d := range tools.All() {
		st := m.Status(ctx, d.ID)
		o.Tools[d.Key] = st
		o.HasUpdates = o.HasUpdates || st.HasUpdate
	}
	return o
}

// ListInstalled returns the keys of known tools that are recorded and whose
// bundle exists, sorted.
func (m *Manager) ListInstalled() []string {
	installed := []string{}
	for _, key := range m.store.Load().Keys() {
		d, err := tools.Lookup(key)
		if err != nil {
			continue
		}
		if m.layout.BundleExists(d.AppName) {
			installed = append(installed, key)
		}
	}
	return installed
}

func errorStatus(msg string) ToolStatus {
	return ToolStatus{Error: &msg}
}
