package manager

import (
	"fmt"

	"github.com/story-labs/launcher/internal/platform"
	"github.com/story-labs/launcher/internal/tools"
)

type launchError struct {
	Tool string
	Err  error
}

func (e *launchError) Error() string {
	return fmt.Sprintf("launching %s: %v", e.Tool, e.Err)
}

func (e *launchError) Unwrap() error { return e.Err }

// Launch opens the installed bundle of id as a detached process. Only the
// spawn is checked; the tool's own exit status is never observed.
func (m *Manager) Launch(id tools.ID) error {
	d, ok := id.Descriptor()
	if !ok {
		return tools.ErrUnknownTool
	}

	bundle := m.layout.AppPath(d.AppName)
	if !m.layout.BundleExists(d.AppName) {
		return ErrNotInstalled
	}

	name, args := platform.OpenCommand(m.goos, bundle)
	if err := m.runner.Start(name, args...); err != nil {
		return &launchError{Tool: d.Key, Err: err}
	}
	m.logger.Info("launched", "tool", d.Key, "path", bundle)
	return nil
}
