package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/story-labs/launcher/internal/tools"
)

// ActionResult is the outcome of an install, update or launch.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Commands exposes a Manager through string tool keys. No method returns an
// error; failures are folded into the result values.
type Commands struct {
	m *Manager
}

// NewCommands wraps m.
func NewCommands(m *Manager) *Commands {
	return &Commands{m: m}
}

// CheckStatus reports the status of the tool named key.
func (c *Commands) CheckStatus(ctx context.Context, key string) ToolStatus {
	d, err := tools.Lookup(key)
	if err != nil {
		return errorStatus(Message(err))
	}
	return c.m.Status(ctx, d.ID)
}

// Install installs the latest release of the tool named key.
func (c *Commands) Install(ctx context.Context, key string) ActionResult {
	return c.install(ctx, key, c.m.Install)
}

// Update reinstalls the tool named key from its latest release.
func (c *Commands) Update(ctx context.Context, key string) ActionResult {
	return c.install(ctx, key, c.m.Update)
}

func (c *Commands) install(ctx context.Context, key string, fn func(context.Context, tools.ID) (string, error)) ActionResult {
	d, err := tools.Lookup(key)
	if err != nil {
		return ActionResult{Message: Message(err)}
	}
	version, err := fn(ctx, d.ID)
	if err != nil {
		return ActionResult{Message: Message(err)}
	}
	return ActionResult{Success: true, Message: fmt.Sprintf("Installed version %s", version)}
}

// Launch opens the tool named key.
func (c *Commands) Launch(key string) ActionResult {
	d, err := tools.Lookup(key)
	if err != nil {
		return ActionResult{Message: Message(err)}
	}
	if err := c.m.Launch(d.ID); err != nil {
		return ActionResult{Message: Message(err)}
	}
	return ActionResult{Success: true, Message: "Launched app"}
}

// ListInstalled returns the installed tool keys.
func (c *Commands) ListInstalled() []string {
	return c.m.ListInstalled()
}

// Overview reports every tool and whether any has an update.
func (c *Commands) Overview(ctx context.Context) Overview {
	return c.m.Overview(ctx)
}

var stageFailures = map[Stage]string{
	StagePreparing:   "Failed to create directories",
	StageResolving:   "Failed to check latest release",
	StageDownloading: "Failed to download",
	StageVerifying:   "Failed to verify download",
	StageRemovingOld: "Failed to remove existing app",
	StageExtracting:  "Failed to extract",
	StagePersisting:  "Failed to save config",
}

// Message renders err as a short user-facing sentence.
func Message(err error) string {
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		return "Unknown tool"
	case errors.Is(err, ErrNoCompatibleAsset):
		return "No compatible download found in release"
	case errors.Is(err, ErrNotInstalled):
		return "App not installed"
	}

	var se *StageError
	if errors.As(err, &se) {
		if prefix, ok := stageFailures[se.Stage]; ok {
			return fmt.Sprintf("%s: %v", prefix, se.Err)
		}
		return se.Err.Error()
	}

	var le *launchError
	if errors.As(err, &le) {
		return fmt.Sprintf("Failed to launch: %v", le.Err)
	}
	return err.Error()
}
