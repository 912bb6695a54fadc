package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// Info describes the host the launcher runs on.
type Info struct {
	OS       string
	Arch     string
	Platform string // e.g. "darwin", "ubuntu"
	Version  string // e.g. "14.5"
}

// String renders the info for display, e.g. "darwin/arm64 (macOS 14.5)".
func (i Info) String() string {
	s := i.OS + "/" + i.Arch
	if i.Platform != "" {
		name := i.Platform
		if name == "darwin" {
			name = "macOS"
		}
		if i.Version != "" {
			name += " " + i.Version
		}
		s += fmt.Sprintf(" (%s)", name)
	}
	return s
}

// Detect returns host information. OS and architecture always come from the
// runtime; platform details come from gopsutil and are left empty when it
// cannot determine them.
func Detect(ctx context.Context) (Info, error) {
	info := Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	platform, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return info, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}
	info.Platform = platform
	info.Version = version
	return info, nil
}
