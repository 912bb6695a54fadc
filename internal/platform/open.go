package platform

import (
	"context"
	"log/slog"
)

// OpenCommand returns the command that hands path to the desktop's default
// opener on goos.
func OpenCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// EnforcesProvenance reports whether goos quarantines downloaded bundles
// until their extended attributes are cleared.
func EnforcesProvenance(goos string) bool {
	return goos == "darwin"
}

// ClearProvenance recursively strips extended attributes from path. Failure
// is logged and otherwise ignored; the bundle is already in place.
func ClearProvenance(ctx context.Context, r Runner, logger *slog.Logger, path string) {
	if _, err := r.Run(ctx, "xattr", "-cr", path); err != nil {
		logger.Warn("clearing quarantine attributes failed", "path", path, "err", err)
	}
}
