package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/story-labs/launcher/internal/platform"
)

// Format identifies an archive container.
type Format int

const (
	FormatTarGz Format = iota + 1
	FormatZip
	FormatDMG
)

func (f Format) String() string {
	switch f {
	case FormatTarGz:
		return "tar.gz"
	case FormatZip:
		return "zip"
	case FormatDMG:
		return "dmg"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from a file name suffix.
func FormatFor(name string) (Format, bool) {
	switch {
	case strings.HasSuffix(name, ".tar.gz"):
		return FormatTarGz, true
	case strings.HasSuffix(name, ".zip"):
		return FormatZip, true
	case strings.HasSuffix(name, ".dmg"):
		return FormatDMG, true
	default:
		return 0, false
	}
}

// ErrMountPointNotFound is returned when an attached disk image cannot be
// located under /Volumes.
var ErrMountPointNotFound = errors.New("could not find mount point")

// ExtractError reports a failed extraction. Op names the step that failed
// (open, read, unpack, copy, mount, locate mount point).
type ExtractError struct {
	Format Format
	Op     string
	Err    error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extracting %s: %s: %v", e.Format, e.Op, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// Extractor unpacks archives into a destination directory.
type Extractor struct {
	runner platform.Runner
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRunner sets the runner used for hdiutil and cp.
func WithRunner(r platform.Runner) Option {
	return func(e *Extractor) {
		e.runner = r
	}
}

// WithLogger sets the logger used for cleanup failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		runner: platform.ExecRunner{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract unpacks src into destDir. For disk images, appName is the bundle
// copied out of the mounted volume; the other formats unpack everything.
func (e *Extractor) Extract(ctx context.Context, format Format, src, destDir, appName string) error {
	e.logger.Debug("extracting", "format", format.String(), "path", src, "dest", destDir)
	switch format {
	case FormatTarGz:
		return e.extractTarGz(ctx, src, destDir)
	case FormatZip:
		return e.extractZip(ctx, src, destDir)
	case FormatDMG:
		return e.extractDMG(ctx, src, destDir, appName)
	default:
		return &ExtractError{Format: format, Op: "open", Err: fmt.Errorf("unsupported archive format")}
	}
}

// safeJoin joins name onto destDir and rejects names that climb out of it.
// Symlinks already extracted are resolved as if destDir were the filesystem
// root, so the parent of the result never leaves destDir. The final element
// is left unresolved.
func safeJoin(destDir, name string) (string, error) {
	root := filepath.Clean(destDir)
	target := filepath.Join(root, name)
	if !within(root, target) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	if target == root {
		return root, nil
	}

	rel, err := filepath.Rel(root, filepath.Dir(target))
	if err != nil {
		return "", err
	}
	parent, err := securejoin.SecureJoin(root, rel)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}
	return filepath.Join(parent, filepath.Base(target)), nil
}

// resolveJoin is safeJoin with the final element resolved as well.
func resolveJoin(destDir, name string) (string, error) {
	if _, err := safeJoin(destDir, name); err != nil {
		return "", err
	}
	return securejoin.SecureJoin(filepath.Clean(destDir), name)
}

// checkLink rejects a symlink at target whose destination is absolute or
// lands outside destDir.
func checkLink(destDir, target, linkname string) error {
	if filepath.IsAbs(linkname) || !within(filepath.Clean(destDir), filepath.Join(filepath.Dir(target), linkname)) {
		return fmt.Errorf("illegal link target: %s -> %s", filepath.Base(target), linkname)
	}
	return nil
}

// clearLink removes a symlink sitting where a regular file is about to be
// written, so the write lands on a fresh file instead of the link target.
func clearLink(target string) error {
	info, err := os.Lstat(target)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	return os.Remove(target)
}

func within(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(os.PathSeparator))
}
