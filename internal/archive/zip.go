package archive

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/story-labs/launcher/internal/platform"
)

// creatorUnix is the zip "version made by" host value for Unix.
const creatorUnix = 3

func (e *Extractor) extractZip(ctx context.Context, src, destDir string) error {
	fail := func(op string, err error) error {
		return &ExtractError{Format: FormatZip, Op: op, Err: err}
	}

	r, err := zip.OpenReader(src)
	if err != nil {
		return fail("open", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return fail("unpack", err)
		}

		if err := extractZipEntry(f, destDir); err != nil {
			return fail("unpack", err)
		}
	}
	return nil
}

func extractZipEntry(f *zip.File, destDir string) error {
	if f.FileInfo().IsDir() {
		target, err := resolveJoin(destDir, f.Name)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(target, 0755); err != nil {
			return err
		}
		if mode, ok := unixMode(f); ok {
			_ = platform.Chmod(target, mode.Perm()|0700)
		}
		return nil
	}

	target, err := safeJoin(destDir, f.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	if f.Mode()&os.ModeSymlink != 0 {
		return extractZipSymlink(f, destDir, target)
	}

	if err := clearLink(target); err != nil {
		return err
	}
	if err := extractZipFile(f, target); err != nil {
		return err
	}
	// Restoring the recorded mode is best-effort.
	if mode, ok := unixMode(f); ok {
		_ = platform.Chmod(target, mode.Perm())
	}
	return nil
}

func extractZipFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func extractZipSymlink(f *zip.File, destDir, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	link, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	if err := checkLink(destDir, target, string(link)); err != nil {
		return err
	}
	_ = os.Remove(target)
	return os.Symlink(string(link), target)
}

// unixMode returns the Unix permission bits stored in the entry, if the
// archive was written on a Unix host and recorded any.
func unixMode(f *zip.File) (os.FileMode, bool) {
	if f.CreatorVersion>>8 != creatorUnix {
		return 0, false
	}
	if f.ExternalAttrs>>16 == 0 {
		return 0, false
	}
	return f.Mode(), true
}
