package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/story-labs/launcher/internal/platform"
)

func (e *Extractor) extractTarGz(ctx context.Context, src, destDir string) error {
	fail := func(op string, err error) error {
		return &ExtractError{Format: FormatTarGz, Op: op, Err: err}
	}

	f, err := os.Open(src)
	if err != nil {
		return fail("open", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fail("read", err)
	}
	defer gz.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fail("unpack", err)
	}

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return fail("unpack", err)
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail("read", err)
		}

		if err := extractTarEntry(hdr, tr, destDir); err != nil {
			return fail("unpack", err)
		}
	}
	return nil
}

func extractTarEntry(hdr *tar.Header, r io.Reader, destDir string) error {
	mode := os.FileMode(hdr.Mode).Perm()

	switch hdr.Typeflag {
	case tar.TypeDir:
		target, err := resolveJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}
		return os.MkdirAll(target, mode|0700)

	case tar.TypeReg:
		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := clearLink(target); err != nil {
			return err
		}
		return writeFile(target, r, mode)

	case tar.TypeSymlink:
		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}
		if err := checkLink(destDir, target, hdr.Linkname); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		_ = os.Remove(target)
		return os.Symlink(hdr.Linkname, target)

	case tar.TypeLink:
		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}
		source, err := resolveJoin(destDir, hdr.Linkname)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		_ = os.Remove(target)
		return os.Link(source, target)

	default:
		// Devices and fifos have no place in an app bundle.
		return nil
	}
}

// writeFile copies r into a fresh file at target and applies mode.
func writeFile(target string, r io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return platform.Chmod(target, mode)
}
