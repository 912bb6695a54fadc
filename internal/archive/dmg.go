package archive

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
)

func (e *Extractor) extractDMG(ctx context.Context, src, destDir, appName string) error {
	fail := func(op string, err error) error {
		return &ExtractError{Format: FormatDMG, Op: op, Err: err}
	}

	if _, err := e.runner.Run(ctx, "hdiutil", "attach", src, "-nobrowse", "-quiet"); err != nil {
		return fail("mount", err)
	}

	info, err := e.runner.Run(ctx, "hdiutil", "info", "-plist")
	if err != nil {
		return fail("locate mount point", err)
	}
	mountPoint, ok := parseMountPoint(info)
	if !ok {
		return fail("locate mount point", ErrMountPointNotFound)
	}

	defer e.detach(context.WithoutCancel(ctx), mountPoint)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fail("copy", err)
	}
	from := filepath.Join(mountPoint, appName)
	to := filepath.Join(destDir, appName)
	if _, err := e.runner.Run(ctx, "cp", "-R", from, to); err != nil {
		return fail("copy", err)
	}
	return nil
}

func (e *Extractor) detach(ctx context.Context, mountPoint string) {
	if _, err := e.runner.Run(ctx, "hdiutil", "detach", mountPoint, "-quiet"); err != nil {
		e.logger.Warn("detaching disk image failed", "path", mountPoint, "err", err)
	}
}

// parseMountPoint scans `hdiutil info -plist` output for the first line
// mentioning /Volumes/ and returns its <string> payload. Only one attached
// volume is expected; with several, the first listed wins.
func parseMountPoint(plist []byte) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(plist))
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, "/Volumes/") {
			continue
		}
		_, payload, ok := strings.Cut(line, "<string>")
		if !ok {
			return "", false
		}
		payload, _, _ = strings.Cut(payload, "</string>")
		return payload, payload != ""
	}
	return "", false
}
