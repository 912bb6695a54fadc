package userdata

import (
	"fmt"
	"io"
	"os"

	"github.com/story-labs/launcher/internal/record"
	"github.com/story-labs/launcher/internal/tools"
)

// CheckLayout validates the launcher directory and the consistency between
// the installed record and the bundles on disk. When fix is true, missing
// directories are created. It returns the number of problems left unfixed.
func CheckLayout(w io.Writer, l Layout, fix bool) int {
	problems := 0

	fmt.Fprintln(w, "Layout check:")

	problems += checkDirExists(w, l.Root, fix)
	problems += checkDirExists(w, l.AppsDir(), fix)
	problems += checkRecord(w, l.RecordPath())

	fmt.Fprintln(w, "Tools:")
	r := record.NewStore(l.RecordPath()).Load()
	for _, d := range tools.All() {
		problems += checkTool(w, l, r, d)
	}
	for _, key := range r.Keys() {
		if !tools.IsKnown(key) {
			fmt.Fprintf(w, "  [WARN] record lists unknown tool %q\n", key)
			problems++
		}
	}

	return problems
}

func checkDirExists(w io.Writer, path string, fix bool) int {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if fix {
			if mkErr := os.MkdirAll(path, DirPermNormal); mkErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
				return 1
			}
			fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
			return 0
		}
		return 1
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", path)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return 0
}

func checkRecord(w io.Writer, path string) int {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [ OK ] %s not created yet (nothing installed)\n", path)
		return 0
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}

	issues, err := record.Validate(data)
	if err != nil {
		fmt.Fprintf(w, "  [WARN] %s is not valid JSON and reads as empty: %v\n", path, err)
		return 1
	}
	if len(issues) > 0 {
		fmt.Fprintf(w, "  [WARN] %s has an unexpected shape and reads as empty\n", path)
		for _, issue := range issues {
			fmt.Fprintf(w, "         %s\n", issue)
		}
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s is valid\n", path)
	return 0
}

func checkTool(w io.Writer, l Layout, r *record.Record, d tools.Descriptor) int {
	version, recorded := r.Version(d.Key)
	onDisk := l.BundleExists(d.AppName)

	switch {
	case recorded && onDisk:
		fmt.Fprintf(w, "  [ OK ] %s %s installed\n", d.Key, version)
	case recorded && !onDisk:
		fmt.Fprintf(w, "  [WARN] %s recorded as %s but %s is missing (reported as not installed)\n",
			d.Key, version, l.AppPath(d.AppName))
		return 1
	case !recorded && onDisk:
		fmt.Fprintf(w, "  [WARN] %s bundle present but not recorded (reinstall to track it)\n", d.Key)
		return 1
	default:
		fmt.Fprintf(w, "  [ -- ] %s not installed\n", d.Key)
	}
	return 0
}
