// Package platform wraps the operating-system specific pieces of the
// launcher: running external helpers (hdiutil, cp, xattr), opening an
// installed bundle, clearing download provenance on macOS, host detection
// and permission bits. External commands go through the Runner interface so
// callers can substitute a recording fake.
package platform
