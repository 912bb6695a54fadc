package updater

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited is returned when the registry answers 403.
	ErrRateLimited = errors.New("release registry rate limit exceeded; set GITHUB_TOKEN for higher limits")
	// ErrNoReleases is returned when the repository has no published release.
	ErrNoReleases = errors.New("no releases found")
	// ErrChecksumMismatch is returned when a download does not match checksums.txt.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// RegistryError reports an unexpected registry status code.
type RegistryError struct {
	StatusCode int
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("release registry returned status %d", e.StatusCode)
}

// NetworkError reports a failed request or an interrupted response stream.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a registry response that could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing release JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// HTTPError reports a non-success status for a download.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("download returned status %d", e.StatusCode)
}

// IOError reports a local file failure while saving a download.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
