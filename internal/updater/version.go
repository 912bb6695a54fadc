package updater

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// UpdateKind classifies the difference between an installed and a latest version.
type UpdateKind string

const (
	UpdateNone       UpdateKind = ""
	UpdateMajor      UpdateKind = "major"
	UpdateMinor      UpdateKind = "minor"
	UpdatePatch      UpdateKind = "patch"
	UpdatePrerelease UpdateKind = "prerelease"
	UpdateDowngrade  UpdateKind = "downgrade"
)

// CompareVersions orders installed against latest: -1 when installed is
// older, 0 when equal, 1 when newer. Leading "v" characters are ignored.
func CompareVersions(installed, latest string) (int, error) {
	iv, lv, err := parsePair(installed, latest)
	if err != nil {
		return 0, err
	}
	return iv.Compare(lv), nil
}

// ClassifyUpdate reports which semver component changes going from installed
// to latest. It returns UpdateNone when the versions are equal or either one
// is not valid semver; the plain string comparison still decides has_update.
func ClassifyUpdate(installed, latest string) UpdateKind {
	cmp, err := CompareVersions(installed, latest)
	if err != nil || cmp == 0 {
		return UpdateNone
	}
	if cmp > 0 {
		return UpdateDowngrade
	}

	iv, lv, _ := parsePair(installed, latest)
	switch {
	case lv.Major() != iv.Major():
		return UpdateMajor
	case lv.Minor() != iv.Minor():
		return UpdateMinor
	case lv.Patch() != iv.Patch():
		return UpdatePatch
	default:
		return UpdatePrerelease
	}
}

func parsePair(installed, latest string) (*semver.Version, *semver.Version, error) {
	iv, err := parseSemver(installed)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing installed version %q: %w", installed, err)
	}
	lv, err := parseSemver(latest)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return iv, lv, nil
}

// parseSemver strips leading "v" characters and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimLeft(version, "v")
	return semver.NewVersion(version)
}
