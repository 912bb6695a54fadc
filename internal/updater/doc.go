// Package updater talks to the release registry (GitHub Releases or a
// compatible mirror). It resolves the latest release of a repository, picks
// the downloadable bundle archive, streams it to disk, verifies it against a
// published checksums.txt and classifies version differences with semver.
package updater
