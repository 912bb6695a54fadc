// Package manager installs, updates, inspects and launches the desktop tools
// listed in package tools.
//
// An install runs as a fixed sequence of stages: prepare the apps directory,
// resolve the latest release, select a bundle archive, download it, verify
// it, remove the old bundle, extract, clear download provenance and finally
// record the new version. The first failing stage aborts the install and is
// reported as a *StageError.
//
// Commands wraps a Manager with the string-keyed, never-failing surface a
// front end consumes: every outcome becomes a ToolStatus or ActionResult.
package manager
