package manager

import (
	"errors"
	"fmt"
)

// Stage is one step of an install.
type Stage int

const (
	StagePreparing Stage = iota + 1
	StageResolving
	StageSelecting
	StageDownloading
	StageVerifying
	StageRemovingOld
	StageExtracting
	StageFixingUp
	StagePersisting
	StageDone
)

var stageNames = map[Stage]string{
	StagePreparing:   "preparing",
	StageResolving:   "resolving",
	StageSelecting:   "selecting",
	StageDownloading: "downloading",
	StageVerifying:   "verifying",
	StageRemovingOld: "removing old",
	StageExtracting:  "extracting",
	StageFixingUp:    "fixing up",
	StagePersisting:  "persisting",
	StageDone:        "done",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

var (
	// ErrNoCompatibleAsset is returned when a release has no bundle archive.
	ErrNoCompatibleAsset = errors.New("no compatible download found in release")
	// ErrConfigSave matches a failure to record the installed version. The
	// bundle is in place when this is returned.
	ErrConfigSave = errors.New("saving installed record")
	// ErrNotInstalled is returned when launching a tool whose bundle is absent.
	ErrNotInstalled = errors.New("app not installed")
)

// StageError reports which install stage failed for which tool.
type StageError struct {
	Tool  string
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Tool, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Is matches ErrConfigSave for persisting failures.
func (e *StageError) Is(target error) bool {
	return target == ErrConfigSave && e.Stage == StagePersisting
}
