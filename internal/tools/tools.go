// Package tools defines the closed set of desktop tools the launcher can
// install. Each tool is an ID constant with one row in the descriptor table;
// adding a tool means adding a constant and a row, nothing else.
package tools

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTool is returned when a tool key does not name a known tool.
var ErrUnknownTool = errors.New("unknown tool")

// ID identifies a supported tool.
type ID int

const (
	// ResolveSync is the DaVinci Resolve sync script bundle.
	ResolveSync ID = iota + 1
)

// Descriptor holds the static facts needed to resolve, install and launch a tool.
type Descriptor struct {
	ID          ID
	Key         string // stable identifier used by callers and the installed record
	DisplayName string
	Repository  string // "owner/repo" on the release registry
	AppName     string // bundle directory name under the apps directory
}

var descriptors = map[ID]Descriptor{
	ResolveSync: {
		ID:          ResolveSync,
		Key:         "resolve-sync",
		DisplayName: "Resolve Sync Script",
		Repository:  "joyrider00/spellbook-resolve-sync",
		AppName:     "Spellbook Resolve Sync.app",
	},
}

// String returns the tool key, or "unknown" for IDs outside the table.
func (id ID) String() string {
	if d, ok := descriptors[id]; ok {
		return d.Key
	}
	return "unknown"
}

// Descriptor returns the table row for id.
func (id ID) Descriptor() (Descriptor, bool) {
	d, ok := descriptors[id]
	return d, ok
}

// Lookup resolves a tool key such as "resolve-sync" to its descriptor.
func Lookup(key string) (Descriptor, error) {
	for _, d := range descriptors {
		if d.Key == key {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownTool, key)
}

// All returns every known tool ordered by key.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// IsKnown reports whether key names a known tool.
func IsKnown(key string) bool {
	_, err := Lookup(key)
	return err == nil
}
