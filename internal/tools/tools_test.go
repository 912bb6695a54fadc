package tools

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	d, err := Lookup("resolve-sync")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if d.ID != ResolveSync {
		t.Errorf("ID = %v, want %v", d.ID, ResolveSync)
	}
	if d.Repository != "joyrider00/spellbook-resolve-sync" {
		t.Errorf("Repository = %q", d.Repository)
	}
	if d.AppName != "Spellbook Resolve Sync.app" {
		t.Errorf("AppName = %q", d.AppName)
	}
}

func TestLookup_Unknown(t *testing.T) {
	tests := []string{"", "spellbook", "Resolve-Sync", "resolve-sync "}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := Lookup(key)
			if !errors.Is(err, ErrUnknownTool) {
				t.Errorf("Lookup(%q) error = %v, want ErrUnknownTool", key, err)
			}
		})
	}
}

func TestTableIsConsistent(t *testing.T) {
	seen := make(map[string]bool)
	for id, d := range descriptors {
		if d.ID != id {
			t.Errorf("row %d carries ID %d", id, d.ID)
		}
		if d.Key == "" || d.Repository == "" || d.AppName == "" {
			t.Errorf("row %d has empty fields: %+v", id, d)
		}
		if seen[d.Key] {
			t.Errorf("duplicate key %q", d.Key)
		}
		seen[d.Key] = true
	}
}

func TestIDString(t *testing.T) {
	if got := ResolveSync.String(); got != "resolve-sync" {
		t.Errorf("String() = %q, want %q", got, "resolve-sync")
	}
	if got := ID(999).String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != len(descriptors) {
		t.Fatalf("All() returned %d tools, want %d", len(all), len(descriptors))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key > all[i].Key {
			t.Errorf("All() not sorted: %q before %q", all[i-1].Key, all[i].Key)
		}
	}
}
