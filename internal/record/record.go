package record

import "sort"

// Record maps tool keys to installed version strings.
type Record struct {
	Tools map[string]string `json:"tools"`
}

// New returns an empty record.
func New() *Record {
	return &Record{Tools: make(map[string]string)}
}

// Version returns the recorded version for a tool.
func (r *Record) Version(tool string) (string, bool) {
	v, ok := r.Tools[tool]
	return v, ok
}

// Set records version as installed for tool.
func (r *Record) Set(tool, version string) {
	if r.Tools == nil {
		r.Tools = make(map[string]string)
	}
	r.Tools[tool] = version
}

// Keys returns the recorded tool keys in sorted order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.Tools))
	for k := range r.Tools {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
