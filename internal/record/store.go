package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store loads and saves the record file at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report unreadable record files.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates a Store for the record file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the record file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the record. It never fails: a missing file, a read error, bad
// JSON or a document of the wrong shape all yield an empty record.
func (s *Store) Load() *Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("record unreadable, treating as empty", "path", s.path, "err", err)
		}
		return New()
	}

	issues, err := Validate(data)
	if err != nil {
		s.logger.Warn("record is not valid JSON, treating as empty", "path", s.path, "err", err)
		return New()
	}
	if len(issues) > 0 {
		s.logger.Warn("record has unexpected shape, treating as empty",
			"path", s.path, "issue", issues[0].String(), "issues", len(issues))
		return New()
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		s.logger.Warn("decoding record", "path", s.path, "err", err)
		return New()
	}
	if r.Tools == nil {
		r.Tools = make(map[string]string)
	}
	return &r
}

// Save writes r as indented JSON, replacing the file. Parent directories
// are created as needed. The write is not atomic.
func (s *Store) Save(r *Record) error {
	if r.Tools == nil {
		r = New()
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating record directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// Update loads the record, applies fn and saves the result. Concurrent
// Update calls on the same Store are serialized.
func (s *Store) Update(fn func(*Record)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.Load()
	fn(r)
	return s.Save(r)
}
