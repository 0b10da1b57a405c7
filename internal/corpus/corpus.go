// Package corpus stores accepted mutants on disk.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"wgslfuzz/internal/pipeline"
)

// Current schema version - increment when Entry format changes
const schemaVersion uint16 = 1

const entryExt = ".mpk"

var (
	// ErrNotFound is returned by Get for unknown IDs.
	ErrNotFound = errors.New("corpus entry not found")
	// ErrSchema is returned for entries written by an incompatible version.
	ErrSchema = errors.New("corpus entry has an unsupported schema")
)

// Entry is one stored mutant with everything needed to reproduce it.
type Entry struct {
	Schema uint16 `msgpack:"schema"`

	ID      string          `msgpack:"id"`
	Preset  string          `msgpack:"preset"`
	Seed    uint64          `msgpack:"seed"`
	Slot    uint32          `msgpack:"slot"`
	Attempt uint32          `msgpack:"attempt"`
	Config  pipeline.Config `msgpack:"config"`
	Passes  []string        `msgpack:"passes"`

	Source string `msgpack:"source"`
	// Hash is the hex SHA-256 of Source.
	Hash string `msgpack:"hash"`
	// Warnings are validator messages that did not reject the mutant.
	Warnings []string `msgpack:"warnings,omitempty"`

	CreatedUnix int64 `msgpack:"created"`
}

// Created returns the creation time.
func (e Entry) Created() time.Time { return time.Unix(e.CreatedUnix, 0) }

// HashSource returns the content hash stored in Entry.Hash.
func HashSource(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// Store is a directory of msgpack-encoded entries. Thread-safe for concurrent access.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_DATA_HOME/wgslfuzz/corpus, falling back to
// ~/.local/share.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "wgslfuzz", "corpus"), nil
}

// Open creates dir if needed and returns a store rooted there.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("corpus: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) pathFor(id string) string {
	// Двухсимвольный префикс, чтобы каталоги не разрастались.
	return filepath.Join(s.dir, id[:2], id+entryExt)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Put fills in ID, Schema, Hash and CreatedUnix when unset, then writes e
// atomically. The stored entry is returned.
func (s *Store) Put(e Entry) (Entry, error) {
	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return Entry{}, fmt.Errorf("corpus: new id: %w", err)
		}
		e.ID = id.String()
	}
	if !validID(e.ID) {
		return Entry{}, fmt.Errorf("corpus: invalid id %q", e.ID)
	}
	e.Schema = schemaVersion
	e.Hash = HashSource(e.Source)
	if e.CreatedUnix == 0 {
		e.CreatedUnix = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pathFor(e.ID)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return Entry{}, err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return Entry{}, err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&e); err != nil {
		f.Close()
		os.Remove(tmp)
		return Entry{}, fmt.Errorf("corpus: encode %s: %w", e.ID, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return Entry{}, err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return Entry{}, err
	}
	return e, nil
}

// Get loads the entry with the given ID. A unique ID prefix of at least
// eight characters is accepted.
func (s *Store) Get(id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !validID(id) {
		full, err := s.resolvePrefix(id)
		if err != nil {
			return Entry{}, err
		}
		id = full
	}
	return s.read(s.pathFor(id))
}

func (s *Store) resolvePrefix(prefix string) (string, error) {
	if len(prefix) < 8 {
		return "", fmt.Errorf("%w: %q (prefix too short)", ErrNotFound, prefix)
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, prefix[:2], prefix+"*"+entryExt))
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrNotFound, prefix)
	case 1:
		return strings.TrimSuffix(filepath.Base(matches[0]), entryExt), nil
	default:
		return "", fmt.Errorf("corpus: prefix %q is ambiguous (%d entries)", prefix, len(matches))
	}
}

func (s *Store) read(p string) (e Entry, err error) {
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, strings.TrimSuffix(filepath.Base(p), entryExt))
		}
		return Entry{}, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return Entry{}, fmt.Errorf("corpus: decode %s: %w", p, err)
	}
	if e.Schema != schemaVersion {
		return Entry{}, fmt.Errorf("%w: %s has schema %d, want %d", ErrSchema, e.ID, e.Schema, schemaVersion)
	}
	return e, nil
}

// List returns every readable entry ordered by creation time, then ID.
// Entries with a foreign schema are skipped.
func (s *Store) List() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	err := filepath.WalkDir(s.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != entryExt {
			return nil
		}
		e, err := s.read(p)
		if errors.Is(err, ErrSchema) {
			return nil
		}
		if err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedUnix != out[j].CreatedUnix {
			return out[i].CreatedUnix < out[j].CreatedUnix
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes the entry with the given ID.
func (s *Store) Delete(id string) error {
	if !validID(id) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.pathFor(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}
