package meta

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/agobeyn/figaro/internal/ctxlog"
)

// ErrCorruptRecord marks a fingerprint record that fails structural
// validation. The record is preserved on disk so the operator can inspect
// it; it is never silently repaired or discarded.
var ErrCorruptRecord = errors.New("corrupt fingerprint record")

// Record is the fingerprint of a single figure script, keyed in the store by
// the script's absolute path.
//
// Dependents is grow-only: a path is added the first time a figure resolves
// to it and is never pruned, even if the figure is later renamed or removed
// from the script. The set doubles as an audit trail tying an orphaned
// artifact back to its producer.
type Record struct {
	Checksum   string   `yaml:"checksum"`
	Dependents []string `yaml:"dependents"`
}

// AddDependent records an artifact path produced by this script. Adding a
// path that is already present is a no-op.
func (r *Record) AddDependent(path string) {
	if slices.Contains(r.Dependents, path) {
		return
	}
	r.Dependents = append(r.Dependents, path)
}

// rawRecord mirrors Record with pointer fields so that a missing key can be
// told apart from a zero value during structural validation.
type rawRecord struct {
	Checksum   *string   `yaml:"checksum"`
	Dependents *[]string `yaml:"dependents"`
}

// Store is the persisted mapping from figure-script path to fingerprint
// Record. It is loaded once at process start, mutated in memory during the
// run, and written back once at the end. Not safe for concurrent
// multi-process mutation: the engine assumes it is the single writer.
type Store struct {
	path    string
	records map[string]*Record

	// corrupt holds raw entries that failed validation, keyed by script
	// path. They are carried through Save verbatim.
	corrupt map[string]*yaml.Node
}

// Load reads the store file at path. A missing file yields an empty store; a
// file that exists but does not parse is an error, so prior fingerprints are
// never silently discarded.
func Load(ctx context.Context, path string) (*Store, error) {
	logger := ctxlog.FromContext(ctx)

	s := &Store{
		path:    path,
		records: make(map[string]*Record),
		corrupt: make(map[string]*yaml.Node),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Metadata file does not exist, initializing new store.", "path", path)
			return s, nil
		}
		return nil, fmt.Errorf("failed to read metadata file %s: %w", path, err)
	}

	// yaml.v3 leaves *yaml.Node map values as zero nodes; only value-typed
	// nodes are populated, so decode into those and take addresses.
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file %s: %w", path, err)
	}

	for file, node := range doc {
		node := node
		var raw rawRecord
		if err := node.Decode(&raw); err != nil || raw.Checksum == nil || raw.Dependents == nil {
			logger.Warn("Fingerprint record fails validation, keeping it verbatim.", "script", file)
			s.corrupt[file] = &node
			continue
		}
		s.records[file] = &Record{
			Checksum:   *raw.Checksum,
			Dependents: *raw.Dependents,
		}
	}

	logger.Debug("Metadata store loaded.", "path", path, "records", len(s.records), "corrupt", len(s.corrupt))
	return s, nil
}

// Path returns the on-disk location the store was loaded from and will be
// saved to.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of valid records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// Lookup returns the record for the given script path. The boolean reports
// whether any entry exists; an entry that exists but is structurally corrupt
// yields an error wrapping ErrCorruptRecord.
func (s *Store) Lookup(file string) (*Record, bool, error) {
	if _, bad := s.corrupt[file]; bad {
		return nil, true, fmt.Errorf("%w for %s: try removing %s", ErrCorruptRecord, file, s.path)
	}
	rec, ok := s.records[file]
	return rec, ok, nil
}

// Insert adds or replaces the record for the given script path.
func (s *Store) Insert(file string, rec *Record) {
	if rec.Dependents == nil {
		rec.Dependents = []string{}
	}
	s.records[file] = rec
}

// Snapshot returns a deep copy of the valid records, primarily for debug
// dumps and test assertions.
func (s *Store) Snapshot() map[string]Record {
	out := make(map[string]Record, len(s.records))
	for file, rec := range s.records {
		out[file] = Record{
			Checksum:   rec.Checksum,
			Dependents: slices.Clone(rec.Dependents),
		}
	}
	return out
}

// Save serializes the full store back to its path, overwriting the previous
// contents. The document is written to a temporary file in the same
// directory and renamed into place, so a crash mid-write cannot leave a
// truncated store behind.
func (s *Store) Save(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	doc := make(map[string]any, len(s.records)+len(s.corrupt))
	for file, rec := range s.records {
		doc[file] = rec
	}
	for file, node := range s.corrupt {
		doc[file] = node
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize metadata store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary metadata file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temporary metadata file %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to flush temporary metadata file %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary metadata file %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move metadata file into place at %s: %w", s.path, err)
	}

	logger.Debug("Metadata store saved.", "path", s.path, "records", len(s.records))
	return nil
}
