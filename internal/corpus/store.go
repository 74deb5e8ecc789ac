// Package corpus holds the ordered collection of extracted notices and
// its JSON snapshot form.
package corpus

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ppiankov/landwatch/internal/model"
	"github.com/ppiankov/landwatch/internal/schema"
	"go.uber.org/zap"
)

//go:embed sample_database.json
var sampleSnapshot []byte

// Entry is one keyed record.
type Entry struct {
	Key    string
	Notice model.PublicNotice
}

// Store is an insertion-ordered key to record mapping. Replacing a key
// keeps its original position. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	keys    []string
	records map[string]model.PublicNotice
	logger  *zap.Logger
}

// New creates an empty store.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{records: make(map[string]model.PublicNotice), logger: logger}
}

// Put inserts or replaces the record under key.
func (s *Store) Put(key string, n model.PublicNotice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.records[key] = n
}

// Get returns the record stored under key.
func (s *Store) Get(key string) (model.PublicNotice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.records[key]
	return n, ok
}

// Delete removes key. Returns ErrKeyNotFound when it is absent.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return fmt.Errorf("%q: %w", key, model.ErrKeyNotFound)
	}
	delete(s.records, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Keys returns the keys in corpus order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.keys...)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Records returns a copy of the corpus in order.
func (s *Store) Records() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.keys))
	for i, k := range s.keys {
		out[i] = Entry{Key: k, Notice: s.records[k]}
	}
	return out
}

// Clear removes every record.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = nil
	s.records = make(map[string]model.PublicNotice)
}

// Export serializes the corpus as a JSON object in corpus order with
// four-space indentation.
func (s *Store) Export() ([]byte, error) {
	return encodeSnapshot(s.Records())
}

// Import replaces the corpus with the snapshot in data. Every value must
// match the record schema; on any failure the corpus is left untouched
// and the error wraps ErrSchemaMismatch.
func (s *Store) Import(data []byte) error {
	keys, records, err := decodeSnapshot(data)
	if err != nil {
		s.logger.Warn("corpus.import.rejected", zap.Error(err))
		return fmt.Errorf("import: %w: %v", model.ErrSchemaMismatch, err)
	}

	s.mu.Lock()
	s.keys = keys
	s.records = records
	s.mu.Unlock()

	s.logger.Info("corpus.import.ok", zap.Int("records", len(keys)))
	return nil
}

// LoadSample replaces the corpus with the bundled sample snapshot.
func (s *Store) LoadSample() error {
	return s.Import(sampleSnapshot)
}

// LoadFile imports the snapshot at path. A missing file leaves the
// store empty and is not an error.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.logger.Debug("corpus.load.missing", zap.String("path", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	return s.Import(data)
}

// SaveFile writes the snapshot to path, replacing it atomically.
func (s *Store) SaveFile(path string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	s.logger.Debug("corpus.save.ok", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func encodeSnapshot(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range entries {
		key, err := marshal(e.Key, "")
		if err != nil {
			return nil, err
		}
		val, err := marshal(e.Notice, "    ")
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", e.Key, err)
		}
		buf.WriteString("    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

func marshal(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeSnapshot reads a top-level object keeping key order. A repeated
// key keeps its first position and its last value.
func decodeSnapshot(data []byte) ([]string, map[string]model.PublicNotice, error) {
	v, err := schema.For(schema.Snapshot)
	if err != nil {
		return nil, nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("malformed snapshot: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("snapshot must be a JSON object")
	}

	var keys []string
	records := make(map[string]model.PublicNotice)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("malformed snapshot: %w", err)
		}
		key := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("malformed value for %q: %w", key, err)
		}
		if err := v.Validate(raw); err != nil {
			return nil, nil, fmt.Errorf("%q: %w", key, err)
		}
		var n model.PublicNotice
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, nil, fmt.Errorf("decode %q: %w", key, err)
		}

		if _, seen := records[key]; !seen {
			keys = append(keys, key)
		}
		records[key] = n
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("malformed snapshot: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, fmt.Errorf("trailing data after snapshot")
	}
	return keys, records, nil
}
