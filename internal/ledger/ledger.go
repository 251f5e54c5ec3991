package ledger

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultMaxEntries bounds the ledger when no explicit limit is
	// configured.
	DefaultMaxEntries = 100

	filePermissions = 0644
)

// Ledger is a bounded, persisted set of previously-notified item keys.
// Eviction is insertion-order FIFO, not LRU. The mutex guards the
// in-memory state against concurrent webhook requests; the check-then-mark
// race across two requests for the same item is accepted and documented at
// the call sites.
type Ledger struct {
	path       string
	maxEntries int

	mu   sync.Mutex
	keys []string
	seen map[string]struct{}
}

// Load reads the persisted ledger from path. A missing or unreadable file
// yields an empty ledger: the file is a best-effort cache, not a source of
// truth, so Load never fails.
func Load(path string, maxEntries int) *Ledger {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	l := &Ledger{
		path:       path,
		maxEntries: maxEntries,
		seen:       make(map[string]struct{}),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithFields(log.Fields{
				"path":  path,
				"error": err,
			}).Warn("failed to read notified items file, starting empty")
		}
		return l
	}

	keys, err := decodeKeys(data)
	if err != nil {
		log.WithFields(log.Fields{
			"path":  path,
			"error": err,
		}).Warn("failed to parse notified items file, starting empty")
		return l
	}

	for _, key := range keys {
		if _, ok := l.seen[key]; ok {
			continue
		}
		l.keys = append(l.keys, key)
		l.seen[key] = struct{}{}
	}
	return l
}

func itemKey(itemType, name string, year int) string {
	return fmt.Sprintf("%s:%s:%d", itemType, name, year)
}

// Contains reports whether the item was already notified.
func (l *Ledger) Contains(itemType, name string, year int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.seen[itemKey(itemType, name, year)]
	return ok
}

// Mark records the item as notified, evicts the oldest entry if the bound
// is exceeded, and persists the ledger. A persistence failure is surfaced
// since losing the file causes eventual duplicate notifications.
func (l *Ledger) Mark(ctx context.Context, itemType, name string, year int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := itemKey(itemType, name, year)
	if _, ok := l.seen[key]; !ok {
		l.keys = append(l.keys, key)
		l.seen[key] = struct{}{}
	}

	for len(l.keys) > l.maxEntries {
		oldest := l.keys[0]
		l.keys = l.keys[1:]
		delete(l.seen, oldest)
	}

	if err := l.save(); err != nil {
		return fmt.Errorf("saving notified items: %w", err)
	}
	return nil
}

// Save persists the current state. Exposed for the shutdown path; Mark
// already saves after every mutation.
func (l *Ledger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.save(); err != nil {
		return fmt.Errorf("saving notified items: %w", err)
	}
	return nil
}

// Len returns the number of tracked keys.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.keys)
}

// save writes the flat JSON object atomically via a temp file rename.
// Callers must hold l.mu.
func (l *Ledger) save() error {
	data := encodeKeys(l.keys)

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".notified-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, filePermissions); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting file permissions: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing ledger file: %w", err)
	}
	return nil
}

// encodeKeys serializes the keys as a flat JSON object with value true per
// key. The object is written in insertion order so eviction order survives
// a restart and save(load()) is byte-stable.
func encodeKeys(keys []string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		name, _ := json.Marshal(key)
		buf.Write(name)
		buf.WriteString(": true")
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// decodeKeys reads the flat JSON object token by token, preserving the
// document's key order, which a plain map unmarshal would discard.
func decodeKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading object start: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", tok)
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("reading value for %q: %w", key, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
