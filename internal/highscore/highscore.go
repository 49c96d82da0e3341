// Package highscore keeps the best score across sessions in a key-value
// backend under a single fixed key.
package highscore

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Key is the storage key the high score lives under.
const Key = "flappyBirdHighScore"

// KV is a durable string key-value backend.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store caches the high score in memory and persists it through a KV.
type Store struct {
	kv     KV
	best   int
	logger *log.Logger
}

// New creates a store over kv. A nil logger falls back to log.Default().
// Call Load before use.
func New(kv KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Load reads the persisted value into memory and returns it.
// A missing, unreadable or malformed value yields 0.
func (s *Store) Load() int {
	s.best = 0
	if s.kv == nil {
		return 0
	}

	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		s.logger.Warn("cannot read high score", "error", err)
		return 0
	}
	if !ok {
		return 0
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		s.logger.Warn("ignoring malformed high score", "value", raw)
		return 0
	}
	s.best = v
	return v
}

// Save writes v unconditionally. The in-memory value is updated even when
// the write fails; the error is returned so the caller can log it.
func (s *Store) Save(v int) error {
	s.best = v
	if s.kv == nil {
		return nil
	}
	return s.kv.Set(Key, strconv.Itoa(v))
}

// IsNew reports whether candidate beats the in-memory high score.
func (s *Store) IsNew(candidate int) bool {
	return candidate > s.best
}

// Best returns the in-memory high score.
func (s *Store) Best() int {
	return s.best
}

// MemoryKV is an in-process KV, used when no durable storage is available.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get returns the value for key.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
