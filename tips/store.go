package tips

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Entry is one dated tip in the history file.
type Entry struct {
	Date string `json:"date"`
	Tip  string `json:"tip"`
}

type document struct {
	History []Entry `json:"history"`
}

// Store keeps the bounded tip history in a single JSON file. The whole file
// is read and rewritten on every mutation; concurrent writers are
// last-writer-wins, which is acceptable for this non-critical cache.
type Store struct {
	mu     sync.RWMutex
	logger *zap.Logger
	path   string
	size   int
	now    func() time.Time
}

// NewStore creates a Store writing to path, retaining at most size entries.
func NewStore(logger *zap.Logger, path string, size int) *Store {
	return &Store{
		logger: logger.Named("tips"),
		path:   path,
		size:   size,
		now:    time.Now,
	}
}

// Ensure creates the cache file with an empty history if it does not exist.
func (s *Store) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	return s.write(document{History: []Entry{}})
}

// History returns the stored entries, oldest first.
func (s *Store) History() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().History
}

// TodayTip returns the tip recorded for the current UTC calendar day, or ""
// if none. Only the most recently appended entry is considered.
func (s *Store) TodayTip() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.read().History
	if len(history) == 0 {
		return ""
	}
	last := history[len(history)-1]
	if last.Date == s.today() {
		return last.Tip
	}
	return ""
}

// Append records a tip under today's UTC date, evicting the oldest entries
// beyond the retention bound.
func (s *Store) Append(tip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.read()
	doc.History = append(doc.History, Entry{Date: s.today(), Tip: tip})
	if len(doc.History) > s.size {
		doc.History = doc.History[len(doc.History)-s.size:]
	}
	if err := s.write(doc); err != nil {
		return fmt.Errorf("failed to persist tip history: %w", err)
	}
	return nil
}

func (s *Store) today() string {
	return s.now().UTC().Format(dateLayout)
}

// read never fails: a missing or corrupt file yields an empty history, as the
// cache is reconstructible.
func (s *Store) read() document {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read cache file", zap.Error(err))
		}
		return document{History: []Entry{}}
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("Cache file is not valid JSON, starting fresh", zap.Error(err))
		return document{History: []Entry{}}
	}
	if doc.History == nil {
		doc.History = []Entry{}
	}
	return doc
}

func (s *Store) write(doc document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
