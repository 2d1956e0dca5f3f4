// Package suggest keeps the event titles a user has entered before and
// offers them back as completions. The backing file is plain text, one
// title per line, so users can edit it by hand.
package suggest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is an append-mostly title list persisted to a text file. All
// methods are safe for concurrent use; a read racing a pending append
// sees either the old or the new list.
type Store struct {
	path string

	mu    sync.Mutex
	names []string
	seen  map[string]struct{}
}

// Open loads the store at path, creating an empty one when the file
// does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		seen: make(map[string]struct{}),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open suggestion store: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.names = append(s.names, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read suggestion store: %w", err)
	}
	return s, nil
}

// Append records a title and persists it immediately. Duplicates
// (case-insensitive) and blank titles are ignored.
func (s *Store) Append(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := s.seen[key]; ok {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create suggestion store dir: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open suggestion store: %w", err)
	}
	if _, err := fmt.Fprintln(f, name); err != nil {
		f.Close()
		return fmt.Errorf("append suggestion: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close suggestion store: %w", err)
	}

	s.seen[key] = struct{}{}
	s.names = append(s.names, name)
	return nil
}

// Names returns a snapshot of every stored title in insertion order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Suggest returns up to limit completions for query, best match first:
// case-insensitive prefix matches, then substring matches, then titles
// containing the query's characters in order. Ties keep insertion
// order. An empty query returns the most recent titles.
func (s *Store) Suggest(query string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	s.mu.Lock()
	names := make([]string, len(s.names))
	copy(names, s.names)
	s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		if len(names) > limit {
			names = names[len(names)-limit:]
		}
		// Most recent first.
		out := make([]string, 0, len(names))
		for i := len(names) - 1; i >= 0; i-- {
			out = append(out, names[i])
		}
		return out
	}

	var prefix, substr, subseq []string
	for _, name := range names {
		lower := strings.ToLower(name)
		switch {
		case strings.HasPrefix(lower, q):
			prefix = append(prefix, name)
		case strings.Contains(lower, q):
			substr = append(substr, name)
		case isSubsequence(q, lower):
			subseq = append(subseq, name)
		}
	}

	out := append(prefix, substr...)
	out = append(out, subseq...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// isSubsequence reports whether every rune of q appears in s in order.
func isSubsequence(q, s string) bool {
	runes := []rune(q)
	i := 0
	for _, r := range s {
		if i == len(runes) {
			return true
		}
		if r == runes[i] {
			i++
		}
	}
	return i == len(runes)
}
