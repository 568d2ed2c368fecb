// Package ignore holds the set of words that are never reported as
// misspellings.
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Set is a case-insensitive word set. The zero value is not usable; use New
// or Load.
type Set map[string]struct{}

// New returns a Set holding words.
func New(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Load reads one word per line from each path. Missing files are skipped.
// Blank lines and lines starting with '#' are ignored.
//
// Args:
// paths: ...string - Ignore files to read, in order.
//
// Returns:
// Set - Union of the words of every readable file.
// error - Error if an existing file cannot be read.
func Load(paths ...string) (Set, error) {
	s := New()

	for _, path := range paths {
		if path == "" {
			continue
		}

		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("ignore: open %s: %w", path, err)
		}

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			s.Add(line)
		}

		err = scanner.Err()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("ignore: read %s: %w", path, err)
		}
	}

	return s, nil
}

// Fold returns the lookup key for word. A Caser keeps state, so each call
// gets its own.
func Fold(word string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(word))
}

// Add inserts word and reports whether it was new.
func (s Set) Add(word string) bool {
	key := Fold(word)
	if key == "" {
		return false
	}
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}

// Has reports whether word is in the set, ignoring case.
func (s Set) Has(word string) bool {
	_, ok := s[Fold(word)]
	return ok
}

// Len returns the number of words in the set.
func (s Set) Len() int {
	return len(s)
}

// Append adds word to the ignore file at path, creating the file if needed.
func Append(path, word string) error {
	key := Fold(word)
	if key == "" {
		return nil
	}

	prefix := ""
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 && data[len(data)-1] != '\n' {
		prefix = "\n"
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("ignore: open %s: %w", path, err)
	}

	if _, err := fmt.Fprintf(f, "%s%s\n", prefix, key); err != nil {
		f.Close()
		return fmt.Errorf("ignore: write %s: %w", path, err)
	}

	return f.Close()
}
