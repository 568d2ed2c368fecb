// Package dictionary wraps a Hunspell dictionary: word validation and
// spelling suggestions.
package dictionary

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"github.com/client9/gospell"
	"github.com/hashcracky/spellhook/pkg/structs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrNotFound is returned by Locate when no dictionary files exist for the
// requested language.
var ErrNotFound = errors.New("dictionary not found")

// EmbeddedPath names the bundled dictionary in place of a .dic path.
const EmbeddedPath = "(embedded en_US)"

var (
	//go:embed assets/en_US.aff
	enUSAff []byte

	//go:embed assets/en_US.dic
	enUSDic []byte
)

// systemDirs are the usual Hunspell and MySpell install locations.
var systemDirs = []string{
	"/usr/share/hunspell",
	"/usr/share/myspell",
	"/usr/share/myspell/dicts",
	"/usr/local/share/hunspell",
	"/opt/homebrew/share/hunspell",
	"/Library/Spelling",
}

// Options tunes suggestion generation.
type Options struct {
	MaxSuggestions int
	MaxDistance    int
}

// Dictionary validates words and suggests corrections. It is safe for
// concurrent use once loaded; AddWords must not race with lookups.
type Dictionary struct {
	speller *gospell.GoSpell
	opts    Options

	mu    sync.Mutex
	index map[int][]entry
}

// entry is one suggestion candidate: its folded lookup key and the form
// to present.
type entry struct {
	key  string
	form string
}

// New builds a Dictionary from Hunspell affix and dictionary contents.
func New(aff, dic io.Reader, opts Options) (*Dictionary, error) {
	speller, err := gospell.NewGoSpellReader(aff, dic)
	if err != nil {
		return nil, fmt.Errorf("dictionary: parse: %w", err)
	}

	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = 5
	}

	if opts.MaxDistance <= 0 {
		opts.MaxDistance = 2
	}

	return &Dictionary{speller: speller, opts: opts}, nil
}

// Open builds a Dictionary from Hunspell .aff and .dic files.
func Open(affPath, dicPath string, opts Options) (*Dictionary, error) {
	aff, err := os.Open(affPath)
	if err != nil {
		return nil, fmt.Errorf("dictionary: %w", err)
	}
	defer aff.Close()

	dic, err := os.Open(dicPath)
	if err != nil {
		return nil, fmt.Errorf("dictionary: %w", err)
	}
	defer dic.Close()

	return New(aff, dic, opts)
}

// Embedded builds the compact en_US dictionary compiled into the binary.
func Embedded(opts Options) (*Dictionary, error) {
	return New(bytes.NewReader(enUSAff), bytes.NewReader(enUSDic), opts)
}

// hasEmbedded reports whether lang is served by the bundled dictionary.
func hasEmbedded(lang string) bool {
	switch strings.ReplaceAll(lang, "-", "_") {
	case "en_US", "en":
		return true
	}
	return false
}

// Load locates and opens the dictionary described by cfg and adds its
// personal word lists.
//
// Args:
// cfg: *structs.Config - Application configuration.
//
// Returns:
// *Dictionary - The loaded dictionary.
// string - Path of the .dic file in use.
// error - ErrNotFound (wrapped) when no dictionary exists, or a read error.
//
// An en_US lookup that finds no installed files falls back to the bundled
// dictionary; its path is reported as EmbeddedPath.
func Load(cfg *structs.Config) (*Dictionary, string, error) {
	opts := Options{
		MaxSuggestions: cfg.Suggestions,
		MaxDistance:    cfg.MaxDistance,
	}

	var (
		d        *Dictionary
		err      error
		embedded bool
	)

	affPath, dicPath := cfg.Dictionary.Aff, cfg.Dictionary.Dic
	if affPath == "" {
		affPath, dicPath, err = Locate(cfg.Language, cfg.Dictionary.Dirs)
		if err != nil {
			if !errors.Is(err, ErrNotFound) || !hasEmbedded(cfg.Language) {
				return nil, "", err
			}
			embedded = true
		}
	}

	if embedded {
		d, err = Embedded(opts)
		dicPath = EmbeddedPath
	} else {
		d, err = Open(affPath, dicPath, opts)
	}
	if err != nil {
		return nil, "", err
	}

	for _, path := range cfg.Dictionary.Words {
		if err := d.AddWordFile(path); err != nil {
			return nil, "", err
		}
	}

	return d, dicPath, nil
}

// Locate finds <lang>.aff and <lang>.dic in dirs, then in $DICPATH, then in
// the system dictionary directories.
func Locate(lang string, dirs []string) (string, string, error) {
	search := append([]string{}, dirs...)

	if dicPath := os.Getenv("DICPATH"); dicPath != "" {
		search = append(search, filepath.SplitList(dicPath)...)
	}

	search = append(search, systemDirs...)

	if home, err := os.UserHomeDir(); err == nil {
		search = append(search, filepath.Join(home, "Library", "Spelling"))
	}

	for _, dir := range search {
		if dir == "" {
			continue
		}

		aff := filepath.Join(dir, lang+".aff")
		dic := filepath.Join(dir, lang+".dic")

		if isFile(aff) && isFile(dic) {
			return aff, dic, nil
		}
	}

	return "", "", fmt.Errorf("%w: %s (searched %s)", ErrNotFound, lang, strings.Join(search, ", "))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Check reports whether word is spelled correctly.
func (d *Dictionary) Check(word string) bool {
	return d.speller.Spell(norm.NFC.String(word))
}

// AddWords adds words to the dictionary together with their capitalized
// and upper-case forms.
func (d *Dictionary) AddWords(words ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, word := range words {
		word = norm.NFC.String(strings.TrimSpace(word))
		if word == "" {
			continue
		}

		for _, form := range caseForms(word) {
			d.speller.Dict[form] = struct{}{}
		}
	}

	d.index = nil
}

// AddWordFile adds one word per line from path. Blank lines and lines
// starting with '#' are skipped.
func (d *Dictionary) AddWordFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}
	defer f.Close()

	var words []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("dictionary: read %s: %w", path, err)
	}

	d.AddWords(words...)

	return nil
}

// Suggest returns dictionary words close to word, nearest first. Words with
// equal distance are sorted alphabetically. A capitalized word gets
// capitalized suggestions. The result is empty when nothing is close enough.
func (d *Dictionary) Suggest(word string) []string {
	key := fold(norm.NFC.String(word))
	if key == "" {
		return nil
	}

	index := d.candidates()
	size := utf8.RuneCountInString(key)

	type scored struct {
		entry
		dist int
	}

	var found []scored

	for n := size - d.opts.MaxDistance; n <= size+d.opts.MaxDistance; n++ {
		for _, e := range index[n] {
			if e.key == key {
				continue
			}

			dist := levenshtein.Distance(key, e.key, nil)
			if dist <= d.opts.MaxDistance {
				found = append(found, scored{entry: e, dist: dist})
			}
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].key < found[j].key
	})

	if len(found) > d.opts.MaxSuggestions {
		found = found[:d.opts.MaxSuggestions]
	}

	capitalize := isCapitalized(word)
	suggestions := make([]string, 0, len(found))

	for _, s := range found {
		form := s.form
		if capitalize && !isCapitalized(form) {
			form = cases.Title(language.Und, cases.NoLower).String(form)
		}
		suggestions = append(suggestions, form)
	}

	return suggestions
}

// candidates returns the suggestion index, grouped by key length in runes.
// Each folded key appears once; its lower-case dictionary form is preferred
// so that proper nouns keep their capital.
func (d *Dictionary) candidates() map[int][]entry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.index != nil {
		return d.index
	}

	forms := make(map[string]string, len(d.speller.Dict)/2)

	for word := range d.speller.Dict {
		if isUpper(word) {
			continue
		}

		key := fold(word)

		current, ok := forms[key]
		if !ok || (current != key && word == key) {
			forms[key] = word
		}
	}

	index := make(map[int][]entry)

	for key, form := range forms {
		n := utf8.RuneCountInString(key)
		index[n] = append(index[n], entry{key: key, form: form})
	}

	d.index = index

	return index
}

func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// caseForms returns word plus the capitalized and upper-case forms a
// lower-case word can take at the start of a sentence or in a heading.
func caseForms(word string) []string {
	if word != fold(word) {
		return []string{word}
	}

	return []string{
		word,
		cases.Title(language.Und, cases.NoLower).String(word),
		cases.Upper(language.Und).String(word),
	}
}

func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// isUpper reports whether s has more than one letter and no lower-case
// letter.
func isUpper(s string) bool {
	if utf8.RuneCountInString(s) < 2 {
		return false
	}

	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
	}

	return true
}
