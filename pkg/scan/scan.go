// Package scan finds misspelled words in commit messages and rewrites them.
package scan

import (
	"strings"
	"unicode"
)

// scissorsMarker follows the comment character on git's scissors line.
// Everything below that line is discarded by git.
const scissorsMarker = " ------------------------ >8 ------------------------"

// Checker validates a single word against a dictionary.
type Checker interface {
	Check(word string) bool
}

// Ignorer reports words that must never be flagged.
type Ignorer interface {
	Has(word string) bool
}

// IsScissors reports whether line is git's scissors line for commentChar.
func IsScissors(line, commentChar string) bool {
	return strings.TrimSpace(line) == commentChar+scissorsMarker
}

// IsComment reports whether line is a comment line for commentChar.
func IsComment(line, commentChar string) bool {
	return commentChar != "" && strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), commentChar)
}

// StripComments removes comment lines and everything from the scissors line
// on.
//
// Args:
// text (string): The raw commit message.
// commentChar (string): Character that starts a comment line.
//
// Returns:
// string: The remaining lines joined with "\n".
func StripComments(text, commentChar string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if IsScissors(line, commentChar) {
			break
		}

		if IsComment(line, commentChar) {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// Options selects which tokens are checked.
//
// Fields:
// CheckAll: bool - Also check acronyms, tokens with digits and code-like
// tokens. Any token with letters is checked.
type Options struct {
	CheckAll bool
}

// FindMisspellings calls Options.FindMisspellings with the default options.
func FindMisspellings(text string, checker Checker, ignored Ignorer) []string {
	return Options{}.FindMisspellings(text, checker, ignored)
}

// ApplyFixes calls Options.ApplyFixes with the default options.
func ApplyFixes(text, commentChar string, fixes map[string]string) string {
	return Options{}.ApplyFixes(text, commentChar, fixes)
}

// FindMisspellings returns the distinct words of text that fail the checker
// and are not ignored, in order of first occurrence.
//
// Args:
// text (string): Message text with comments already removed.
// checker (Checker): Dictionary used to validate words.
// ignored (Ignorer): Words never reported. May be nil.
//
// Returns:
// []string: The misspelled words, or nil if there are none.
func (o Options) FindMisspellings(text string, checker Checker, ignored Ignorer) []string {
	var found []string
	seen := make(map[string]struct{})

	for _, tok := range Tokenize(text) {
		word, bad := o.misspelled(tok, checker, ignored)
		if !bad {
			continue
		}

		if _, dup := seen[word]; dup {
			continue
		}

		seen[word] = struct{}{}
		found = append(found, word)
	}

	return found
}

// misspelled returns the cleaned word of tok and whether it fails the
// checker. Hyphenated compounds fail if any part fails.
func (o Options) misspelled(tok Token, checker Checker, ignored Ignorer) (string, bool) {
	if !o.checkable(tok) {
		return "", false
	}

	word := normalizeWord(tok.Word)
	if isIgnored(ignored, word) {
		return word, false
	}

	for _, part := range wordParts(word) {
		if isIgnored(ignored, part) {
			continue
		}

		if !checker.Check(part) {
			return word, true
		}
	}

	return word, false
}

func isIgnored(ignored Ignorer, word string) bool {
	return ignored != nil && ignored.Has(word)
}

// ApplyFixes replaces every occurrence of each key of fixes with its value.
// Punctuation around a word, whitespace, line breaks, comment lines and the
// text below the scissors line are preserved.
//
// Args:
// text (string): The raw commit message.
// commentChar (string): Character that starts a comment line.
// fixes (map[string]string): Replacement for each misspelled word.
//
// Returns:
// string: The rewritten message.
func (o Options) ApplyFixes(text, commentChar string, fixes map[string]string) string {
	if len(fixes) == 0 {
		return text
	}

	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if IsScissors(line, commentChar) {
			break
		}

		if IsComment(line, commentChar) {
			continue
		}

		lines[i] = o.rewriteLine(line, fixes)
	}

	return strings.Join(lines, "\n")
}

// rewriteLine applies fixes to each field of line, copying whitespace
// through unchanged.
func (o Options) rewriteLine(line string, fixes map[string]string) string {
	var b strings.Builder
	b.Grow(len(line))

	start := -1

	for i, r := range line {
		if !unicode.IsSpace(r) {
			if start < 0 {
				start = i
			}

			continue
		}

		if start >= 0 {
			b.WriteString(o.rewriteField(line[start:i], fixes))
			start = -1
		}

		b.WriteRune(r)
	}

	if start >= 0 {
		b.WriteString(o.rewriteField(line[start:], fixes))
	}

	return b.String()
}

func (o Options) rewriteField(field string, fixes map[string]string) string {
	tok := splitToken(field)
	if !o.checkable(tok) {
		return field
	}

	replacement, ok := fixes[normalizeWord(tok.Word)]
	if !ok {
		return field
	}

	return tok.Prefix + replacement + tok.Suffix
}
