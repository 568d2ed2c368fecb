package scan

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// codeRunes mark a word as an identifier, path, address or expression rather
// than prose.
const codeRunes = "/\\_@:=<>{}[]|~$%.*+^&"

// affixCodeRunes next to a word mark it as part of inline code, a path, a
// version or a variable.
const affixCodeRunes = "`/\\_@$="

// Token is one whitespace-separated field of a message, split around the run
// of text between its first and last letter.
type Token struct {
	Prefix string
	Word   string
	Suffix string
}

// String reassembles the token.
func (t Token) String() string {
	return t.Prefix + t.Word + t.Suffix
}

// Tokenize splits a line on whitespace and separates leading and trailing
// non-letter characters from each field.
//
// Args:
// line (string): The text to split.
//
// Returns:
// []Token: The tokens in order. Fields without letters have an empty Word.
func Tokenize(line string) []Token {
	fields := strings.Fields(line)
	tokens := make([]Token, 0, len(fields))

	for _, field := range fields {
		tokens = append(tokens, splitToken(field))
	}

	return tokens
}

// splitToken separates leading and trailing non-letter characters from a
// single field.
//
// Args:
// field (string): A field without whitespace.
//
// Returns:
// Token: The split field. Word is empty when the field has no letters.
func splitToken(field string) Token {
	word := strings.TrimLeftFunc(field, isNotLetter)
	prefix := field[:len(field)-len(word)]

	trimmed := strings.TrimRightFunc(word, isNotLetter)
	suffix := word[len(trimmed):]

	return Token{Prefix: prefix, Word: trimmed, Suffix: suffix}
}

func isNotLetter(r rune) bool {
	return !unicode.IsLetter(r)
}

// CleanWord strips leading and trailing non-letter characters from s and
// normalizes it for dictionary lookup.
//
// Args:
// s (string): A raw token.
//
// Returns:
// string: The cleaned word, or "" if s contains no letters.
func CleanWord(s string) string {
	return normalizeWord(splitToken(s).Word)
}

// normalizeWord composes the word to NFC and replaces typographic
// apostrophes with ASCII ones.
func normalizeWord(s string) string {
	if s == "" {
		return s
	}

	s = norm.NFC.String(s)

	return strings.Map(
		func(r rune) rune {
			if r == '’' || r == 'ʼ' || r == '‘' {
				return '\''
			}

			return r
		},
		s,
	)
}

// IsCheckable reports whether a cleaned word reads as prose. Words carrying
// digits or code punctuation, and all-caps acronyms, are not checked.
//
// Args:
// word (string): A cleaned word.
//
// Returns:
// bool: True if the word should be spell checked.
func IsCheckable(word string) bool {
	if word == "" {
		return false
	}

	for _, r := range word {
		if unicode.IsDigit(r) || strings.ContainsRune(codeRunes, r) {
			return false
		}
	}

	return !isAcronym(word)
}

// checkable extends IsCheckable with token context, so that "`name`",
// "v2", "2nd" and "/usr" are not checked. With CheckAll only the letter
// test remains.
func (o Options) checkable(tok Token) bool {
	if o.CheckAll {
		return tok.Word != ""
	}

	if isCodeAffix(tok.Prefix) || isCodeAffix(tok.Suffix) {
		return false
	}

	return IsCheckable(tok.Word)
}

func isCodeAffix(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) || strings.ContainsRune(affixCodeRunes, r) {
			return true
		}
	}

	return false
}

// isAcronym reports whether s has more than one letter and all of them are
// upper case.
func isAcronym(s string) bool {
	if utf8.RuneCountInString(s) < 2 {
		return false
	}

	letters := 0

	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}

		if !unicode.IsUpper(r) {
			return false
		}

		letters++
	}

	return letters > 1
}

// wordParts splits a hyphenated compound into its non-empty parts.
func wordParts(word string) []string {
	if !strings.Contains(word, "-") {
		return []string{word}
	}

	var parts []string

	for _, p := range strings.Split(word, "-") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return parts
}
