// Package prompt asks the user how to handle each misspelled word.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInterrupted is returned when the user aborts a prompt (ctrl+c in the
// picker).
var ErrInterrupted = errors.New("prompt interrupted")

// AnswerKind says what to do with a misspelled word.
type AnswerKind int

const (
	// Skip keeps the word as written.
	Skip AnswerKind = iota
	// Replace substitutes Answer.Text for the word.
	Replace
	// Ignore keeps the word and adds it to the ignore file.
	Ignore
)

// Answer is the user's decision for one word.
type Answer struct {
	Kind AnswerKind
	Text string
}

// Prompter asks for replacements and for the final confirmation.
type Prompter interface {
	Replace(word string, suggestions []string) (Answer, error)
	Confirm(question string) (bool, error)
}

// Line prompts on a line-oriented terminal.
type Line struct {
	in      *bufio.Reader
	printer *Printer
}

var _ Prompter = (*Line)(nil)

// NewLine returns a Line prompter reading answers from in and writing
// prompts to out.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), printer: NewPrinter(out)}
}

// Replace shows the suggestions for word and reads one answer. An empty
// line or end of input skips the word, a number picks that suggestion and
// "+" ignores the word from now on.
func (p *Line) Replace(word string, suggestions []string) (Answer, error) {
	p.printer.Linef(TagReplace, "'%s' - suggestions: %s", p.printer.Word(word), formatSuggestions(suggestions))
	p.printer.Printf("Enter replacement, suggestion number, + to ignore %s: ", p.printer.Dim("(or press ENTER to skip)"))

	input, err := p.readLine()
	if err != nil {
		return Answer{}, err
	}

	return parseAnswer(input, suggestions), nil
}

// Confirm asks a yes/no question. Only "n" or "no" declines; an empty
// answer or end of input accepts.
func (p *Line) Confirm(question string) (bool, error) {
	p.printer.Printf("%s [Y/n]: ", question)

	input, err := p.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(input) {
	case "n", "no":
		return false, nil
	}

	return true, nil
}

// readLine returns the next trimmed input line, or "" at end of input.
func (p *Line) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("prompt: read answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func formatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return "(none)"
	}

	numbered := make([]string, len(suggestions))
	for i, s := range suggestions {
		numbered[i] = fmt.Sprintf("%d) %s", i+1, s)
	}

	return strings.Join(numbered, ", ")
}

// parseAnswer maps a trimmed input line to an Answer.
func parseAnswer(input string, suggestions []string) Answer {
	switch input {
	case "":
		return Answer{Kind: Skip}
	case "+":
		return Answer{Kind: Ignore}
	}

	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(suggestions) {
		return Answer{Kind: Replace, Text: suggestions[n-1]}
	}

	return Answer{Kind: Replace, Text: input}
}
