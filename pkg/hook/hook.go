// Package hook runs the commit-msg spell check: scan the message, prompt
// for replacements, rewrite the file and confirm what is left.
package hook

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hashcracky/spellhook/pkg/ignore"
	"github.com/hashcracky/spellhook/pkg/prompt"
	"github.com/hashcracky/spellhook/pkg/scan"
	"github.com/hashcracky/spellhook/pkg/structs"
	"github.com/k14s/difflib"
)

// ErrAborted means the commit must be blocked. The reason has already been
// reported to the user.
var ErrAborted = errors.New("commit aborted due to unresolved spelling issues")

// Speller validates words and suggests corrections.
type Speller interface {
	scan.Checker
	Suggest(word string) []string
}

// Options carries everything Run needs.
//
// Fields:
// Path: string - Commit message file.
// Config: *structs.Config - Application configuration.
// Speller: Speller - Dictionary used for checking and suggestions.
// Ignored: ignore.Set - Words never reported; grows when the user ignores a word.
// Prompter: prompt.Prompter - Interactive prompts, nil when no terminal is available.
// Stderr: io.Writer - Destination of the report.
// Logger: *slog.Logger - Diagnostics, may be nil.
type Options struct {
	Path     string
	Config   *structs.Config
	Speller  Speller
	Ignored  ignore.Set
	Prompter prompt.Prompter
	Stderr   io.Writer
	Logger   *slog.Logger
}

// Result summarizes a run.
type Result struct {
	Misspellings []string
	Fixes        map[string]string
	Ignored      []string
	Remaining    []string
}

// Run checks the commit message at opts.Path.
//
// Args:
// opts: Options - Inputs of the run.
//
// Returns:
// Result - What was found, fixed and left over.
// error - Read and write failures, or ErrAborted when the commit must be blocked.
func Run(opts Options) (Result, error) {
	var res Result

	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Ignored == nil {
		opts.Ignored = ignore.New()
	}

	out := prompt.NewPrinter(opts.Stderr)

	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return res, fmt.Errorf("failed to read commit message: %w", err)
	}

	original := string(data)
	message := scan.StripComments(original, cfg.CommentChar)
	check := scan.Options{CheckAll: cfg.CheckAll}

	res.Misspellings = check.FindMisspellings(message, opts.Speller, opts.Ignored)
	logger.Debug("scanned commit message", "path", opts.Path, "misspellings", len(res.Misspellings))

	if len(res.Misspellings) == 0 {
		return res, nil
	}

	out.Linef(prompt.TagSpellcheck, "Found possible spelling mistakes:")
	for _, word := range res.Misspellings {
		out.Item(word)
	}

	if opts.Prompter == nil {
		res.Remaining = res.Misspellings
		return res, nonInteractive(out, cfg)
	}

	res.Fixes, res.Ignored, err = collectFixes(opts, res.Misspellings, logger)
	if err != nil {
		if errors.Is(err, prompt.ErrInterrupted) {
			out.Linef(prompt.TagCancelled, "Commit aborted.")
			return res, ErrAborted
		}
		return res, err
	}

	if len(res.Fixes) > 0 {
		updated := check.ApplyFixes(original, cfg.CommentChar, res.Fixes)
		if err := writeMessage(opts.Path, updated); err != nil {
			return res, err
		}

		out.Linef(prompt.TagDiff, "Commit message updated:")
		out.Printf("%s\n", difflib.PPDiff(
			strings.Split(message, "\n"),
			strings.Split(scan.StripComments(updated, cfg.CommentChar), "\n"),
		))
	}

	data, err = os.ReadFile(opts.Path)
	if err != nil {
		return res, fmt.Errorf("failed to re-read commit message: %w", err)
	}

	res.Remaining = check.FindMisspellings(scan.StripComments(string(data), cfg.CommentChar), opts.Speller, opts.Ignored)
	if len(res.Remaining) == 0 {
		return res, nil
	}

	out.Printf("\n")
	out.Linef(prompt.TagWarning, "Spelling mistakes still found after editing:")
	for _, word := range res.Remaining {
		out.Item(word)
	}

	proceed, err := opts.Prompter.Confirm("Do you want to proceed with the commit?")
	if err != nil {
		return res, err
	}

	if !proceed {
		out.Linef(prompt.TagCancelled, "Commit aborted due to unresolved spelling issues.")
		return res, ErrAborted
	}

	return res, nil
}

// collectFixes prompts once per misspelled word and returns the chosen
// replacements and the words the user asked to ignore.
func collectFixes(opts Options, words []string, logger *slog.Logger) (map[string]string, []string, error) {
	fixes := make(map[string]string)
	var ignored []string

	for _, word := range words {
		answer, err := opts.Prompter.Replace(word, opts.Speller.Suggest(word))
		if err != nil {
			return nil, nil, err
		}

		switch answer.Kind {
		case prompt.Replace:
			if answer.Text != word {
				fixes[word] = answer.Text
			}
		case prompt.Ignore:
			opts.Ignored.Add(word)
			ignored = append(ignored, word)

			if err := ignore.Append(opts.Config.IgnoreFile, word); err != nil {
				logger.Warn("could not save ignored word", "word", word, "file", opts.Config.IgnoreFile, "error", err)
			}
		}
	}

	return fixes, ignored, nil
}

// nonInteractive reports the outcome when nobody can answer prompts.
func nonInteractive(out *prompt.Printer, cfg *structs.Config) error {
	if cfg.Strict {
		out.Linef(prompt.TagCancelled, "Commit aborted due to unresolved spelling issues.")
		return ErrAborted
	}

	out.Linef(prompt.TagWarning, "No terminal available for corrections; commit allowed.")
	return nil
}

func writeMessage(path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write commit message: %w", err)
	}
	return nil
}
