package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
)

// indexedLine represents a single input line tagged with its sequence index.
//
// Args:
// index: int - Sequential index of the line in the overall input.
// text: string - Line text without trailing newline.
// skip: bool - True for comment lines, which produce no result.
type indexedLine struct {
	index int
	text  string
	skip  bool
}

// indexedResult represents the misspellings of one input line tagged with
// its sequence index.
//
// Args:
// index: int - Sequential index of the line in the overall input.
// words: []string - Misspelled words. Empty means the line is clean.
type indexedResult struct {
	index int
	words []string
}

// StreamOptions configures ProcessStream.
//
// Args:
// Workers: int - Number of checking goroutines; values below one use GOMAXPROCS.
// CommentChar: string - Lines starting with it are skipped. Empty disables skipping.
// CheckAll: bool - Check every token with letters; see Options.
type StreamOptions struct {
	Workers     int
	CommentChar string
	CheckAll    bool
}

// ProcessStream reads lines from r, checks them on a worker pool, and writes
// one "N: word, word" line per flagged input line to w while preserving
// input order.
//
// Args:
// ctx: context.Context - Stops reading when cancelled.
// r: io.Reader - Input, one message line per line.
// w: io.Writer - Report destination.
// checker: Checker - Dictionary shared by all workers; must be safe for concurrent reads.
// ignored: Ignorer - Words never reported; must be safe for concurrent reads.
// opts: StreamOptions - Worker count and comment handling.
//
// Returns:
// int - Number of input lines with misspellings.
// error - Any error encountered while reading, writing or on cancellation.
func ProcessStream(ctx context.Context, r io.Reader, w io.Writer, checker Checker, ignored Ignorer, opts StreamOptions) (int, error) {
	workerCount := opts.Workers
	if workerCount < 1 {
		workerCount = runtime.GOMAXPROCS(0)
	}

	if workerCount < 1 {
		workerCount = 1
	}

	reader := bufio.NewReaderSize(r, 1<<16)
	writer := bufio.NewWriter(w)

	inputCh := make(chan indexedLine, workerCount*2)
	resultCh := make(chan indexedResult, workerCount*2)

	check := Options{CheckAll: opts.CheckAll}

	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for line := range inputCh {
				var words []string
				if !line.skip {
					words = check.FindMisspellings(line.text, checker, ignored)
				}

				resultCh <- indexedResult{
					index: line.index,
					words: words,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	readErrCh := make(chan error, 1)

	go func() {
		defer close(inputCh)
		readErrCh <- feedLines(ctx, reader, inputCh, opts.CommentChar)
	}()

	flagged := 0
	nextIndexToWrite := 0
	pending := make(map[int]indexedResult)

	var writeErr error

	for res := range resultCh {
		pending[res.index] = res

		for {
			nextRes, exists := pending[nextIndexToWrite]
			if !exists {
				break
			}

			delete(pending, nextIndexToWrite)

			if len(nextRes.words) > 0 {
				flagged++

				if writeErr == nil {
					_, writeErr = fmt.Fprintf(writer, "%d: %s\n", nextIndexToWrite+1, strings.Join(nextRes.words, ", "))
				}
			}

			nextIndexToWrite++
		}
	}

	if err := <-readErrCh; err != nil {
		return flagged, err
	}

	if writeErr != nil {
		return flagged, fmt.Errorf("failed to write output: %w", writeErr)
	}

	if err := writer.Flush(); err != nil {
		return flagged, fmt.Errorf("failed to flush output: %w", err)
	}

	return flagged, nil
}

// feedLines sends every line of reader to inputCh until EOF or
// cancellation.
func feedLines(ctx context.Context, reader *bufio.Reader, inputCh chan<- indexedLine, commentChar string) error {
	readIndex := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, readErr := reader.ReadString('\n')

		if len(raw) > 0 {
			text := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

			select {
			case inputCh <- indexedLine{index: readIndex, text: text, skip: IsComment(text, commentChar)}:
			case <-ctx.Done():
				return ctx.Err()
			}

			readIndex++
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}

			return fmt.Errorf("error reading input: %w", readErr)
		}
	}
}
