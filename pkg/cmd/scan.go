package cmd

import (
	"context"

	"github.com/hashcracky/spellhook/pkg/scan"
	"github.com/spf13/cobra"
)

type ScanOptions struct {
	*GlobalOptions

	Workers int
}

func NewScanOptions(global *GlobalOptions) *ScanOptions {
	return &ScanOptions{GlobalOptions: global}
}

func NewScanCmd(o *ScanOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Check text from stdin and report misspelled words per line",
		RunE:  func(c *cobra.Command, _ []string) error { return o.Run(c.Context()) },
	}
	cmd.Flags().IntVarP(&o.Workers, "workers", "w", 0, "Number of checking goroutines (default: config value or GOMAXPROCS)")
	return cmd
}

// Run reads stdin and writes "LINE: word, word" for every flagged line.
func (o *ScanOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := o.loadEnv()
	if err != nil {
		return err
	}

	dict, err := e.loadDictionary()
	if err != nil {
		return err
	}

	workers := e.cfg.Workers
	if o.Workers > 0 {
		workers = o.Workers
	}

	flagged, err := scan.ProcessStream(ctx, o.Stdin, o.Stdout, dict, e.ignored, scan.StreamOptions{
		Workers:     workers,
		CommentChar: e.cfg.CommentChar,
		CheckAll:    e.cfg.CheckAll,
	})
	if err != nil {
		return err
	}

	e.logger.Debug("scan finished", "flagged_lines", flagged, "workers", workers)

	if flagged > 0 {
		return ErrMisspelled
	}
	return nil
}
