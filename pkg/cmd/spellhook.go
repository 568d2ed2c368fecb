// Package cmd wires the spellhook command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/cppforlife/cobrautil"
	"github.com/hashcracky/spellhook/pkg/hook"
	"github.com/hashcracky/spellhook/pkg/prompt"
	"github.com/hashcracky/spellhook/pkg/structs"
	"github.com/spf13/cobra"
)

type SpellhookOptions struct {
	*GlobalOptions

	TUI           bool
	Strict        bool
	NoInteractive bool

	// OpenTerminal returns the terminal used for prompts.
	OpenTerminal func() (*prompt.Terminal, bool)
}

func NewSpellhookOptions(global *GlobalOptions) *SpellhookOptions {
	return &SpellhookOptions{
		GlobalOptions: global,
		OpenTerminal:  prompt.OpenTerminal,
	}
}

func NewDefaultSpellhookCmd(version string) *cobra.Command {
	return NewSpellhookCmd(NewSpellhookOptions(NewGlobalOptions(version)))
}

func NewSpellhookCmd(o *SpellhookOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spellhook FILE",
		Version: o.Version,
		Short:   "spellhook checks the spelling of a git commit message",
		Long: `spellhook checks the spelling of a git commit message.

Git passes the commit message file as the only argument of the commit-msg hook.
Misspelled words can be replaced, skipped or added to the ignore file. Install
the hook with 'spellhook install'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error { return o.Run(args[0]) },
	}

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.DisableAutoGenTag = true

	o.BindFlags(cmd)
	cmd.Flags().BoolVar(&o.TUI, "tui", false, "Pick replacements from an interactive list")
	cmd.Flags().BoolVar(&o.Strict, "strict", false, "Block the commit when misspellings cannot be resolved")
	cmd.Flags().BoolVar(&o.NoInteractive, "no-interactive", false, "Report misspellings without prompting")

	cmd.SetIn(o.Stdin)
	cmd.SetOut(o.Stdout)
	cmd.SetErr(o.Stderr)

	cmd.AddCommand(NewScanCmd(NewScanOptions(o.GlobalOptions)))
	cmd.AddCommand(NewInstallCmd(NewInstallOptions(o.GlobalOptions)))
	cmd.AddCommand(NewVersionCmd(NewVersionOptions(o.GlobalOptions)))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.ReconfigureLeafCmds(cobrautil.DisallowExtraArgs),
		cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}

// Run checks the commit message at path.
func (o *SpellhookOptions) Run(path string) error {
	e, err := o.loadEnv()
	if err != nil {
		return err
	}

	cfg := e.cfg
	if o.TUI {
		cfg.Prompt = structs.PromptTUI
	}
	cfg.Strict = cfg.Strict || o.Strict
	cfg.NonInteractive = cfg.NonInteractive || o.NoInteractive

	// An unreadable message fails the hook even when spell checking is
	// skipped below.
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read commit message: %w", err)
	}
	f.Close()

	out := prompt.NewPrinter(o.Stderr)

	dict, err := e.loadDictionary()
	if err != nil {
		if cfg.Strict {
			return fmt.Errorf("spell check unavailable: %w", err)
		}
		out.Linef(prompt.TagWarning, "Spell check skipped: %s", err)
		return nil
	}

	opts := hook.Options{
		Path:    path,
		Config:  cfg,
		Speller: dict,
		Ignored: e.ignored,
		Stderr:  o.Stderr,
		Logger:  e.logger,
	}

	if !cfg.NonInteractive {
		term, ok := o.OpenTerminal()
		if ok {
			defer term.Close()
			opts.Prompter = newPrompter(cfg, term)
		} else {
			e.logger.Debug("no terminal available, prompts disabled")
		}
	}

	_, err = hook.Run(opts)
	return err
}

func newPrompter(cfg *structs.Config, term *prompt.Terminal) prompt.Prompter {
	if cfg.Prompt == structs.PromptTUI {
		return prompt.NewTUI(term.In, term.Out)
	}
	return prompt.NewLine(term.In, term.Out)
}
