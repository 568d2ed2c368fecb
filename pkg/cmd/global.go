package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"
	"github.com/hashcracky/spellhook/pkg/config"
	"github.com/hashcracky/spellhook/pkg/dictionary"
	"github.com/hashcracky/spellhook/pkg/hook"
	"github.com/hashcracky/spellhook/pkg/ignore"
	"github.com/hashcracky/spellhook/pkg/prompt"
	"github.com/hashcracky/spellhook/pkg/structs"
	"github.com/spf13/cobra"
)

// ErrMisspelled is returned by scan when at least one line was flagged.
var ErrMisspelled = errors.New("misspellings found")

// IsReported reports whether err was already explained to the user, so
// only the exit code is left to set.
func IsReported(err error) bool {
	return errors.Is(err, hook.ErrAborted) || errors.Is(err, ErrMisspelled)
}

// ReportError writes err to w as an "[ERROR]" line unless it was already
// reported.
func ReportError(w io.Writer, err error) {
	if err == nil || IsReported(err) {
		return
	}
	prompt.NewPrinter(w).Linef(prompt.TagError, "%s", uierrs.NewMultiLineError(err))
}

// GlobalOptions are shared by every command.
type GlobalOptions struct {
	Version    string
	ConfigPath string
	IgnoreFile string
	Language   string
	DictDirs   []string
	CheckAll   bool
	Debug      bool

	// WorkDir is searched for config files; empty means the process
	// working directory.
	WorkDir string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewGlobalOptions returns options bound to the process streams.
func NewGlobalOptions(version string) *GlobalOptions {
	return &GlobalOptions{
		Version: version,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// BindFlags registers the shared flags on cmd as persistent flags.
func (o *GlobalOptions) BindFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "", "Config file (default: .spellhook.yaml, .spellhook.yml or .spellhook.toml in the working directory)")
	cmd.PersistentFlags().StringVar(&o.IgnoreFile, "ignore-file", "", "File of words to ignore, one per line (default: .spellignore)")
	cmd.PersistentFlags().StringVarP(&o.Language, "lang", "l", "", "Hunspell dictionary name (default: en_US)")
	cmd.PersistentFlags().StringArrayVar(&o.DictDirs, "dict-dir", nil, "Directory searched for dictionaries (can be specified multiple times)")
	cmd.PersistentFlags().BoolVar(&o.CheckAll, "check-all", false, "Also check acronyms, words with digits and code-like tokens")
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
}

// env is what a command needs to check words.
type env struct {
	cfg     *structs.Config
	logger  *slog.Logger
	ignored ignore.Set
}

// loadEnv reads config, applies flag overrides and loads the ignore set.
func (o *GlobalOptions) loadEnv() (*env, error) {
	dir := o.WorkDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}

	cfg, path, err := config.Load(dir, o.ConfigPath, o.Version)
	if err != nil {
		return nil, err
	}

	o.applyFlags(cfg)

	logger := o.newLogger(cfg.Debug)
	logger.Debug("configuration loaded", "file", path, "language", cfg.Language, "ignore_file", cfg.IgnoreFile)

	ignored, err := ignore.Load(cfg.IgnoreFile)
	if err != nil {
		return nil, err
	}
	for _, word := range cfg.Ignore {
		ignored.Add(word)
	}
	logger.Debug("ignore words loaded", "count", ignored.Len())

	return &env{cfg: cfg, logger: logger, ignored: ignored}, nil
}

func (o *GlobalOptions) applyFlags(cfg *structs.Config) {
	if o.IgnoreFile != "" {
		cfg.IgnoreFile = o.IgnoreFile
	}
	if o.Language != "" {
		cfg.Language = o.Language
	}
	if len(o.DictDirs) > 0 {
		cfg.Dictionary.Dirs = append(append([]string{}, o.DictDirs...), cfg.Dictionary.Dirs...)
	}
	cfg.CheckAll = cfg.CheckAll || o.CheckAll
	cfg.Debug = cfg.Debug || o.Debug
}

func (o *GlobalOptions) newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(o.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadDictionary opens the configured dictionary.
func (e *env) loadDictionary() (*dictionary.Dictionary, error) {
	d, dicPath, err := dictionary.Load(e.cfg)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("dictionary loaded", "dic", dicPath)

	return d, nil
}
