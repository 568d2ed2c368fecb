// Package config loads the optional project configuration file and fills in
// defaults for everything it does not set.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashcracky/spellhook/pkg/structs"
	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultIgnoreFile is read from the working directory when no other
	// ignore file is configured.
	DefaultIgnoreFile = ".spellignore"

	DefaultLanguage    = "en_US"
	DefaultCommentChar = "#"
	DefaultSuggestions = 5
	DefaultMaxDistance = 2
)

// CandidateFiles lists the config file names looked up in the working
// directory, in order.
var CandidateFiles = []string{".spellhook.yaml", ".spellhook.yml", ".spellhook.toml"}

// Default returns a Config populated with built-in defaults.
func Default() *structs.Config {
	return &structs.Config{
		Language:    DefaultLanguage,
		IgnoreFile:  DefaultIgnoreFile,
		CommentChar: DefaultCommentChar,
		Suggestions: DefaultSuggestions,
		MaxDistance: DefaultMaxDistance,
		Prompt:      structs.PromptLine,
	}
}

// Load reads the project configuration.
//
// Args:
// dir: string - Directory searched for CandidateFiles when path is empty.
// path: string - Explicit config path; a missing explicit file is an error.
// binaryVersion: string - Running spellhook version, checked against min_version.
//
// Returns:
// *structs.Config - Configuration with defaults applied.
// string - Path of the config file that was read, empty when none was found.
// error - Error if the file cannot be read, decoded or validated.
func Load(dir, path, binaryVersion string) (*structs.Config, string, error) {
	cfg := Default()

	if path == "" {
		found, err := find(dir)
		if err != nil {
			return nil, "", err
		}
		path = found
	}

	base := dir
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, "", fmt.Errorf("config: decode %s: %w", path, err)
		}
		base = filepath.Dir(path)
	}

	applyDefaults(cfg)
	resolvePaths(cfg, base)

	if err := validate(cfg, binaryVersion); err != nil {
		return nil, "", fmt.Errorf("config: %w", err)
	}

	return cfg, path, nil
}

func find(dir string) (string, error) {
	for _, name := range CandidateFiles {
		candidate := filepath.Join(dir, name)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
	}
	return "", nil
}

func decode(path string, data []byte, cfg *structs.Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyDefaults restores defaults for zero values a config file may leave
// behind (for example an explicit empty string).
func applyDefaults(cfg *structs.Config) {
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.IgnoreFile == "" {
		cfg.IgnoreFile = DefaultIgnoreFile
	}
	if cfg.CommentChar == "" {
		cfg.CommentChar = DefaultCommentChar
	}
	if cfg.Suggestions <= 0 {
		cfg.Suggestions = DefaultSuggestions
	}
	if cfg.MaxDistance <= 0 {
		cfg.MaxDistance = DefaultMaxDistance
	}
	if cfg.Prompt == "" {
		cfg.Prompt = structs.PromptLine
	}
}

func resolvePaths(cfg *structs.Config, base string) {
	cfg.IgnoreFile = resolve(base, cfg.IgnoreFile)
	cfg.Dictionary.Aff = resolve(base, cfg.Dictionary.Aff)
	cfg.Dictionary.Dic = resolve(base, cfg.Dictionary.Dic)
	for i := range cfg.Dictionary.Dirs {
		cfg.Dictionary.Dirs[i] = resolve(base, cfg.Dictionary.Dirs[i])
	}
	for i := range cfg.Dictionary.Words {
		cfg.Dictionary.Words[i] = resolve(base, cfg.Dictionary.Words[i])
	}
}

func resolve(base, p string) string {
	if p == "" || base == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func validate(cfg *structs.Config, binaryVersion string) error {
	if n := len([]rune(cfg.CommentChar)); n != 1 {
		return fmt.Errorf("comment_char must be a single character, got %q", cfg.CommentChar)
	}

	switch cfg.Prompt {
	case structs.PromptLine, structs.PromptTUI:
	default:
		return fmt.Errorf("prompt must be %q or %q, got %q", structs.PromptLine, structs.PromptTUI, cfg.Prompt)
	}

	if (cfg.Dictionary.Aff == "") != (cfg.Dictionary.Dic == "") {
		return fmt.Errorf("dictionary.aff and dictionary.dic must be set together")
	}

	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}

	return checkMinVersion(cfg.MinVersion, binaryVersion)
}

// checkMinVersion fails when the config asks for a newer spellhook than the
// one running. Development builds with an unparsable version are not checked.
func checkMinVersion(minVersion, binaryVersion string) error {
	if minVersion == "" {
		return nil
	}

	want, err := version.NewVersion(minVersion)
	if err != nil {
		return fmt.Errorf("invalid min_version %q: %w", minVersion, err)
	}

	have, err := version.NewVersion(binaryVersion)
	if err != nil {
		return nil
	}

	if have.LessThan(want) {
		return fmt.Errorf("this project requires spellhook >= %s, running %s", want, have)
	}
	return nil
}
