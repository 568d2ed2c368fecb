// Package structs contains the model used by the application
package structs

// Prompt modes accepted by Config.Prompt.
const (
	PromptLine = "line"
	PromptTUI  = "tui"
)

// Config holds all configuration options for the spellhook application.
//
// Values are filled in three layers: built-in defaults, the optional project
// config file, then command-line flags.
//
// Fields:
// MinVersion: string - Oldest spellhook version allowed to read this config.
// Language: string - Hunspell dictionary base name (for example, en_US).
// Dictionary: DictionaryConfig - Dictionary lookup settings.
// IgnoreFile: string - Path to the ignore-word file.
// Ignore: []string - Additional words never reported.
// CommentChar: string - Leading character of commit message comment lines.
// Suggestions: int - Maximum number of suggestions offered per word.
// MaxDistance: int - Maximum edit distance of a suggestion.
// Prompt: string - Prompt mode, PromptLine or PromptTUI.
// Strict: bool - Block the commit when issues cannot be resolved interactively.
// NonInteractive: bool - Never prompt, only report.
// CheckAll: bool - Also check acronyms, words with digits and code-like tokens.
// Workers: int - Worker count for stream scanning; zero means GOMAXPROCS.
// Debug: bool - Enable debug logging.
type Config struct {
	MinVersion     string           `yaml:"min_version" toml:"min_version"`
	Language       string           `yaml:"language" toml:"language"`
	Dictionary     DictionaryConfig `yaml:"dictionary" toml:"dictionary"`
	IgnoreFile     string           `yaml:"ignore_file" toml:"ignore_file"`
	Ignore         []string         `yaml:"ignore" toml:"ignore"`
	CommentChar    string           `yaml:"comment_char" toml:"comment_char"`
	Suggestions    int              `yaml:"suggestions" toml:"suggestions"`
	MaxDistance    int              `yaml:"max_distance" toml:"max_distance"`
	Prompt         string           `yaml:"prompt" toml:"prompt"`
	Strict         bool             `yaml:"strict" toml:"strict"`
	NonInteractive bool             `yaml:"non_interactive" toml:"non_interactive"`
	CheckAll       bool             `yaml:"check_all" toml:"check_all"`
	Workers        int              `yaml:"workers" toml:"workers"`
	Debug          bool             `yaml:"-" toml:"-"`
}

// DictionaryConfig describes where the Hunspell dictionary lives.
//
// Aff and Dic take precedence over a directory search when both are set.
// Words lists personal word files (one word per line) added to the dictionary.
type DictionaryConfig struct {
	Dirs  []string `yaml:"dirs" toml:"dirs"`
	Aff   string   `yaml:"aff" toml:"aff"`
	Dic   string   `yaml:"dic" toml:"dic"`
	Words []string `yaml:"words" toml:"words"`
}
