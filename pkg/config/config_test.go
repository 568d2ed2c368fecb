package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashcracky/spellhook/pkg/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()

	cfg, path, err := Load(dir, "", "0.1.0")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Equal(t, filepath.Join(dir, DefaultIgnoreFile), cfg.IgnoreFile)
	assert.Equal(t, "#", cfg.CommentChar)
	assert.Equal(t, DefaultSuggestions, cfg.Suggestions)
	assert.Equal(t, DefaultMaxDistance, cfg.MaxDistance)
	assert.Equal(t, structs.PromptLine, cfg.Prompt)
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".spellhook.yaml"), strings.TrimSpace(`
language: en_GB
ignore_file: words/ignore.txt
ignore:
  - kubectl
  - goroutine
comment_char: ";"
suggestions: 3
prompt: tui
strict: true
check_all: true
dictionary:
  dirs:
    - dicts
  words:
    - words/team.txt
`))

	cfg, path, err := Load(dir, "", "0.1.0")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".spellhook.yaml"), path)
	assert.Equal(t, "en_GB", cfg.Language)
	assert.Equal(t, filepath.Join(dir, "words", "ignore.txt"), cfg.IgnoreFile)
	assert.Equal(t, []string{"kubectl", "goroutine"}, cfg.Ignore)
	assert.Equal(t, ";", cfg.CommentChar)
	assert.Equal(t, 3, cfg.Suggestions)
	assert.Equal(t, DefaultMaxDistance, cfg.MaxDistance)
	assert.Equal(t, structs.PromptTUI, cfg.Prompt)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.CheckAll)
	assert.Equal(t, []string{filepath.Join(dir, "dicts")}, cfg.Dictionary.Dirs)
	assert.Equal(t, []string{filepath.Join(dir, "words", "team.txt")}, cfg.Dictionary.Words)
}

func TestLoadParsesTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".spellhook.toml"), strings.TrimSpace(`
language = "de_DE"
ignore = ["grpc"]
max_distance = 1

[dictionary]
aff = "/opt/dict/de_DE.aff"
dic = "/opt/dict/de_DE.dic"
`))

	cfg, _, err := Load(dir, "", "0.1.0")
	require.NoError(t, err)
	assert.Equal(t, "de_DE", cfg.Language)
	assert.Equal(t, []string{"grpc"}, cfg.Ignore)
	assert.Equal(t, 1, cfg.MaxDistance)
	assert.Equal(t, "/opt/dict/de_DE.aff", cfg.Dictionary.Aff)
	assert.Equal(t, "/opt/dict/de_DE.dic", cfg.Dictionary.Dic)
}

func TestLoadPrefersYAMLOverTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".spellhook.yaml"), "language: en_AU\n")
	writeFile(t, filepath.Join(dir, ".spellhook.toml"), "language = \"fr_FR\"\n")

	cfg, path, err := Load(dir, "", "0.1.0")
	require.NoError(t, err)
	assert.Equal(t, "en_AU", cfg.Language)
	assert.Equal(t, ".spellhook.yaml", filepath.Base(path))
}

func TestLoadCommentOnlyYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".spellhook.yml"), "# nothing configured yet\n")

	cfg, _, err := Load(dir, "", "0.1.0")
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguage, cfg.Language)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(dir, filepath.Join(dir, "nope.yaml"), "0.1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".spellhook.yaml"), "langauge: en_US\n")

	_, _, err := Load(dir, "", "0.1.0")
	require.Error(t, err)

	dir = t.TempDir()
	writeFile(t, filepath.Join(dir, ".spellhook.toml"), "langauge = \"en_US\"\n")

	_, _, err = Load(dir, "", "0.1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown key "langauge"`)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"comment char", "comment_char: \"//\"\n", "comment_char must be a single character"},
		{"prompt", "prompt: gui\n", "prompt must be"},
		{"half dictionary", "dictionary:\n  aff: en.aff\n", "must be set together"},
		{"workers", "workers: -2\n", "workers must not be negative"},
		{"bad min version", "min_version: banana\n", "invalid min_version"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ".spellhook.yaml"), tc.content)

			_, _, err := Load(dir, "", "0.1.0")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestCheckMinVersion(t *testing.T) {
	require.NoError(t, checkMinVersion("", "0.1.0"))
	require.NoError(t, checkMinVersion("0.1.0", "0.1.0"))
	require.NoError(t, checkMinVersion("0.1.0", "0.2.3"))
	require.NoError(t, checkMinVersion("9.0.0", "dev"))

	err := checkMinVersion("0.3.0", "0.2.9")
	require.EqualError(t, err, "this project requires spellhook >= 0.3.0, running 0.2.9")
}
