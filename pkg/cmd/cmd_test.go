package cmd_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashcracky/spellhook/pkg/cmd"
	"github.com/hashcracky/spellhook/pkg/dictionary"
	"github.com/hashcracky/spellhook/pkg/hook"
	"github.com/hashcracky/spellhook/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAff = "SET UTF-8\n"
	testDic = "7\nfix\nthe\nparser\nhello\nhelp\nworld\nupdate\n"
)

type harness struct {
	dir      string
	stdin    *strings.Reader
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	terminal *bytes.Buffer
	answers  string
	hasTTY   bool
}

// newHarness creates a project directory with a dictionary and a config
// file pointing at it.
func newHarness(t *testing.T, extraConfig string) *harness {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.aff"), []byte(testAff), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.dic"), []byte(testDic), 0o644))

	config := "dictionary:\n  aff: test.aff\n  dic: test.dic\n" + extraConfig
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".spellhook.yaml"), []byte(config), 0o644))

	return &harness{dir: dir, stdin: strings.NewReader(""), terminal: &bytes.Buffer{}, hasTTY: true}
}

func (h *harness) run(args ...string) error {
	global := cmd.NewGlobalOptions("1.2.3")
	global.WorkDir = h.dir
	global.Stdin = h.stdin
	global.Stdout = &h.stdout
	global.Stderr = &h.stderr

	o := cmd.NewSpellhookOptions(global)
	o.OpenTerminal = func() (*prompt.Terminal, bool) {
		if !h.hasTTY {
			return nil, false
		}
		return &prompt.Terminal{In: strings.NewReader(h.answers), Out: h.terminal}, true
	}

	c := cmd.NewSpellhookCmd(o)
	// nil args make cobra read os.Args
	c.SetArgs(append([]string{}, args...))
	return c.ExecuteContext(context.Background())
}

func (h *harness) message(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCheckReplacesWords(t *testing.T) {
	h := newHarness(t, "")
	path := h.message(t, "Fix teh parser\n\n# helo\n")
	h.answers = "the\n"

	require.NoError(t, h.run(path))
	assert.Equal(t, "Fix the parser\n\n# helo\n", readFile(t, path))
	assert.Contains(t, h.stderr.String(), "[SPELLCHECK] Found possible spelling mistakes:\n  - teh\n")
	assert.Contains(t, h.terminal.String(), "[REPLACE] 'teh' - suggestions: 1) the")
}

func TestCheckIgnoreAnswerWritesIgnoreFile(t *testing.T) {
	h := newHarness(t, "")
	path := h.message(t, "Fix the kubectl parser\n")
	h.answers = "+\n"

	require.NoError(t, h.run(path))
	assert.Equal(t, "kubectl\n", readFile(t, filepath.Join(h.dir, ".spellignore")))

	h.stderr.Reset()
	require.NoError(t, h.run(path))
	assert.Empty(t, h.stderr.String())
}

func TestCheckDeclinedConfirmationIsReported(t *testing.T) {
	h := newHarness(t, "")
	path := h.message(t, "Fix teh parser\n")
	h.answers = "\nn\n"

	err := h.run(path)
	require.ErrorIs(t, err, hook.ErrAborted)
	assert.True(t, cmd.IsReported(err))
	assert.Contains(t, h.stderr.String(), "[CANCELLED]")
}

func TestCheckWithoutTerminal(t *testing.T) {
	h := newHarness(t, "")
	path := h.message(t, "Fix teh parser\n")
	h.hasTTY = false

	require.NoError(t, h.run(path))
	assert.Contains(t, h.stderr.String(), "  - teh\n")
	assert.Equal(t, "Fix teh parser\n", readFile(t, path))

	err := h.run("--strict", path)
	assert.True(t, cmd.IsReported(err))
}

func TestCheckNoInteractiveFlagSkipsTerminal(t *testing.T) {
	h := newHarness(t, "")
	path := h.message(t, "Fix teh parser\n")
	h.answers = "the\n"

	require.NoError(t, h.run("--no-interactive", path))
	assert.Empty(t, h.terminal.String())
	assert.Equal(t, "Fix teh parser\n", readFile(t, path))
}

func TestCheckAllFlag(t *testing.T) {
	h := newHarness(t, "")
	path := h.message(t, "Fix TEH parser\n")
	h.hasTTY = false

	require.NoError(t, h.run(path))
	assert.Empty(t, h.stderr.String())

	require.NoError(t, h.run("--check-all", path))
	assert.Contains(t, h.stderr.String(), "  - TEH\n")

	h.stdin = strings.NewReader("the wrold2 parser\n")
	err := h.run("scan", "--check-all")
	require.ErrorIs(t, err, cmd.ErrMisspelled)
	assert.Equal(t, "1: wrold\n", h.stdout.String())
}

func TestCheckConfigIgnoreList(t *testing.T) {
	h := newHarness(t, "ignore:\n  - teh\n")
	path := h.message(t, "Fix teh parser\n")

	require.NoError(t, h.run(path))
	assert.Empty(t, h.stderr.String())
}

func TestCheckMissingDictionary(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, os.Remove(filepath.Join(h.dir, ".spellhook.yaml")))
	t.Setenv("DICPATH", "")
	path := h.message(t, "Fix teh parser\n")

	require.NoError(t, h.run("--lang", "zz_NONE", "--dict-dir", h.dir, path))
	assert.Contains(t, h.stderr.String(), "[WARNING] Spell check skipped")

	err := h.run("--lang", "zz_NONE", "--strict", path)
	require.ErrorIs(t, err, dictionary.ErrNotFound)
	assert.False(t, cmd.IsReported(err))
}

func TestCheckUnreadableMessageFailsWithoutDictionary(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, os.Remove(filepath.Join(h.dir, ".spellhook.yaml")))
	t.Setenv("DICPATH", "")

	err := h.run("--lang", "zz_NONE", filepath.Join(h.dir, "does-not-exist"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read commit message")
	assert.False(t, cmd.IsReported(err))
	assert.NotContains(t, h.stderr.String(), "Spell check skipped")
}

func TestReportError(t *testing.T) {
	var out bytes.Buffer

	cmd.ReportError(&out, errors.New("boom"))
	assert.Equal(t, "[ERROR] boom\n", out.String())

	out.Reset()
	cmd.ReportError(&out, fmt.Errorf("check: %w", hook.ErrAborted))
	cmd.ReportError(&out, cmd.ErrMisspelled)
	cmd.ReportError(&out, nil)
	assert.Empty(t, out.String())
}

func TestCheckRequiresOneArgument(t *testing.T) {
	h := newHarness(t, "")
	require.Error(t, h.run())
}

func TestCheckMinVersion(t *testing.T) {
	h := newHarness(t, "min_version: 9.0.0\n")
	path := h.message(t, "Fix the parser\n")

	err := h.run(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires spellhook >= 9.0.0")
}

func TestScan(t *testing.T) {
	h := newHarness(t, "")
	h.stdin = strings.NewReader("Fix teh parser\n# teh\nhelo wrold\nupdate\n")

	err := h.run("scan", "--workers", "3")
	require.True(t, errors.Is(err, cmd.ErrMisspelled))
	assert.True(t, cmd.IsReported(err))
	assert.Equal(t, "1: teh\n3: helo, wrold\n", h.stdout.String())
}

func TestScanCleanInput(t *testing.T) {
	h := newHarness(t, "")
	h.stdin = strings.NewReader("Fix the parser\n")

	require.NoError(t, h.run("scan"))
	assert.Empty(t, h.stdout.String())
}

func TestInstall(t *testing.T) {
	h := newHarness(t, "")
	hooks := filepath.Join(h.dir, "hooks")

	require.NoError(t, h.run("install", "--hooks-dir", hooks, "--binary", "spellhook"))
	assert.Equal(t, hook.Script("spellhook"), readFile(t, filepath.Join(hooks, "commit-msg")))
	assert.Contains(t, h.stdout.String(), "[OK] Installed commit-msg hook at "+filepath.Join(hooks, "commit-msg"))
}

func TestVersion(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run("version"))
	assert.Equal(t, "spellhook version 1.2.3\n", h.stdout.String())

	err := h.run("version", "extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not accept extra arguments")
}
