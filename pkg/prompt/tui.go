package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUI prompts with a full-screen picker for replacements and falls back to
// a line prompt for the final confirmation.
type TUI struct {
	in  io.Reader
	out io.Writer
}

var _ Prompter = (*TUI)(nil)

// NewTUI returns a picker-based prompter on in and out.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

// Replace runs the picker for one word.
func (p *TUI) Replace(word string, suggestions []string) (Answer, error) {
	program := tea.NewProgram(newPicker(word, suggestions), tea.WithInput(p.in), tea.WithOutput(p.out))

	final, err := program.Run()
	if err != nil {
		return Answer{}, fmt.Errorf("prompt: picker: %w", err)
	}

	m, ok := final.(picker)
	if !ok {
		return Answer{}, fmt.Errorf("prompt: picker returned %T", final)
	}

	if m.aborted {
		return Answer{}, ErrInterrupted
	}

	return m.answer, nil
}

// Confirm asks a yes/no question on a plain line.
func (p *TUI) Confirm(question string) (bool, error) {
	return NewLine(p.in, p.out).Confirm(question)
}

// picker is the bubbletea model behind TUI.Replace.
type picker struct {
	word        string
	suggestions []string
	cursor      int
	typing      bool
	input       textinput.Model

	answer  Answer
	aborted bool
	done    bool
}

func newPicker(word string, suggestions []string) picker {
	input := textinput.New()
	input.Placeholder = word
	input.Prompt = "> "
	input.CharLimit = 64

	m := picker{word: word, suggestions: suggestions, input: input}
	if len(suggestions) == 0 {
		m.typing = true
		m.input.Focus()
	}

	return m
}

func (m picker) Init() tea.Cmd {
	if m.typing {
		return textinput.Blink
	}
	return nil
}

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.typing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		m.aborted = true
		return m.finish()
	case "enter":
		return m.choose()
	case "tab":
		m.typing = !m.typing
		if m.typing {
			return m, m.input.Focus()
		}
		m.input.Blur()
		return m, nil
	case "esc":
		if m.typing && len(m.suggestions) > 0 {
			m.typing = false
			m.input.Blur()
			return m, nil
		}
		m.answer = Answer{Kind: Skip}
		return m.finish()
	}

	if m.typing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch s := key.String(); s {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.suggestions)-1 {
			m.cursor++
		}
	case "+":
		m.answer = Answer{Kind: Ignore}
		return m.finish()
	case "s":
		m.answer = Answer{Kind: Skip}
		return m.finish()
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if n := int(s[0] - '0'); n <= len(m.suggestions) {
				m.cursor = n - 1
				return m.choose()
			}
		}
	}

	return m, nil
}

// choose accepts the typed word or the highlighted suggestion. An empty
// entry skips the word.
func (m picker) choose() (tea.Model, tea.Cmd) {
	switch {
	case m.typing:
		if text := strings.TrimSpace(m.input.Value()); text != "" {
			m.answer = Answer{Kind: Replace, Text: text}
		} else {
			m.answer = Answer{Kind: Skip}
		}
	case len(m.suggestions) > 0:
		m.answer = Answer{Kind: Replace, Text: m.suggestions[m.cursor]}
	default:
		m.answer = Answer{Kind: Skip}
	}

	return m.finish()
}

func (m picker) finish() (tea.Model, tea.Cmd) {
	m.done = true
	return m, tea.Quit
}

var (
	pickerTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4A90E2"))
	pickerWord     = lipgloss.NewStyle().Bold(true).Underline(true)
	pickerSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#7ED321"))
	pickerHint     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func (m picker) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(pickerTitle.Render("[REPLACE] "))
	b.WriteString(pickerWord.Render(m.word))
	b.WriteString("\n\n")

	if len(m.suggestions) == 0 {
		b.WriteString(pickerHint.Render("  no suggestions"))
		b.WriteString("\n")
	}

	for i, s := range m.suggestions {
		line := fmt.Sprintf("%d) %s", i+1, s)
		if i == m.cursor && !m.typing {
			b.WriteString(pickerSelected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if m.typing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString(pickerHint.Render("enter accept • tab type a word • + ignore • esc skip • ctrl+c abort"))
	b.WriteString("\n")

	return b.String()
}
