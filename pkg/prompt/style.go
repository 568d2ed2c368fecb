package prompt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Tag labels a report line, printed as "[TAG]".
type Tag string

const (
	TagSpellcheck Tag = "SPELLCHECK"
	TagReplace    Tag = "REPLACE"
	TagWarning    Tag = "WARNING"
	TagCancelled  Tag = "CANCELLED"
	TagError      Tag = "ERROR"
	TagDiff       Tag = "DIFF"
	TagOK         Tag = "OK"
)

// Printer writes tagged report lines. Colors are only emitted when the
// writer is a color-capable terminal.
type Printer struct {
	w    io.Writer
	tags map[Tag]lipgloss.Style
	word lipgloss.Style
	dim  lipgloss.Style
}

// NewPrinter returns a Printer bound to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)

	return &Printer{
		w: w,
		tags: map[Tag]lipgloss.Style{
			TagSpellcheck: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A623")),
			TagReplace:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4A90E2")),
			TagWarning:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8E71C")),
			TagCancelled:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#D0021B")),
			TagError:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#D0021B")),
			TagDiff:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("#9B9B9B")),
			TagOK:         r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7ED321")),
		},
		word: r.NewStyle().Underline(true),
		dim:  r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

// Linef writes "[TAG] message" followed by a newline.
func (p *Printer) Linef(tag Tag, format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.Tag(tag), fmt.Sprintf(format, args...))
}

// Item writes an indented list entry.
func (p *Printer) Item(s string) {
	fmt.Fprintf(p.w, "  - %s\n", p.Word(s))
}

// Printf writes unstyled text.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Tag renders "[TAG]".
func (p *Printer) Tag(tag Tag) string {
	label := "[" + string(tag) + "]"
	if style, ok := p.tags[tag]; ok {
		return style.Render(label)
	}
	return label
}

// Word renders a highlighted word.
func (p *Printer) Word(s string) string {
	return p.word.Render(s)
}

// Dim renders secondary text.
func (p *Printer) Dim(s string) string {
	return p.dim.Render(s)
}
