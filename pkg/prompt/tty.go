package prompt

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Terminal is the input and output used for interactive prompts.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	closer io.Closer
}

// Close releases the terminal if it was opened by OpenTerminal.
func (t *Terminal) Close() error {
	if t == nil || t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

// OpenTerminal returns stdin and stdout when stdin is a terminal. Git runs
// hooks with stdin detached, so otherwise the controlling terminal is
// opened directly. The second result is false when neither is available.
func OpenTerminal() (*Terminal, bool) {
	if isTerminal(os.Stdin) {
		return &Terminal{In: os.Stdin, Out: os.Stdout}, true
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, false
	}

	if !isTerminal(tty) {
		tty.Close()
		return nil, false
	}

	return &Terminal{In: tty, Out: tty, closer: tty}, true
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
