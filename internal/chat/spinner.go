package chat

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	spinnerInterval = 80 * time.Millisecond
	spinnerJoinWait = 500 * time.Millisecond
)

// Spinner renders a single-line progress animation while a blocking call is
// in flight. It is purely cosmetic: it writes only to its output writer and
// renders nothing when that writer is not a terminal. One spinner serves
// exactly one exchange.
type Spinner struct {
	out   io.Writer
	label string
	tty   bool

	stop chan struct{}
	done chan struct{}
}

// NewSpinner returns a spinner for one exchange. label is the text shown
// next to the animated frame.
func NewSpinner(out io.Writer, label string) *Spinner {
	return &Spinner{
		out:   out,
		label: label,
		tty:   writerIsTerminal(out),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start launches the render goroutine. On a non-terminal writer the
// goroutine exits immediately without writing anything.
func (s *Spinner) Start() {
	go s.render()
}

// Stop signals the render goroutine and waits for it, bounded so a slow
// goroutine can never hang the main flow. The terminal line is cleared
// before Stop returns, even when the join times out.
func (s *Spinner) Stop() {
	close(s.stop)
	select {
	case <-s.done:
	case <-time.After(spinnerJoinWait):
		if s.tty {
			// frame + space + label + up to three dots.
			s.clear(utf8.RuneCountInString(s.label) + 5)
		}
	}
}

func (s *Spinner) render() {
	defer close(s.done)
	if !s.tty {
		return
	}

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	lastLen := 0
	for i := 0; ; i++ {
		select {
		case <-s.stop:
			s.clear(lastLen)
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			dots := i%3 + 1
			text := frame + " " + s.label + strings.Repeat(".", dots)
			// Widths are display columns, not bytes: the braille frames
			// are multi-byte runes.
			width := utf8.RuneCountInString(text)
			pad := ""
			if n := lastLen - width; n > 0 {
				pad = strings.Repeat(" ", n)
			}
			fmt.Fprint(s.out, "\r"+text+pad)
			lastLen = width
		}
	}
}

// clear erases the spinner line with carriage returns and spaces.
func (s *Spinner) clear(width int) {
	if width <= 0 {
		return
	}
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", width)+"\r")
}

// writerIsTerminal reports whether w is an interactive terminal. Anything
// that is not an *os.File (test buffers, pipes wrapped in writers) is not.
// A var so tests can exercise the render path without a real TTY.
var writerIsTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
