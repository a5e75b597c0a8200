// Package progress provides stderr progress indicators for long-running
// catalogue operations. Output is suppressed when stderr is not a terminal
// so piped stdout stays clean.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// minItems is the smallest total that gets a progress line.
const minItems = 5

// clearWidth is the number of columns blanked when a line is cleared.
const clearWidth = 48

// Progress reports a counted operation such as a tap import.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	tty     bool
}

// New creates a progress reporter on stderr.
func New(label string, total int) *Progress {
	return NewWriter(os.Stderr, label, total, isTerminal(os.Stderr))
}

// NewWriter creates a progress reporter on w. tty selects in-place updates;
// without it nothing is written.
func NewWriter(w io.Writer, label string, total int, tty bool) *Progress {
	return &Progress{w: w, label: label, total: total, tty: tty}
}

// Step advances the counter and redraws the line.
func (p *Progress) Step() {
	p.current++
	if !p.visible() {
		return
	}
	pct := 0
	if p.total > 0 {
		pct = (p.current * 100) / p.total
	}
	fmt.Fprintf(p.w, "\r%s... %d/%d (%d%%)", p.label, p.current, p.total, pct)
}

// Done clears the line to make way for final output.
func (p *Progress) Done() {
	if p.visible() {
		clearLine(p.w)
	}
}

func (p *Progress) visible() bool {
	return p.tty && p.total >= minItems
}

// spinnerFrames are drawn in turn, one per interval.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// Spinner marks an operation of unknown length, such as a remote search.
// It redraws itself from a goroutine until Stop; anything else headed for
// the same stream should go through Writer so it does not land on the
// spinner line.
type Spinner struct {
	mu       sync.Mutex
	w        io.Writer
	label    string
	tty      bool
	interval time.Duration
	frame    int
	running  bool
	stop     chan struct{}
	done     chan struct{}
}

// NewSpinner creates a spinner on stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{w: os.Stderr, label: label, tty: isTerminal(os.Stderr), interval: spinnerInterval}
}

// Start shows the spinner and begins animating it.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tty || s.running {
		return
	}
	s.running = true
	s.frame = 0
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.draw()
	go s.animate(s.stop, s.done)
}

func (s *Spinner) animate(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s.mu.Lock()
			if s.running {
				s.frame = (s.frame + 1) % len(spinnerFrames)
				s.draw()
			}
			s.mu.Unlock()
		}
	}
}

// draw must be called with s.mu held.
func (s *Spinner) draw() {
	fmt.Fprintf(s.w, "\r%s %s...", spinnerFrames[s.frame], s.label)
}

// Stop halts the animation and clears the spinner line. It returns once the
// animating goroutine has exited.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done

	s.mu.Lock()
	clearLine(s.w)
	s.mu.Unlock()
}

// Writer returns a writer onto the spinner's stream. While the spinner runs,
// each write clears the spinner line first and redraws it afterwards.
func (s *Spinner) Writer() io.Writer {
	return spinnerWriter{s}
}

type spinnerWriter struct{ s *Spinner }

func (sw spinnerWriter) Write(p []byte) (int, error) {
	s := sw.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		clearLine(s.w)
	}
	n, err := s.w.Write(p)
	if s.running {
		s.draw()
	}
	return n, err
}

func clearLine(w io.Writer) {
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", clearWidth))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
