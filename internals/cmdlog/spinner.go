package cmdlog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// MaybeSpinner is a spinner that just logs text if the output is not a terminal
type MaybeSpinner struct {
	Spin    bool
	Spinner *spinner.Spinner
	out     io.Writer
}

// Start might start the spinner
func (m *MaybeSpinner) Start(msg string) {
	m.Spinner.Suffix = " " + msg
	if m.Spin {
		m.Spinner.Start()
		return
	}
	fmt.Fprintln(m.out, msg)
}

// Stop will stop the spinner
func (m *MaybeSpinner) Stop() {
	if m.Spin {
		m.Spinner.Stop()
	}
}

// Update will update the spinner text
func (m *MaybeSpinner) Update(t string) {
	if !m.Spin {
		fmt.Fprintln(m.out, t)
		return
	}
	m.Spinner.Lock()
	m.Spinner.Suffix = " " + t
	m.Spinner.Unlock()
}

// NewMaybeSpinner returns a spinner that only spins if stdout is a terminal
func NewMaybeSpinner() *MaybeSpinner {
	fd := os.Stdout.Fd()
	spin := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if os.Getenv("CI") != "" {
		spin = false
	}
	return newMaybeSpinner(spin, os.Stdout)
}

func newMaybeSpinner(spin bool, out io.Writer) *MaybeSpinner {
	s := &MaybeSpinner{
		Spin:    spin,
		Spinner: spinner.New(spinner.CharSets[9], 300*time.Millisecond, spinner.WithWriter(out)),
		out:     out,
	}
	s.Spinner.Prefix = " "
	return s
}
