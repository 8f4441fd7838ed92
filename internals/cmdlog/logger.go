package cmdlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/internals/downloadmgr"
)

// Logger loggs pretty stuff to the console
type Logger struct {
	out       io.Writer
	indention int
	// debug is leveled output for everything that is only interesting with --verbose
	debug *log.Logger
}

// New returns a new Logger writing to stdout. Debug output goes to stderr
func New() *Logger {
	return NewWithWriter(os.Stdout, os.Stderr)
}

// NewWithWriter returns a logger writing to out. Debug output goes to debugOut
func NewWithWriter(out io.Writer, debugOut io.Writer) *Logger {
	// disable color for CI
	if os.Getenv("CI") != "" {
		gchalk.SetLevel(gchalk.LevelNone)
	}
	return &Logger{
		out: out,
		debug: log.NewWithOptions(debugOut, log.Options{
			Prefix: "mclaunch",
			Level:  log.InfoLevel,
		}),
	}
}

// SetVerbose enables debug output
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.debug.SetLevel(log.DebugLevel)
	} else {
		l.debug.SetLevel(log.InfoLevel)
	}
}

// helper for indention
func (l *Logger) println(a string) {
	fmt.Fprintln(l.out, strings.Repeat(" ", l.indention)+a)
}

// Headline prints a cyan line
func (l *Logger) Headline(s string) {
	fmt.Fprintln(l.out, gchalk.WithCyan().Bold(s))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Log prints a gray line
func (l *Logger) Log(s string) {
	l.println(gchalk.Gray(s))
}

// Warn will print a warning
func (l *Logger) Warn(s string) {
	l.println(gchalk.WithYellow().Bold(s))
}

// Debug prints key value pairs if verbose output is enabled
func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.debug.Debug(msg, keyvals...)
}

// Fail prints the given message as error. It does not exit
func (l *Logger) Fail(s string) {
	fmt.Fprintln(l.out, gchalk.WithRed().Bold("Error: ")+gchalk.Bold(s))
}

// EventHandler returns a handler that logs the events of one resource.
// Debug events are only shown with verbose output, progress is not logged at all
func (l *Logger) EventHandler() func(r *downloadmgr.Resource, e downloadmgr.Event) {
	return func(r *downloadmgr.Resource, e downloadmgr.Event) {
		switch e.Kind {
		case downloadmgr.EventDebug:
			l.debug.Debug(e.Message, "url", r.URL)
		case downloadmgr.EventError:
			l.debug.Error(e.Message, "url", r.URL, "path", r.Path)
		case downloadmgr.EventProgress:
			if e.Status.Total > 0 && e.Status.Received == e.Status.Total {
				l.debug.Debug("finished", "path", r.Path, "size", humanize.Bytes(uint64(e.Status.Total)))
			}
		}
	}
}

// NewTask returns a new Task logger
func (l *Logger) NewTask(end int) *Task {
	logger := *l
	return &Task{&logger, 0, end}
}

// Task logs but with progress
type Task struct {
	*Logger
	current int
	end     int
}

// Step prints progress
func (l *Task) Step(s string) {
	l.current++
	text := gchalk.Cyan(fmt.Sprintf("[%d / %d] %s", l.current, l.end, s))

	// we don't use l.println here, because step headlines should have no indentation
	fmt.Fprintln(l.out, text)
}
