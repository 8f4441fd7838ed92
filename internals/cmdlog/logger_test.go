package cmdlog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/internals/downloadmgr"
)

func init() {
	gchalk.SetLevel(gchalk.LevelNone)
}

func TestLogger(t *testing.T) {
	out := &bytes.Buffer{}
	debug := &bytes.Buffer{}
	l := NewWithWriter(out, debug)

	l.Headline("Fetching 1.19.2")
	l.Warn("careful")
	l.Fail("broken")
	l.Debug("hidden")

	want := "Fetching 1.19.2\ncareful\nError: broken\n"
	if out.String() != want {
		t.Errorf("unexpected output %q", out.String())
	}
	if debug.Len() != 0 {
		t.Errorf("debug output without verbose: %q", debug.String())
	}

	l.SetVerbose(true)
	l.Debug("shown", "key", "value")
	if !strings.Contains(debug.String(), "shown") || !strings.Contains(debug.String(), "value") {
		t.Errorf("expected debug output, got %q", debug.String())
	}
}

func TestLogger_EventHandler(t *testing.T) {
	debug := &bytes.Buffer{}
	l := NewWithWriter(&bytes.Buffer{}, debug)
	handle := l.EventHandler()
	r := downloadmgr.NewResource("https://example.com/a.jar", "/libs/a.jar", "")

	handle(r, downloadmgr.Event{Kind: downloadmgr.EventDebug, Message: "GET https://example.com/a.jar"})
	if debug.Len() != 0 {
		t.Errorf("debug events should be hidden, got %q", debug.String())
	}

	err := errors.New("invalid status code: 404 Not Found")
	handle(r, downloadmgr.Event{Kind: downloadmgr.EventError, Message: err.Error(), Err: err})
	if !strings.Contains(debug.String(), "404 Not Found") || !strings.Contains(debug.String(), "/libs/a.jar") {
		t.Errorf("errors should always be logged, got %q", debug.String())
	}
}

func TestTask_Step(t *testing.T) {
	out := &bytes.Buffer{}
	task := NewWithWriter(out, &bytes.Buffer{}).NewTask(2)
	task.Step("Libraries")
	task.Step("Assets")

	want := "[1 / 2] Libraries\n[2 / 2] Assets\n"
	if out.String() != want {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestMaybeSpinner_NoTerminal(t *testing.T) {
	out := &bytes.Buffer{}
	s := newMaybeSpinner(false, out)
	s.Start("downloading")
	s.Update("10 / 20")
	s.Stop()

	if out.String() != "downloading\n10 / 20\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}
