package launch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/internals/commands"
	"github.com/minepkg/mclaunch/internals/globals"
	ilaunch "github.com/minepkg/mclaunch/internals/launch"
	"github.com/minepkg/mclaunch/internals/logparser"
	"github.com/minepkg/mclaunch/internals/natives"
	"golang.org/x/sync/errgroup"
)

// the game exits with 130 if it was stopped with ctrl-c
const exitInterrupted = 130

// DryRun prints the command that would be launched
func (c *CLILauncher) DryRun(w io.Writer, opts *ilaunch.Options) error {
	program, args, err := ilaunch.Command(opts)
	if err != nil {
		return err
	}
	quoted := make([]string, 0, len(args)+1)
	for _, arg := range append([]string{program}, args...) {
		if strings.ContainsAny(arg, " \t\"'$") {
			arg = strconv.Quote(arg)
		}
		quoted = append(quoted, arg)
	}
	fmt.Fprintln(w, strings.Join(quoted, " "))
	return nil
}

// Launch extracts the natives & starts the game. Unless detached, the game output is
// printed and Launch returns after the game exited
func (c *CLILauncher) Launch(ctx context.Context, opts *ilaunch.Options, detached bool) error {
	fmt.Println("│")
	fmt.Println(
		lipgloss.JoinHorizontal(
			0.5,
			gchalk.Hex("#7a563b")("│"+"\n"+"┕"),
			commands.Title.Render(commands.Emoji("⛏  ")+"Launching Minecraft "+opts.Version.ID),
		),
	)

	if err := ilaunch.PrepareNatives(opts, natives.NewZipUnpacker()); err != nil {
		return err
	}
	if !detached {
		defer os.RemoveAll(opts.NativesDir)
	}

	if c.Spawner == nil {
		c.Spawner = ilaunch.ExecSpawner{}
	}

	runtime.GC()
	proc, err := ilaunch.Launch(ctx, opts, c.Spawner, detached)
	if err != nil {
		return err
	}
	if detached {
		globals.Logger.Log(fmt.Sprintf("Minecraft is running with pid %d", proc.Pid()))
		return nil
	}

	tail := &tailBuffer{max: 30}
	var mu sync.Mutex
	g := errgroup.Group{}
	for _, r := range []io.Reader{proc.Stdout(), proc.Stderr()} {
		r := r
		g.Go(func() error {
			scanner := bufio.NewScanner(r)
			scanner.Buffer(make([]byte, 64*1024), 1024*1024)
			for scanner.Scan() {
				line := scanner.Text()
				mu.Lock()
				tail.add(line)
				if c.RawOutput {
					fmt.Println(line)
				} else {
					fmt.Println(logparser.ParseLine(line).Pretty())
				}
				mu.Unlock()
			}
			return scanner.Err()
		})
	}
	// output errors do not matter once the game exited
	outputErr := g.Wait()

	code, err := proc.Wait()
	if err != nil {
		return err
	}

	if code == 0 || code == exitInterrupted {
		fmt.Println("\nMinecraft was stopped normally")
		return nil
	}
	if outputErr != nil {
		globals.Logger.Debug("could not read game output", "err", outputErr)
	}

	return c.HandleCrash(opts, code, tail.lines)
}

// tailBuffer keeps the last max lines
type tailBuffer struct {
	max   int
	lines []string
}

func (t *tailBuffer) add(line string) {
	t.lines = append(t.lines, line)
	if len(t.lines) > t.max {
		t.lines = t.lines[len(t.lines)-t.max:]
	}
}
