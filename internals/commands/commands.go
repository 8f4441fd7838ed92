// Package commands wraps cobra commands so errors are rendered consistently
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Command is a cobra command with a Runner
type Command struct {
	*cobra.Command
	runner Runner
}

// Runner runs a command
type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// exit is replaced in tests
var exit = os.Exit

// New returns cmd running run. Errors are rendered to stderr and exit with code 1
func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		if err := run.RunE(cmd, args); err != nil {
			Render(cmd.ErrOrStderr(), err)
			exit(1)
		}
	}

	return build
}

// Render prints err as error box. A CliError also gets its suggestions rendered
func Render(w io.Writer, err error) {
	var asCliErr *CliError
	if errors.As(err, &asCliErr) {
		fmt.Fprintln(w, asCliErr.RichError()+"\n")
		return
	}
	fmt.Fprintln(w, ErrorBox(err.Error(), ""))
}
