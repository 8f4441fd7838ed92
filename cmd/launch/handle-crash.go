package launch

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/internals/commands"
	ilaunch "github.com/minepkg/mclaunch/internals/launch"
	"github.com/minepkg/mclaunch/internals/logparser"
)

// HandleCrash outputs some debug info about a game that exited with a non zero code
func (c *CLILauncher) HandleCrash(opts *ilaunch.Options, code int, tail []string) error {
	v := opts.Version

	fmt.Println("--------------------")
	fmt.Println("Minecraft crashed :(")
	fmt.Println("Here is some debug info")
	fmt.Println("[system]")
	fmt.Println("  OS: " + runtime.GOOS + " " + opts.Platform.Version)
	fmt.Println("  arch: " + opts.Platform.Arch)
	fmt.Printf("  CPUs: %d\n", runtime.NumCPU())
	fmt.Println("[launch]")
	fmt.Println("  java: " + opts.Java)
	fmt.Println("  version: " + v.ID + " (" + v.Type + ")")
	fmt.Println("  main class: " + v.MainClass)
	fmt.Println("  game dir: " + opts.GameDir)
	fmt.Printf("  exit code: %d\n", code)

	errorLines := make([]string, 0)
	for _, line := range tail {
		parsed := logparser.ParseLine(line)
		if parsed.Garbage || parsed.Level == "ERROR" || parsed.Level == "FATAL" {
			errorLines = append(errorLines, line)
		}
	}
	if len(errorLines) != 0 {
		fmt.Println("[last errors]")
		fmt.Println(gchalk.Gray("  " + strings.Join(errorLines, "\n  ")))
	}

	return &commands.CliError{
		Text: fmt.Sprintf("minecraft exited with code %d", code),
		Suggestions: []string{
			"Check the output above for the reason of the crash",
			"Run \"mclaunch fetch " + v.ID + "\" to make sure all files are valid",
		},
	}
}
