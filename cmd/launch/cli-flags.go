package launch

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/minepkg/mclaunch/internals/commands"
	ilaunch "github.com/minepkg/mclaunch/internals/launch"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/spf13/cobra"
)

// LaunchFlags are cli flags used to customize the launch
type LaunchFlags struct {
	Name      string
	Demo      bool
	Java      string
	Memory    string
	MinMemory string
	GameDir   string

	Width      int
	Height     int
	Fullscreen bool
}

// CmdLaunchFlags registers the launch flags on cmd
func CmdLaunchFlags(cmd *cobra.Command) *LaunchFlags {
	flags := LaunchFlags{}
	cmd.Flags().StringVarP(&flags.Name, "name", "n", "Player", "offline player name")
	cmd.Flags().BoolVar(&flags.Demo, "demo", false, "launch in demo mode")
	cmd.Flags().StringVar(&flags.Java, "java", "", "java executable to use (\"auto\" downloads the required runtime)")
	cmd.Flags().StringVarP(&flags.Memory, "memory", "m", "", "maximum memory like \"4G\" (defaults to a quarter of the system memory)")
	cmd.Flags().StringVar(&flags.MinMemory, "min-memory", "", "initial memory like \"512M\"")
	cmd.Flags().StringVar(&flags.GameDir, "game-dir", "", "directory for saves, mods & options (defaults to the root directory)")
	cmd.Flags().IntVar(&flags.Width, "width", 0, "initial window width")
	cmd.Flags().IntVar(&flags.Height, "height", 0, "initial window height")
	cmd.Flags().BoolVar(&flags.Fullscreen, "fullscreen", false, "start in fullscreen")

	return &flags
}

// Apply writes the flags into opts. Java is resolved separately
func (f *LaunchFlags) Apply(opts *ilaunch.Options) error {
	if !f.Demo {
		opts.User = minecraft.NewOfflineUser(f.Name)
	}
	if f.GameDir != "" {
		opts.GameDir = f.GameDir
	}

	var err error
	if opts.Memory.MaxMiB, err = parseMiB("memory", f.Memory); err != nil {
		return err
	}
	if opts.Memory.MinMiB, err = parseMiB("min-memory", f.MinMemory); err != nil {
		return err
	}

	if f.Width != 0 || f.Height != 0 || f.Fullscreen {
		opts.Window = &ilaunch.Window{Width: f.Width, Height: f.Height, Fullscreen: f.Fullscreen}
	}
	return nil
}

// parseMiB parses a human readable size like "4G" into MiB. Plain numbers are MiB.
// Single letter units are binary like the java -Xmx flag
func parseMiB(flag string, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	size := strings.TrimSpace(s)
	switch {
	case isDigits(size):
		size += "MiB"
	case strings.ContainsAny(size[len(size)-1:], "kKmMgGtT"):
		size += "iB"
	}
	bytes, err := humanize.ParseBytes(size)
	if err != nil {
		return 0, &commands.CliError{
			Text: fmt.Sprintf("invalid --%s %q", flag, s),
			Err:  err,
			Help: "Use a size like 4G or 2048M",
		}
	}
	return int(bytes / 1024 / 1024), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
