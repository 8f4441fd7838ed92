package launch

import (
	"github.com/minepkg/mclaunch/internals/commands"
	iconfig "github.com/minepkg/mclaunch/internals/config"
	"github.com/minepkg/mclaunch/internals/globals"
	"github.com/spf13/cobra"
)

type launchRunner struct {
	flags *LaunchFlags

	file      string
	fabric    string
	dryRun    bool
	detach    bool
	skipFetch bool
	raw       bool
	ci        bool
}

// New returns the launch command
func New() *commands.Command {
	runner := &launchRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "launch [version]",
		Short: "Launches a Minecraft version",
		Long: `Resolves the version, downloads everything that is missing or invalid,
extracts the native libraries and starts the game.`,
		Example: `
  mclaunch launch 1.19.2 --name Steve
  mclaunch launch latest --fabric 0.14.10 --memory 4G
  mclaunch launch 1.12.2 --dry-run`,
		Aliases: []string{"start", "run"},
		Args:    cobra.MaximumNArgs(1),
	}, runner)

	runner.flags = CmdLaunchFlags(cmd.Command)
	cmd.Flags().StringVar(&runner.file, "file", "", "launch a local manifest file")
	cmd.Flags().StringVar(&runner.fabric, "fabric", "", "launch with this fabric loader version")
	cmd.Flags().BoolVar(&runner.dryRun, "dry-run", false, "only print the launch command")
	cmd.Flags().BoolVar(&runner.detach, "detach", false, "do not wait for the game to exit")
	cmd.Flags().BoolVar(&runner.skipFetch, "skip-fetch", false, "do not download or verify any files")
	cmd.Flags().BoolVar(&runner.raw, "raw", false, "print the game output without formatting")
	cmd.Flags().BoolVar(&runner.ci, "ci", false, "disable the spinner and emojis")

	return cmd
}

func (l *launchRunner) RunE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c := NewCLILauncher()
	c.RawOutput = l.raw
	c.NonInteractive = l.ci
	if l.ci {
		commands.EmojiEnabled = false
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	if err := c.Resolve(ctx, query, l.file, l.fabric); err != nil {
		return err
	}

	opts := c.Instance.LaunchOptions(c.Version)
	opts.Platform = c.Platform
	if version := cmd.Root().Version; version != "" {
		opts.LauncherVersion = version
	}
	if err := l.flags.Apply(opts); err != nil {
		return err
	}
	c.Features = opts.Features

	javaSetting := globals.Config.Java
	if l.flags.Java != "" {
		javaSetting = l.flags.Java
	}

	if l.dryRun {
		if javaSetting != "" && javaSetting != iconfig.JavaAuto {
			opts.Java = javaSetting
		}
		return c.DryRun(cmd.OutOrStdout(), opts)
	}

	if !l.skipFetch {
		if err := c.Prepare(ctx); err != nil {
			return err
		}
	}
	java, err := c.PrepareJava(ctx, javaSetting)
	if err != nil {
		return err
	}
	opts.Java = java

	return c.Launch(ctx, opts, l.detach)
}
