package cmd

import (
	"github.com/minepkg/mclaunch/cmd/launch"
	"github.com/minepkg/mclaunch/internals/commands"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/spf13/cobra"
)

var fetchCmd = func() *commands.Command {
	runner := &fetchRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "fetch [version]",
		Short: "Downloads & verifies everything required to launch a version",
		Long: `Downloads the client jar, all libraries, the asset index and all assets of a version.
Files that already exist and match their hash are skipped.`,
		Example: `
  mclaunch fetch 1.19.2
  mclaunch fetch latest --fabric 0.14.10
  mclaunch fetch 1.8.9 --os windows --arch x86`,
		Args: cobra.MaximumNArgs(1),
	}, runner)

	cmd.Flags().StringVar(&runner.file, "file", "", "fetch a local manifest file")
	cmd.Flags().StringVar(&runner.fabric, "fabric", "", "fetch the fabric loader version for the minecraft version")
	cmd.Flags().StringVar(&runner.os, "os", "", "fetch the libraries of another os (windows, osx or linux)")
	cmd.Flags().StringVar(&runner.arch, "arch", "", "fetch the libraries of another architecture (x86, x64 or arm64)")
	cmd.Flags().BoolVar(&runner.ci, "ci", false, "disable the spinner and emojis")
	return cmd
}()

type fetchRunner struct {
	file   string
	fabric string
	os     string
	arch   string
	ci     bool
}

func (f *fetchRunner) RunE(cmd *cobra.Command, args []string) error {
	c := launch.NewCLILauncher()
	c.NonInteractive = f.ci
	if f.ci {
		commands.EmojiEnabled = false
	}
	if f.os != "" || f.arch != "" {
		c.Platform = minecraft.Platform{Name: f.os, Arch: f.arch}
		current := minecraft.CurrentPlatform()
		if c.Platform.Name == "" {
			c.Platform.Name = current.Name
		}
		if c.Platform.Arch == "" {
			c.Platform.Arch = current.Arch
		}
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	if err := c.Resolve(cmd.Context(), query, f.file, f.fabric); err != nil {
		return err
	}
	return c.Prepare(cmd.Context())
}
