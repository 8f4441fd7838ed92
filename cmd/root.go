package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/cmd/config"
	"github.com/minepkg/mclaunch/cmd/launch"
	iconfig "github.com/minepkg/mclaunch/internals/config"
	"github.com/minepkg/mclaunch/internals/globals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set by the build
var Version = "dev"

var (
	cfgFile       string
	disableColors bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mclaunch",
	Short: "Resolve, fetch & launch Minecraft versions",
	Long:  "Resolves version manifests, downloads & verifies everything they need and launches them",

	Example: `
  mclaunch resolve latest --format yaml
  mclaunch fetch 1.19.2
  mclaunch launch 1.19.2 --name Steve
  mclaunch launch 1.19.2 --fabric 0.14.10`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	rootCmd.Version = Version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mclaunch/config.toml)")
	flags.BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	flags.BoolP("verbose", "v", false, "show debug output")
	flags.String("root", "", "directory containing libraries, versions & assets")
	flags.Int("concurrency", 0, "maximum parallel downloads (0 is unlimited)")

	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("root", flags.Lookup("root"))
	viper.BindPFlag("concurrency", flags.Lookup("concurrency"))

	rootCmd.AddCommand(resolveCmd.Command)
	rootCmd.AddCommand(versionsCmd.Command)
	rootCmd.AddCommand(fetchCmd.Command)
	rootCmd.AddCommand(launch.New().Command)
	rootCmd.AddCommand(config.SubCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if disableColors || os.Getenv("CI") != "" {
		gchalk.SetLevel(gchalk.LevelNone)
	}

	v := viper.GetViper()
	if err := iconfig.Init(v, cfgFile); err != nil {
		return err
	}
	c, err := iconfig.Load(v)
	if err != nil {
		return err
	}
	globals.Config = c
	globals.Logger.SetVerbose(c.Verbose)
	if used := v.ConfigFileUsed(); used != "" {
		globals.Logger.Debug("using config file", "path", used)
	}
	return nil
}
