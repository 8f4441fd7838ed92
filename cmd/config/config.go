package config

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/internals/commands"
	iconfig "github.com/minepkg/mclaunch/internals/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/maps"
)

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}

var styleKey = lipgloss.NewStyle().Width(14)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "list",
		Short: "Lists all config options with their current value",
		Args:  cobra.NoArgs,
	}, &listRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type listRunner struct{}

func (l *listRunner) RunE(cmd *cobra.Command, args []string) error {
	keys := maps.Keys(iconfig.Entries)
	sort.Strings(keys)
	for _, key := range keys {
		entry := iconfig.Entries[key]
		fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", styleKey.Render(key), viper.Get(entry.Key))
		fmt.Fprintln(cmd.OutOrStdout(), gchalk.Gray("  "+entry.Help))
	}
	return nil
}

func unknownKey(key string) error {
	keys := maps.Keys(iconfig.Entries)
	sort.Strings(keys)
	return &commands.CliError{
		Text:        fmt.Sprintf("config key \"%s\" does not exist", key),
		Suggestions: []string{"Run \"mclaunch config list\" to see all keys"},
		Help:        fmt.Sprintf("Available keys: %v", keys),
	}
}
