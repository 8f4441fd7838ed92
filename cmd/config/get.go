package config

import (
	"fmt"
	"strings"

	"github.com/minepkg/mclaunch/internals/commands"
	iconfig "github.com/minepkg/mclaunch/internals/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "get <key>",
		Short: "Gets a global config value",
		Args:  cobra.ExactArgs(1),
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (i *getRunner) RunE(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])

	entry, ok := iconfig.Entries[key]
	if !ok {
		return unknownKey(key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Printing config entry:")
	fmt.Fprintf(cmd.OutOrStdout(), "  %s: %v\n", entry.Key, viper.Get(entry.Key))

	return nil
}
