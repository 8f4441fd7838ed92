package config

import (
	"fmt"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/internals/commands"
	iconfig "github.com/minepkg/mclaunch/internals/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Sets a global config value",
		Args:  cobra.ExactArgs(2),
	}, &setRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type setRunner struct{}

func (i *setRunner) RunE(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])
	if _, ok := iconfig.Entries[key]; !ok {
		return unknownKey(key)
	}

	previousValue := viper.Get(key)
	previousStringValue := fmt.Sprintf("%v", previousValue)
	if previousValue == nil {
		previousStringValue = "(unset)"
	}

	newValue, err := iconfig.Set(viper.GetViper(), key, args[1])
	if err != nil {
		return &commands.CliError{Text: err.Error(), Err: err}
	}

	fmt.Fprintf(
		cmd.OutOrStdout(),
		"Changing config entry:\n  %s: %s → %v\n",
		key,
		gchalk.Strikethrough(previousStringValue),
		gchalk.Bold(fmt.Sprintf("%v", newValue)),
	)

	path, err := iconfig.Write(viper.GetViper())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), gchalk.Gray("saved to "+path))
	return nil
}
