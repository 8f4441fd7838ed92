package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/internals/commands"
	"github.com/minepkg/mclaunch/internals/globals"
	"github.com/minepkg/mclaunch/internals/mojang"
	"github.com/spf13/cobra"
)

var versionsCmd = func() *commands.Command {
	runner := &versionsRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "versions",
		Short: "Lists available Minecraft versions",
		Args:  cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVar(&runner.snapshots, "snapshots", false, "include snapshots")
	cmd.Flags().BoolVar(&runner.old, "old", false, "include old alpha & beta versions")
	cmd.Flags().IntVarP(&runner.limit, "limit", "n", 20, "maximum number of versions to show (0 shows all)")
	return cmd
}()

type versionsRunner struct {
	snapshots bool
	old       bool
	limit     int
}

var styleVersionID = lipgloss.NewStyle().Width(24)

func (v *versionsRunner) RunE(cmd *cobra.Command, args []string) error {
	list, err := globals.Instance().Client.ListVersions(cmd.Context())
	if err != nil {
		return err
	}

	shown := 0
	for _, entry := range list.Versions {
		if v.limit != 0 && shown >= v.limit {
			break
		}
		switch entry.Type {
		case mojang.TypeSnapshot:
			if !v.snapshots {
				continue
			}
		case mojang.TypeOldAlpha, mojang.TypeOldBeta:
			if !v.old {
				continue
			}
		}
		shown++

		line := styleVersionID.Render(entry.ID) + gchalk.Gray(entry.Type)
		switch entry.ID {
		case list.Latest.Release:
			line += gchalk.Green(" (latest)")
		case list.Latest.Snapshot:
			line += gchalk.Yellow(" (latest snapshot)")
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
