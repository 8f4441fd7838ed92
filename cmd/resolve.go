package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/minepkg/mclaunch/cmd/launch"
	"github.com/minepkg/mclaunch/internals/commands"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var resolveCmd = func() *commands.Command {
	runner := &resolveRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "resolve [version]",
		Short: "Prints the fully resolved manifest of a version",
		Long: `Resolves a version manifest including inherited versions, legacy arguments
and libraries without explicit downloads. The version can be an id ("1.19.2"),
"latest", "snapshot" or a semver constraint ("~1.18").`,
		Example: `
  mclaunch resolve latest
  mclaunch resolve 1.19.2 --fabric 0.14.10 --format yaml
  mclaunch resolve --file ./versions/custom/custom.json --format toml`,
		Args: cobra.MaximumNArgs(1),
	}, runner)

	cmd.Flags().StringVarP(&runner.format, "format", "f", "json", "output format (json, yaml or toml)")
	cmd.Flags().StringVar(&runner.file, "file", "", "resolve a local manifest file")
	cmd.Flags().StringVar(&runner.fabric, "fabric", "", "resolve the fabric loader version for the minecraft version")
	return cmd
}()

type resolveRunner struct {
	format string
	file   string
	fabric string
}

func (r *resolveRunner) RunE(cmd *cobra.Command, args []string) error {
	c := launch.NewCLILauncher()
	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	if err := c.Resolve(cmd.Context(), query, r.file, r.fabric); err != nil {
		return err
	}
	return encode(cmd.OutOrStdout(), r.format, c.Version)
}

func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Order(toml.OrderPreserve).Encode(v)
	default:
		return &commands.CliError{
			Text: fmt.Sprintf("unknown format %q", format),
			Help: "Use json, yaml or toml",
		}
	}
}
