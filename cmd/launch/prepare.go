package launch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/minepkg/mclaunch/internals/cmdlog"
	"github.com/minepkg/mclaunch/internals/commands"
	iconfig "github.com/minepkg/mclaunch/internals/config"
	"github.com/minepkg/mclaunch/internals/globals"
	"github.com/minepkg/mclaunch/internals/instances"
	"github.com/minepkg/mclaunch/internals/java"
	ilaunch "github.com/minepkg/mclaunch/internals/launch"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/pkg/errors"
)

// CLILauncher fetches & launches versions with CLI output
type CLILauncher struct {
	Instance *instances.Instance
	// Version is the resolved version. It is set by `Resolve`
	Version  *minecraft.Version
	Platform minecraft.Platform
	// Features are used to select the libraries to download
	Features minecraft.Features

	// Spawner starts the game (defaults to an ExecSpawner)
	Spawner ilaunch.Spawner
	// RawOutput prints the game output without parsing it
	RawOutput bool
	// NonInteractive disables the spinner
	NonInteractive bool
}

// NewCLILauncher returns a launcher for the current platform using the global instance
func NewCLILauncher() *CLILauncher {
	return &CLILauncher{
		Instance: globals.Instance(),
		Platform: minecraft.CurrentPlatform(),
	}
}

// Resolve resolves the version. If file is set, the local manifest is used. Otherwise
// query is resolved (with the fabric loader version if set)
func (c *CLILauncher) Resolve(ctx context.Context, query string, file string, fabric string) error {
	if file != "" {
		buf, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		raw := make(map[string]interface{})
		if err := json.Unmarshal(buf, &raw); err != nil {
			return &commands.CliError{Text: file + " is not valid json", Err: err}
		}
		c.Version, err = c.Instance.ResolveManifest(ctx, raw)
		return err
	}

	if query == "" {
		query = "latest"
	}

	var err error
	if fabric != "" {
		c.Version, err = c.Instance.ResolveFabric(ctx, query, fabric)
	} else {
		c.Version, err = c.Instance.Resolve(ctx, query)
	}
	if err != nil {
		return &commands.CliError{
			Text:        fmt.Sprintf("could not resolve %q", query),
			Err:         err,
			Suggestions: []string{"Run \"mclaunch versions\" to list all available versions"},
		}
	}
	return nil
}

// Prepare downloads everything required to launch the resolved version
func (c *CLILauncher) Prepare(ctx context.Context) error {
	logger := globals.Logger
	v := c.Version
	logger.Info(commands.Title.Render(fmt.Sprintf("%s %s", v.ID, v.Type)))

	s := cmdlog.NewMaybeSpinner()
	if c.NonInteractive {
		s.Spin = false
	}
	s.Start("Preparing launch")
	c.Instance.OnProgress = func(stage string, p int) {
		// without spinner only the start of every stage is logged
		if !s.Spin && p != 0 {
			return
		}
		s.Update(fmt.Sprintf("Preparing launch – Downloading %s %d%%", stage, p))
	}
	report, err := c.Instance.Fetch(ctx, v, c.Platform, c.Features)
	s.Stop()
	if err != nil {
		return err
	}

	var total int64
	for _, stage := range report.Stages {
		results := report.Results[stage]
		for _, result := range results {
			if !result.OK {
				continue
			}
			if size, err := result.Resource.Size(); err == nil {
				total += size
			}
		}
		logger.Log(fmt.Sprintf("  %-12s %d/%d", stage, len(results)-len(results.Failed()), len(results)))
	}

	if err := report.Err(); err != nil {
		return &commands.CliError{
			Text: fmt.Sprintf("%d downloads failed", len(report.Failed())),
			Err:  err,
			Suggestions: []string{
				"Run the command again, valid files will not be downloaded again",
				"Use --verbose to see every request",
			},
		}
	}
	logger.Log(fmt.Sprintf("  %s on disk", humanize.Bytes(uint64(total))))
	return nil
}

// PrepareJava returns the java executable for the resolved version. Unless setting
// is "auto" (or empty), setting is used as is. Otherwise the required runtime is
// downloaded into the `runtimes` directory
func (c *CLILauncher) PrepareJava(ctx context.Context, setting string) (string, error) {
	if setting != "" && setting != iconfig.JavaAuto {
		return setting, nil
	}

	factory := java.NewFactory(filepath.Join(c.Instance.GlobalDir, "runtimes"), c.Instance.Client.R.GetClient())
	factory.OnEvent = c.Instance.OnEvent
	runtime, err := factory.ForVersion(ctx, c.Version)
	if err != nil {
		return "", errors.Wrap(err, "could not find a java runtime")
	}

	if runtime.NeedsDownloading() {
		s := cmdlog.NewMaybeSpinner()
		if c.NonInteractive {
			s.Spin = false
		}
		s.Start(fmt.Sprintf("Preparing launch – Downloading java %d", c.Version.JavaMajorVersion()))
		err := runtime.Update(ctx)
		s.Stop()
		if err != nil {
			return "", err
		}
	}
	globals.Logger.Debug("using java", "release", runtime.Release(), "path", runtime.Bin())
	return runtime.Bin(), nil
}
