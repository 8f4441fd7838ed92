package launch

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/pbnjay/memory"
)

var (
	// ErrNoVersion is returned if the options do not contain a version
	ErrNoVersion = errors.New("no version set to launch")
	// ErrNoMainClass is returned if the version has no main class
	ErrNoMainClass = errors.New("version has no main class")
)

// Separator returns the classpath separator of the platform
func Separator(platform minecraft.Platform) string {
	if platform.Name == "windows" {
		return ";"
	}
	return ":"
}

// Classpath returns all jars of the required libraries followed by the client jar.
// Native libraries contribute their classifier jar
func Classpath(opts *Options) []string {
	features := opts.features()
	paths := make([]string, 0, len(opts.Version.Libraries)+1)
	seen := make(map[string]bool)
	for _, lib := range opts.Version.Libraries.Required(opts.Platform, features) {
		for _, artifact := range lib.Artifacts(opts.Platform) {
			path := filepath.Join(opts.LibrariesDir, filepath.FromSlash(artifact.Path))
			if seen[path] {
				continue
			}
			seen[path] = true
			paths = append(paths, path)
		}
	}
	return append(paths, opts.ClientJar())
}

// Fields returns the values of all known argument placeholders.
// opts.Fields are merged over the computed values
func Fields(opts *Options) map[string]string {
	v := opts.Version
	separator := Separator(opts.Platform)

	fields := map[string]string{
		// the minecraft version
		"version_name": v.ID,
		// minecraft game dir that contains saves, worlds & mods
		"game_directory": opts.GameDir,
		// asset dir contains some shared minecraft resources like sounds & some textures
		"assets_root": opts.AssetsDir,
		// very old versions read their assets from here
		"game_assets":       filepath.Join(opts.AssetsDir, "virtual", "legacy"),
		"assets_index_name": v.Assets,
		// release / snapshot … etc
		"version_type":        v.Type,
		"launcher_name":       opts.LauncherName,
		"launcher_version":    opts.LauncherVersion,
		"classpath":           strings.Join(Classpath(opts), separator),
		"classpath_separator": separator,
		"natives_directory":   opts.NativesDir,
		"library_directory":   opts.LibrariesDir,
		"primary_jar":         opts.ClientJar(),
		"user_properties":     "{}",
	}

	if u := opts.User; u != nil {
		fields["auth_player_name"] = u.GetPlayerName()
		fields["auth_uuid"] = u.GetUUID()
		fields["auth_access_token"] = u.GetAccessToken()
		fields["auth_session"] = "token:" + u.GetAccessToken() + ":" + u.GetUUID()
		fields["user_type"] = u.GetUserType()
		fields["auth_xuid"] = u.GetXUID()
	} else {
		fields["auth_player_name"] = "Player"
		fields["user_type"] = "legacy"
	}

	if w := opts.Window; w != nil {
		fields["resolution_width"] = strconv.Itoa(w.Width)
		fields["resolution_height"] = strconv.Itoa(w.Height)
	}

	for name, value := range opts.Fields {
		fields[name] = value
	}
	return fields
}

// DefaultMaxRAMMiB returns a quarter of the system memory but at least 1 GiB
// and at most 85% of the system memory
func DefaultMaxRAMMiB() int {
	return maxRAMMiB(memory.TotalMemory())
}

func maxRAMMiB(total uint64) int {
	sysMemMiB := float64(total) / 1024 / 1024
	if sysMemMiB == 0 {
		// unknown system memory
		return 1024
	}
	maxRam := math.Max(1024, sysMemMiB/4)
	return int(math.Min(maxRam, sysMemMiB*0.85))
}

// Args returns the full java command line (without the java executable):
// memory flags, applicable jvm arguments, the main class and applicable game arguments
func Args(opts *Options) ([]string, error) {
	if opts.Version == nil {
		return nil, ErrNoVersion
	}
	v := opts.Version
	if v.MainClass == "" {
		return nil, ErrNoMainClass
	}

	features := opts.features()
	fields := Fields(opts)

	jvm := v.Arguments.JVM
	game := v.Arguments.Game
	if extra := opts.ExtraArgs; extra != nil {
		jvm = append(append([]minecraft.Argument{}, jvm...), extra.JVM...)
		game = append(append([]minecraft.Argument{}, game...), extra.Game...)
	}

	args := memoryArgs(opts.Memory)
	for _, arg := range format(jvm, opts.Platform, features, fields) {
		// memory is managed by the launcher
		if strings.HasPrefix(arg, "-Xmx") || strings.HasPrefix(arg, "-Xms") {
			continue
		}
		args = append(args, arg)
	}
	args = append(args, v.MainClass)
	args = append(args, format(game, opts.Platform, features, fields)...)

	if w := opts.Window; w != nil && w.Fullscreen {
		args = append(args, "--fullscreen")
	}
	return args, nil
}

// Command returns the java executable and its arguments
func Command(opts *Options) (string, []string, error) {
	args, err := Args(opts)
	if err != nil {
		return "", nil, err
	}
	return opts.java(), args, nil
}

func memoryArgs(m Memory) []string {
	maxRam := m.MaxMiB
	if maxRam == 0 {
		maxRam = DefaultMaxRAMMiB()
	}
	args := []string{fmt.Sprintf("-Xmx%dM", maxRam)}
	if m.MinMiB != 0 {
		args = append([]string{fmt.Sprintf("-Xms%dM", m.MinMiB)}, args...)
	}
	return args
}

func format(args []minecraft.Argument, platform minecraft.Platform, features minecraft.Features, fields map[string]string) []string {
	formatted := make([]string, 0, len(args))
	for _, arg := range args {
		if !arg.IsApplicable(platform, features) {
			continue
		}
		formatted = append(formatted, arg.Format(fields)...)
	}
	return formatted
}
