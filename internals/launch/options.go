// Package launch builds the command line of a resolved version and starts it
package launch

import (
	"path/filepath"

	"github.com/dchest/uniuri"
	"github.com/minepkg/mclaunch/internals/minecraft"
)

const (
	// DefaultLauncherName is passed to the game as `launcher_name`
	DefaultLauncherName = "mclaunch"
	// DefaultLauncherVersion is passed to the game as `launcher_version`
	DefaultLauncherVersion = "0.0.0"
)

// Window is the initial game window size
type Window struct {
	Width      int
	Height     int
	Fullscreen bool
}

// Memory limits in MiB. 0 lets the JVM (or the default heuristic) decide
type Memory struct {
	MinMiB int
	MaxMiB int
}

// Options are everything needed to build the launch command of a version
type Options struct {
	Version  *minecraft.Version
	Platform minecraft.Platform
	// Features are matched against argument rules. has_custom_resolution is set
	// automatically if Window is set
	Features minecraft.Features
	// User is the player. nil launches in demo mode
	User minecraft.LaunchAuthData

	// GameDir contains saves, mods & options
	GameDir      string
	AssetsDir    string
	LibrariesDir string
	VersionsDir  string
	// NativesDir is where native libraries are extracted to
	NativesDir string

	// Java is the java executable (defaults to "java")
	Java   string
	Memory Memory
	Window *Window
	// ExtraArgs are appended to the jvm and game arguments of the version
	ExtraArgs *minecraft.Arguments
	// Fields are merged over the computed template fields
	Fields map[string]string
	// Env is appended to the environment of the process
	Env []string

	LauncherName    string
	LauncherVersion string
}

// NewOptions returns options for the version using the default layout below root:
// `libraries`, `versions`, `assets` and a fresh `natives/<id>-<random>` folder.
// The game directory defaults to root.
func NewOptions(version *minecraft.Version, root string) *Options {
	return &Options{
		Version:         version,
		Platform:        minecraft.CurrentPlatform(),
		Features:        minecraft.Features{},
		GameDir:         root,
		AssetsDir:       filepath.Join(root, "assets"),
		LibrariesDir:    filepath.Join(root, "libraries"),
		VersionsDir:     filepath.Join(root, "versions"),
		NativesDir:      filepath.Join(root, "natives", version.ID+"-"+uniuri.NewLen(8)),
		Java:            "java",
		LauncherName:    DefaultLauncherName,
		LauncherVersion: DefaultLauncherVersion,
	}
}

// ClientJar returns the path of the client jar
func (o *Options) ClientJar() string {
	return filepath.Join(o.VersionsDir, o.Version.ID, o.Version.JarName())
}

// features returns the caller features plus the ones derived from the options
func (o *Options) features() minecraft.Features {
	features := make(minecraft.Features, len(o.Features)+2)
	for name, enabled := range o.Features {
		features[name] = enabled
	}
	if o.Window != nil {
		features["has_custom_resolution"] = true
	}
	if o.User == nil {
		features["is_demo_user"] = true
	}
	return features
}

func (o *Options) java() string {
	if o.Java == "" {
		return "java"
	}
	return o.Java
}
