// Package instances manages the global directory containing versions, libraries & assets
package instances

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/minepkg/mclaunch/internals/downloadmgr"
	"github.com/minepkg/mclaunch/internals/launch"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/minepkg/mclaunch/internals/mojang"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Instance is a directory containing everything required to run minecraft.
// this includes the libraries, assets & versions folder
type Instance struct {
	// GlobalDir defaults to $HOME/.mclaunch
	GlobalDir string
	Client    *mojang.Client
	// AssetsBase is where asset objects are downloaded from
	AssetsBase string
	// Concurrency limits parallel downloads. 0 is unlimited
	Concurrency int64
	// Fs is used for all reads & writes (defaults to the OS filesystem)
	Fs afero.Fs

	// OnEvent receives the events of every download
	OnEvent func(r *downloadmgr.Resource, e downloadmgr.Event)
	// OnProgress is called with the current stage and its progress in percent
	OnProgress func(stage string, p int)
}

// New returns an instance in globalDir
func New(globalDir string, client *mojang.Client) *Instance {
	return &Instance{
		GlobalDir:  globalDir,
		Client:     client,
		AssetsBase: minecraft.DefaultAssetsBase,
		Fs:         afero.NewOsFs(),
	}
}

// VersionsDir returns the path to the versions directory
func (i *Instance) VersionsDir() string {
	return filepath.Join(i.GlobalDir, "versions")
}

// AssetsDir returns the path to the assets directory
func (i *Instance) AssetsDir() string {
	return filepath.Join(i.GlobalDir, "assets")
}

// LibrariesDir returns the path to the libraries directory
func (i *Instance) LibrariesDir() string {
	return filepath.Join(i.GlobalDir, "libraries")
}

// ManifestPath returns where the raw manifest of a version is cached
func (i *Instance) ManifestPath(id string) string {
	return filepath.Join(i.VersionsDir(), id, id+".json")
}

func (i *Instance) fs() afero.Fs {
	if i.Fs == nil {
		return afero.NewOsFs()
	}
	return i.Fs
}

func (i *Instance) repository() string {
	if i.Client == nil || i.Client.Repository == "" {
		return minecraft.DefaultRepository
	}
	return i.Client.Repository
}

// readRaw returns the cached raw manifest of a version
func (i *Instance) readRaw(id string) (map[string]interface{}, error) {
	buf, err := afero.ReadFile(i.fs(), i.ManifestPath(id))
	if err != nil {
		return nil, err
	}
	raw := make(map[string]interface{})
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, errors.Wrapf(err, "cached manifest %s is corrupted", i.ManifestPath(id))
	}
	return raw, nil
}

// saveRaw caches the raw manifest of a version
func (i *Instance) saveRaw(id string, raw map[string]interface{}) error {
	buf, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	path := i.ManifestPath(id)
	if err := i.fs().MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return afero.WriteFile(i.fs(), path, buf, 0644)
}

// LoadRaw returns the raw manifest for query. Cached manifests are used
// if query is the exact id of one. Fetched manifests get cached
func (i *Instance) LoadRaw(ctx context.Context, query string) (map[string]interface{}, error) {
	if raw, err := i.readRaw(query); err == nil {
		return raw, nil
	}
	if i.Client == nil {
		return nil, errors.Wrapf(mojang.ErrVersionNotFound, "%s is not installed", query)
	}

	raw, err := i.Client.ResolveRaw(ctx, query)
	if err != nil {
		return nil, err
	}
	id, _ := raw["id"].(string)
	if id == "" {
		id = query
	}
	if err := i.saveRaw(id, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Resolve returns the version for query. Manifests that inherit from another
// version (like fabric profiles) get merged with their parent
func (i *Instance) Resolve(ctx context.Context, query string) (*minecraft.Version, error) {
	raw, err := i.LoadRaw(ctx, query)
	if err != nil {
		return nil, err
	}
	return i.ResolveManifest(ctx, raw)
}

// ResolveManifest parses raw, merging it with its parent if it has one
func (i *Instance) ResolveManifest(ctx context.Context, raw map[string]interface{}) (*minecraft.Version, error) {
	// nested inheritance is not used by any known loader, one level is enough
	if parentID, ok := raw["inheritsFrom"].(string); ok && parentID != "" {
		parent, err := i.LoadRaw(ctx, parentID)
		if err != nil {
			return nil, errors.Wrapf(err, "could not load parent version %s", parentID)
		}
		raw = minecraft.MergeManifests(raw, parent)
	}
	return minecraft.ParseVersion(raw, i.repository())
}

// ResolveFabric returns the fabric loader version for a minecraft version query.
// The fabric profile gets cached like every other manifest
func (i *Instance) ResolveFabric(ctx context.Context, query string, loader string) (*minecraft.Version, error) {
	if i.Client == nil {
		return nil, errors.New("no client to fetch the fabric profile")
	}
	list, err := i.Client.ListVersions(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := list.Find(query)
	if err != nil {
		return nil, errors.Wrapf(err, "could not find %q", query)
	}

	profile, err := i.Client.FetchFabricProfile(ctx, entry.ID, loader)
	if err != nil {
		return nil, err
	}
	if id, ok := profile["id"].(string); ok && id != "" {
		if err := i.saveRaw(id, profile); err != nil {
			return nil, err
		}
	}
	return i.ResolveManifest(ctx, profile)
}

// LaunchOptions returns launch options for the version using the directories of this instance
func (i *Instance) LaunchOptions(v *minecraft.Version) *launch.Options {
	return launch.NewOptions(v, i.GlobalDir)
}
