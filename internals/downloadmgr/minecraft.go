package downloadmgr

import (
	"context"
	"path/filepath"

	"github.com/minepkg/mclaunch/internals/minecraft"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// LibraryResources returns the resources of all libraries required on the platform,
// including the native classifier artifacts the platform needs.
// Artifacts without a URL are skipped. Paths are relative to libsDir.
func LibraryResources(libs minecraft.Libraries, platform minecraft.Platform, features minecraft.Features, libsDir string) []*Resource {
	resources := make([]*Resource, 0, len(libs))
	seen := make(map[string]bool)
	for _, lib := range libs.Required(platform, features) {
		for _, artifact := range lib.Artifacts(platform) {
			if !artifact.IsDownloadable() || seen[artifact.Path] {
				continue
			}
			seen[artifact.Path] = true
			resources = append(resources, FromArtifact(artifact, libsDir))
		}
	}
	return resources
}

// ClientResource returns the client jar of the version.
// It is placed at `<versionsDir>/<id>/<id>.jar`
func ClientResource(v *minecraft.Version, versionsDir string) *Resource {
	client := v.Downloads.Client.WithPath(v.ID + "/" + v.JarName())
	return FromArtifact(client, versionsDir)
}

// AssetIndexResource returns the asset index file of the version
func AssetIndexResource(v *minecraft.Version, assetsDir string) *Resource {
	return FromArtifact(v.AssetIndex.Artifact(), assetsDir)
}

// AssetResources returns one resource per distinct asset object in the index.
// Objects without a usable hash are skipped, [minecraft.ParseAssetIndex] rejects those.
func AssetResources(index *minecraft.AssetIndex, assetsDir string, base string) []*Resource {
	byHash := make(map[string]minecraft.AssetObject, len(index.Objects))
	for _, object := range index.Objects {
		if len(object.Hash) < 2 {
			continue
		}
		byHash[object.Hash] = object
	}

	hashes := maps.Keys(byHash)
	slices.Sort(hashes)

	resources := make([]*Resource, 0, len(hashes))
	for _, hash := range hashes {
		resources = append(resources, FromArtifact(byHash[hash].Artifact(base), assetsDir))
	}
	return resources
}

// DownloadLibs downloads every library required on the platform into libsDir
func (d *DownloadManager) DownloadLibs(ctx context.Context, libs minecraft.Libraries, platform minecraft.Platform, features minecraft.Features, libsDir string, admission Admission) Results {
	return d.Download(ctx, LibraryResources(libs, platform, features, filepath.Clean(libsDir)), admission)
}
