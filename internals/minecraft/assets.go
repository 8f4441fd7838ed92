package minecraft

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// DefaultAssetsBase is where asset objects are downloaded from
const DefaultAssetsBase = "https://resources.download.minecraft.net"

// AssetIndexRef points to the asset index of a version
type AssetIndexRef struct {
	// ID is the same as the `assets` field of the version
	ID        string `json:"id" yaml:"id" toml:"id" mapstructure:"id"`
	URL       string `json:"url" yaml:"url" toml:"url" mapstructure:"url"`
	SHA1      string `json:"sha1" yaml:"sha1" toml:"sha1" mapstructure:"sha1"`
	Size      int64  `json:"size" yaml:"size" toml:"size" mapstructure:"size"`
	TotalSize int64  `json:"totalSize" yaml:"totalSize" toml:"totalSize" mapstructure:"totalSize"`
}

// Artifact returns the index file as an artifact relative to the assets folder
func (a AssetIndexRef) Artifact() Artifact {
	return Artifact{
		URL:  a.URL,
		Path: "indexes/" + a.ID + ".json",
		SHA1: a.SHA1,
		Size: a.Size,
	}
}

// AssetIndex is just a map containing AssetObjects
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
	// Virtual indexes (pre 1.7) expect the assets in `virtual/legacy`
	Virtual bool `json:"virtual,omitempty"`
	// MapToResources indexes (pre 1.6) expect the assets in the `resources` folder of the game
	MapToResources bool `json:"map_to_resources,omitempty"`
}

// ParseAssetIndex parses a downloaded asset index.
// Every object needs a sha1 hash, it is also the download path of the object.
func ParseAssetIndex(data []byte) (*AssetIndex, error) {
	index := AssetIndex{}
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, errors.Wrap(err, "asset index is not valid json")
	}
	for name, object := range index.Objects {
		if !object.validHash() {
			return nil, errors.Errorf("asset %q has an invalid hash %q", name, object.Hash)
		}
	}
	return &index, nil
}

// AssetObject is one minecraft asset
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

func (a AssetObject) validHash() bool {
	if len(a.Hash) != 40 {
		return false
	}
	_, err := hex.DecodeString(a.Hash)
	return err == nil
}

// UnixPath returns the path including the folder
// example: fe/fe32f3b8…
func (a AssetObject) UnixPath() string {
	if len(a.Hash) < 2 {
		return a.Hash
	}
	return a.Hash[:2] + "/" + a.Hash
}

// Artifact returns the object as an artifact relative to the assets folder
func (a AssetObject) Artifact(base string) Artifact {
	return Artifact{
		URL:  strings.TrimSuffix(base, "/") + "/" + a.UnixPath(),
		Path: "objects/" + a.UnixPath(),
		SHA1: a.Hash,
		Size: a.Size,
	}
}
