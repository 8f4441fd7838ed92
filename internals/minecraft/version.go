package minecraft

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Version is a fully resolved version.json manifest that is used to launch minecraft instances
type Version struct {
	ID   string `json:"id" yaml:"id" toml:"id"`
	Type string `json:"type" yaml:"type" toml:"type"`
	// Assets is the id of the asset index to use
	Assets     string           `json:"assets" yaml:"assets" toml:"assets"`
	Downloads  VersionDownloads `json:"downloads" yaml:"downloads" toml:"downloads"`
	Arguments  Arguments        `json:"arguments" yaml:"arguments" toml:"arguments"`
	Libraries  Libraries        `json:"libraries" yaml:"libraries" toml:"libraries"`
	AssetIndex AssetIndexRef    `json:"assetIndex" yaml:"assetIndex" toml:"assetIndex"`
	MainClass  string           `json:"mainClass" yaml:"mainClass" toml:"mainClass"`
	// JavaVersion is the java runtime the version was built for. nil for old versions
	JavaVersion *JavaVersion `json:"javaVersion,omitempty" yaml:"javaVersion,omitempty" toml:"javaVersion,omitempty"`
}

// DefaultJavaMajorVersion is used for versions that do not require a java version
const DefaultJavaMajorVersion = 8

// JavaVersion is the `javaVersion` object of a version
type JavaVersion struct {
	Component    string `json:"component" yaml:"component" toml:"component" mapstructure:"component"`
	MajorVersion int    `json:"majorVersion" yaml:"majorVersion" toml:"majorVersion" mapstructure:"majorVersion"`
}

// JavaMajorVersion returns the required java major version
func (v *Version) JavaMajorVersion() int {
	if v.JavaVersion == nil || v.JavaVersion.MajorVersion == 0 {
		return DefaultJavaMajorVersion
	}
	return v.JavaVersion.MajorVersion
}

// VersionDownloads are the main downloads of a version
type VersionDownloads struct {
	Client Artifact `json:"client" yaml:"client" toml:"client"`
}

// NewVersion returns a version from already typed values. nil arguments or libraries
// default to empty lists (with the default jvm arguments).
func NewVersion(id, versionType, assets string, downloads VersionDownloads, args *Arguments, libs Libraries, assetIndex AssetIndexRef, mainClass string) *Version {
	arguments := Arguments{Game: []Argument{}, JVM: DefaultJVMArguments()}
	if args != nil {
		arguments = *args
	}
	if libs == nil {
		libs = Libraries{}
	}
	return &Version{
		ID:         id,
		Type:       versionType,
		Assets:     assets,
		Downloads:  downloads,
		Arguments:  arguments,
		Libraries:  libs,
		AssetIndex: assetIndex,
		MainClass:  mainClass,
	}
}

// JarName returns the file name of the client jar
func (v *Version) JarName() string {
	return v.ID + ".jar"
}

// ParseVersionJSON parses a raw version.json
func ParseVersionJSON(data []byte, repo string) (*Version, error) {
	raw := make(map[string]interface{})
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "version manifest is not valid json")
	}
	return ParseVersion(raw, repo)
}

// ParseVersion validates and normalizes an untyped version manifest.
// Missing mandatory fields result in a [MissingFieldError] naming the field.
// The legacy `minecraftArguments` string is appended to the game arguments.
// Libraries without an explicit URL are resolved against repo.
func ParseVersion(raw map[string]interface{}, repo string) (*Version, error) {
	if repo == "" {
		repo = DefaultRepository
	}

	id, ok := rawString(raw, "id")
	if !ok {
		return nil, &MissingFieldError{Object: "version", Field: "id"}
	}
	versionType, ok := rawString(raw, "type")
	if !ok {
		return nil, &MissingFieldError{Object: "version", Field: "type"}
	}
	assets, ok := rawString(raw, "assets")
	if !ok {
		return nil, &MissingFieldError{Object: "version", Field: "assets"}
	}
	if raw["downloads"] == nil {
		return nil, &MissingFieldError{Object: "version", Field: "downloads"}
	}
	mainClass, ok := rawString(raw, "mainClass")
	if !ok {
		return nil, &MissingFieldError{Object: "version", Field: "mainClass"}
	}
	if raw["assetIndex"] == nil {
		return nil, &MissingFieldError{Object: "version", Field: "assetIndex"}
	}

	downloads, err := parseVersionDownloads(raw["downloads"])
	if err != nil {
		return nil, err
	}

	var assetIndex AssetIndexRef
	if err := decode(raw["assetIndex"], &assetIndex, "assetIndex"); err != nil {
		return nil, err
	}

	args, err := ParseArguments(raw["arguments"])
	if err != nil {
		return nil, err
	}
	if legacy, ok := raw["minecraftArguments"]; ok && legacy != nil {
		s, ok := legacy.(string)
		if !ok {
			return nil, &InvalidFieldError{Field: "minecraftArguments", Reason: "must be a string"}
		}
		args.Game = append(args.Game, LegacyArguments(s)...)
	}

	libs, err := ParseLibraries(raw["libraries"], repo)
	if err != nil {
		return nil, err
	}

	v := NewVersion(id, versionType, assets, downloads, &args, libs, assetIndex, mainClass)
	if raw["javaVersion"] != nil {
		v.JavaVersion = &JavaVersion{}
		if err := decode(raw["javaVersion"], v.JavaVersion, "javaVersion"); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func parseVersionDownloads(raw interface{}) (VersionDownloads, error) {
	obj, err := rawObject(raw, "downloads")
	if err != nil {
		return VersionDownloads{}, err
	}
	if obj["client"] == nil {
		return VersionDownloads{}, &MissingFieldError{Object: "version", Field: "downloads.client"}
	}
	client, err := ParseArtifact(obj["client"], Artifact{Path: "client.jar"}, "downloads.client")
	if err != nil {
		return VersionDownloads{}, err
	}
	return VersionDownloads{Client: client}, nil
}

// MergeManifests merges an untyped child manifest (like a fabric profile that
// `inheritsFrom` a vanilla version) with its parent and returns the merged manifest.
// Neither input is modified.
// Scalars missing in the child are inherited, libraries and arguments are
// concatenated with the parent entries first.
func MergeManifests(child, parent map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(parent)+len(child))
	for k, v := range parent {
		merged[k] = v
	}
	for k, v := range child {
		if v != nil {
			merged[k] = v
		}
	}
	delete(merged, "inheritsFrom")

	merged["libraries"] = concatList(parent["libraries"], child["libraries"])

	parentArgs, _ := parent["arguments"].(map[string]interface{})
	childArgs, _ := child["arguments"].(map[string]interface{})
	if parentArgs != nil || childArgs != nil {
		args := map[string]interface{}{
			"game": concatList(parentArgs["game"], childArgs["game"]),
		}
		_, parentJVM := parentArgs["jvm"]
		_, childJVM := childArgs["jvm"]
		if parentJVM || childJVM {
			args["jvm"] = concatList(parentArgs["jvm"], childArgs["jvm"])
		}
		merged["arguments"] = args
	}

	return merged
}

func concatList(a, b interface{}) []interface{} {
	first, _ := a.([]interface{})
	second, _ := b.([]interface{})
	list := make([]interface{}, 0, len(first)+len(second))
	list = append(list, first...)
	return append(list, second...)
}
