package minecraft

import (
	"strings"
)

// DefaultRepository is the maven repository used for libraries without an explicit URL
const DefaultRepository = "https://libraries.minecraft.net"

// Artifact is an object describing a "thing" that can be downloaded
// It is used to download libraries and the minecraft client itself.
// Artifacts are values: use the With* methods to get a changed copy.
type Artifact struct {
	// URL to download the file. Empty if the artifact can not be downloaded
	URL string `json:"url" yaml:"url" toml:"url" mapstructure:"url"`
	// Path of the file relative to the libraries (or version) folder
	Path string `json:"path" yaml:"path" toml:"path" mapstructure:"path"`
	// SHA1 is the hex encoded sha1 of the file. Can be empty
	SHA1 string `json:"sha1" yaml:"sha1" toml:"sha1" mapstructure:"sha1"`
	// Size in bytes (0 if unknown)
	Size int64 `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty" mapstructure:"size"`
}

// IsDownloadable returns true if the artifact has a URL
func (a Artifact) IsDownloadable() bool {
	return a.URL != ""
}

// WithSHA1 returns a copy of a with the given sha1
func (a Artifact) WithSHA1(sha1 string) Artifact {
	a.SHA1 = sha1
	return a
}

// WithURL returns a copy of a with the given url
func (a Artifact) WithURL(url string) Artifact {
	a.URL = url
	return a
}

// WithPath returns a copy of a with the given path
func (a Artifact) WithPath(path string) Artifact {
	a.Path = path
	return a
}

// ParseArtifact parses an untyped artifact. Every field that is missing in raw
// is taken from def.
func ParseArtifact(raw interface{}, def Artifact, field string) (Artifact, error) {
	obj, err := rawObject(raw, field)
	if err != nil {
		return Artifact{}, err
	}

	var parsed Artifact
	if err := decode(obj, &parsed, field); err != nil {
		return Artifact{}, err
	}

	artifact := def
	if parsed.URL != "" {
		artifact.URL = parsed.URL
	}
	if parsed.Path != "" {
		artifact.Path = parsed.Path
	}
	if parsed.SHA1 != "" {
		artifact.SHA1 = parsed.SHA1
	}
	if parsed.Size != 0 {
		artifact.Size = parsed.Size
	}
	return artifact, nil
}

// ArtifactFromName returns the artifact described by a maven coordinate
// like `com.mojang:patchy:1.1` or `org.lwjgl:lwjgl:3.2.2:natives-linux`.
// Extra segments are appended to the version as `-extra`.
// Coordinates with less than 3 segments only get a path and no URL.
func ArtifactFromName(name string, repo string) Artifact {
	segments := strings.Split(name, ":")
	if len(segments) < 3 {
		return Artifact{Path: strings.Join(segments, "-") + ".jar"}
	}

	group, artifact, version := segments[0], segments[1], segments[2]
	fileVersion := version
	for _, extra := range segments[3:] {
		fileVersion += "-" + extra
	}

	path := strings.ReplaceAll(group, ".", "/") + "/" + artifact + "/" + version + "/" + artifact + "-" + fileVersion + ".jar"
	return Artifact{
		Path: path,
		URL:  strings.TrimSuffix(repo, "/") + "/" + path,
	}
}
