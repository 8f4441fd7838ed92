package minecraft

import (
	"errors"
	"path/filepath"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrNoNatives is returned when natives are requested for a platform the library has none for
var ErrNoNatives = errors.New("library has no natives for this platform")

// DefaultExtractExclude is used if a library does not define what to exclude when extracting natives
var DefaultExtractExclude = []string{"META-INF/"}

// Unpacker unpacks an archive into a directory, skipping entries that start with
// one of the excludes
type Unpacker interface {
	Unpack(archive string, dest string, excludes []string) error
}

// Libraries as a collection of minecraft libs
type Libraries []Library

// Required returns only the libraries that are needed on the given platform
func (l Libraries) Required(platform Platform, features Features) Libraries {
	required := make(Libraries, 0, len(l))
	for _, lib := range l {
		// did some rules not apply? skip this library
		if !lib.IsApplicable(platform, features) {
			continue
		}
		// skip native not available for this platform
		if len(lib.Natives) != 0 && !lib.HasNatives(platform.Name) {
			continue
		}
		required = append(required, lib)
	}
	return required
}

// Library is a minecraft library
type Library struct {
	// Name is the maven coordinate of this library (`group:artifact:version`)
	Name      string           `json:"name" yaml:"name" toml:"name"`
	Downloads LibraryDownloads `json:"downloads" yaml:"downloads" toml:"downloads"`
	// Natives is a map of OS names to native classifier templates (like `natives-windows-${arch}`).
	// This field is no longer used after 1.19
	Natives map[string]string `json:"natives,omitempty" yaml:"natives,omitempty" toml:"natives,omitempty"`
	Extract LibraryExtract    `json:"extract" yaml:"extract" toml:"extract"`
	// Rules is a list of rules that determine whether this library should be included.
	// If no rules are specified, the library is included by default.
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
}

// LibraryDownloads are the downloadable files of a library
type LibraryDownloads struct {
	Artifact Artifact `json:"artifact" yaml:"artifact" toml:"artifact"`
	// ArtifactDeclared is true if the manifest listed the artifact itself
	// instead of it being derived from the library name
	ArtifactDeclared bool `json:"-" yaml:"-" toml:"-"`
	// Classifiers are additional artifacts like `sources` or `natives-linux`
	Classifiers map[string]Artifact `json:"classifiers,omitempty" yaml:"classifiers,omitempty" toml:"classifiers,omitempty"`
}

// WithClassifier returns a copy of d with the classifier artifact set
func (d LibraryDownloads) WithClassifier(classifier string, artifact Artifact) LibraryDownloads {
	classifiers := make(map[string]Artifact, len(d.Classifiers)+1)
	maps.Copy(classifiers, d.Classifiers)
	classifiers[classifier] = artifact
	d.Classifiers = classifiers
	return d
}

// LibraryExtract describes how natives get extracted
type LibraryExtract struct {
	Exclude []string `json:"exclude" yaml:"exclude" toml:"exclude" mapstructure:"exclude"`
}

// IsApplicable returns true if the rules of this library allow it on the given platform
func (l Library) IsApplicable(platform Platform, features Features) bool {
	return IsAllowable(l.Rules, platform, features)
}

// HasNatives returns true if the library ships natives for the os
func (l Library) HasNatives(os string) bool {
	return l.Natives[os] != ""
}

// NativeClassifier returns the classifier of the natives for the platform
// with `${arch}` replaced. Empty if there are no natives for this platform.
func (l Library) NativeClassifier(platform Platform) string {
	template := l.Natives[platform.Name]
	if template == "" {
		return ""
	}
	return FormatTemplate(template, map[string]string{"arch": archBits(platform)})
}

// NativeArtifact returns the classifier artifact containing the natives for the platform
func (l Library) NativeArtifact(platform Platform) (Artifact, bool) {
	classifier := l.NativeClassifier(platform)
	if classifier == "" {
		return Artifact{}, false
	}
	artifact, ok := l.Downloads.Classifiers[classifier]
	return artifact, ok
}

// Artifacts returns everything that has to be downloaded for this library on the platform.
// The derived main artifact is skipped for native-only libraries.
func (l Library) Artifacts(platform Platform) []Artifact {
	artifacts := make([]Artifact, 0, 2)
	native, hasNative := l.NativeArtifact(platform)
	if !hasNative || l.Downloads.ArtifactDeclared {
		artifacts = append(artifacts, l.Downloads.Artifact)
	}
	if hasNative {
		artifacts = append(artifacts, native)
	}
	return artifacts
}

// ExtractNatives extracts the natives of this library for the platform into nativesDir
// using unpacker. libsDir is the directory all library paths are relative to.
func (l Library) ExtractNatives(platform Platform, libsDir string, nativesDir string, unpacker Unpacker) error {
	artifact, ok := l.NativeArtifact(platform)
	if !ok {
		return ErrNoNatives
	}
	archive := filepath.Join(libsDir, filepath.FromSlash(artifact.Path))
	return unpacker.Unpack(archive, nativesDir, l.Extract.Exclude)
}

func archBits(platform Platform) string {
	if platform.Is64Bit() {
		return "64"
	}
	return "32"
}

// ParseLibraries parses the `libraries` list of a manifest
func ParseLibraries(raw interface{}, repo string) (Libraries, error) {
	if raw == nil {
		return Libraries{}, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, &InvalidFieldError{Field: "libraries", Reason: "must be a list"}
	}

	libs := make(Libraries, 0, len(list))
	for _, entry := range list {
		lib, err := ParseLibrary(entry, repo)
		if err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}
	return libs, nil
}

// ParseLibrary parses one untyped library. The main artifact defaults to the one derived
// from the library name. Every native classifier gets an artifact derived from
// `name:classifier` unless the manifest lists one.
// A library `url` overwrites repo for this library.
func ParseLibrary(raw interface{}, repo string) (Library, error) {
	obj, err := rawObject(raw, "library")
	if err != nil {
		return Library{}, err
	}

	name, ok := rawString(obj, "name")
	if !ok {
		return Library{}, &MissingFieldError{Object: "library", Field: "name"}
	}
	field := "library " + quote(name)

	if url, ok := rawString(obj, "url"); ok {
		repo = url
	}

	var natives map[string]string
	if err := decode(obj["natives"], &natives, field+" natives"); err != nil {
		return Library{}, err
	}
	if natives == nil {
		natives = map[string]string{}
	}

	downloads, err := parseLibraryDownloads(obj["downloads"], name, natives, repo, field)
	if err != nil {
		return Library{}, err
	}

	extract := LibraryExtract{}
	if rawExtract, ok := obj["extract"]; ok {
		if err := decode(rawExtract, &extract, field+" extract"); err != nil {
			return Library{}, err
		}
	} else {
		extract.Exclude = append([]string{}, DefaultExtractExclude...)
	}

	rules, err := ParseRules(obj["rules"], field+" rules")
	if err != nil {
		return Library{}, err
	}

	return Library{
		Name:      name,
		Downloads: downloads,
		Natives:   natives,
		Extract:   extract,
		Rules:     rules,
	}, nil
}

func parseLibraryDownloads(raw interface{}, name string, natives map[string]string, repo string, field string) (LibraryDownloads, error) {
	obj, err := rawObject(raw, field+" downloads")
	if err != nil {
		return LibraryDownloads{}, err
	}

	downloads := LibraryDownloads{Classifiers: map[string]Artifact{}}

	// library artifact
	defaultArtifact := ArtifactFromName(name, repo)
	rawArtifact, declared := obj["artifact"]
	downloads.ArtifactDeclared = declared && rawArtifact != nil
	downloads.Artifact, err = ParseArtifact(rawArtifact, defaultArtifact, field+" artifact")
	if err != nil {
		return LibraryDownloads{}, err
	}

	// classifiers
	rawClassifiers, err := rawObject(obj["classifiers"], field+" classifiers")
	if err != nil {
		return LibraryDownloads{}, err
	}

	wanted := make(map[string]interface{}, len(rawClassifiers))
	maps.Copy(wanted, rawClassifiers)
	for _, classifier := range nativeClassifiers(natives) {
		if _, ok := wanted[classifier]; !ok {
			wanted[classifier] = nil
		}
	}

	classifiers := maps.Keys(wanted)
	slices.Sort(classifiers)
	for _, classifier := range classifiers {
		def := ArtifactFromName(name+":"+classifier, repo)
		artifact, err := ParseArtifact(wanted[classifier], def, field+" classifier "+quote(classifier))
		if err != nil {
			return LibraryDownloads{}, err
		}
		downloads.Classifiers[classifier] = artifact
	}

	return downloads, nil
}

// nativeClassifiers returns every classifier the natives map can resolve to.
// Templates using `${arch}` produce both the 32 and 64 bit variant.
func nativeClassifiers(natives map[string]string) []string {
	classifiers := make([]string, 0, len(natives))
	for _, template := range natives {
		if !strings.Contains(template, "${arch}") {
			classifiers = append(classifiers, template)
			continue
		}
		for _, bits := range []string{"32", "64"} {
			classifiers = append(classifiers, FormatTemplate(template, map[string]string{"arch": bits}))
		}
	}
	return classifiers
}
