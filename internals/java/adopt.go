package java

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// AdoptiumAPI is the base url of the adoptium api
const AdoptiumAPI = "https://api.adoptium.net/v3"

// AssetRequest filters the java releases of the adoptium api.
// Empty fields are set to defaults for the current system
type AssetRequest struct {
	FeatureVersion int
	ReleaseType    string
	Architecture   string
	ImageType      string
	JvmImpl        string
	OS             string
	Vendor         string
}

// Asset is one java release
type Asset struct {
	Binaries    []Binary  `json:"binaries"`
	ID          string    `json:"id"`
	ReleaseLink string    `json:"release_link"`
	ReleaseName string    `json:"release_name"`
	ReleaseType string    `json:"release_type"`
	Timestamp   time.Time `json:"timestamp"`
	UpdatedAt   time.Time `json:"updated_at"`
	Vendor      string    `json:"vendor"`
	VersionData struct {
		Build          int    `json:"build"`
		Major          int    `json:"major"`
		Minor          int    `json:"minor"`
		OpenjdkVersion string `json:"openjdk_version"`
		Security       int    `json:"security"`
		Semver         string `json:"semver"`
	} `json:"version_data"`
}

// Binary is the build of a release for one platform
type Binary struct {
	Architecture string  `json:"architecture"`
	HeapSize     string  `json:"heap_size"`
	ImageType    string  `json:"image_type"`
	JvmImpl      string  `json:"jvm_impl"`
	OS           string  `json:"os"`
	Package      Package `json:"package"`
	Project      string  `json:"project"`
	ScmRef       string  `json:"scm_ref"`
}

// Package is the downloadable archive of a binary
type Package struct {
	// Checksum is the sha256 of the archive
	Checksum     string `json:"checksum"`
	ChecksumLink string `json:"checksum_link"`
	Link         string `json:"link"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
}

func (r *AssetRequest) setDefaults() {
	if r.Architecture == "" {
		r.Architecture = archMap(runtime.GOARCH)
	}
	if r.OS == "" {
		osName := runtime.GOOS
		if osName == "darwin" {
			osName = "mac"
		}
		// alpine needs a different jdk
		if osName == "linux" {
			if _, err := os.Stat("/etc/alpine-release"); err == nil {
				osName = "alpine-linux"
			}
		}
		r.OS = osName
	}
	if r.JvmImpl == "" {
		r.JvmImpl = "hotspot"
	}
	if r.FeatureVersion == 0 {
		r.FeatureVersion = 8
	}
	if r.ReleaseType == "" {
		r.ReleaseType = "ga"
	}
	if r.Vendor == "" {
		r.Vendor = "eclipse"
	}
	if r.ImageType == "" {
		r.ImageType = "jre"
	}
}

// Assets returns the releases matching req. Newest first
func (f *Factory) Assets(ctx context.Context, req *AssetRequest) ([]Asset, error) {
	req.setDefaults()

	res, err := f.Client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"architecture": req.Architecture,
			"image_type":   req.ImageType,
			"jvm_impl":     req.JvmImpl,
			"os":           req.OS,
			"vendor":       req.Vendor,
		}).
		SetPathParams(map[string]string{
			"feature": strconv.Itoa(req.FeatureVersion),
			"release": req.ReleaseType,
		}).
		Get(f.APIURL + "/assets/feature_releases/{feature}/{release}")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("invalid status code: %s from %s", res.Status(), res.Request.URL)
	}

	parsed := make([]Asset, 0, 1)
	if err := json.Unmarshal(res.Body(), &parsed); err != nil {
		return nil, errors.Wrap(err, "invalid json from the adoptium api")
	}
	return parsed, nil
}

func archMap(arch string) string {
	theMap := map[string]string{
		"amd64": "x64",
		"arm64": "aarch64",
		"386":   "x86",
		// other "common" ones have the same name (for example arm)
	}

	mapped, ok := theMap[arch]
	if !ok {
		return arch
	}
	return mapped
}
