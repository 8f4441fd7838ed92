// Package java downloads java runtimes
package java

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mholt/archiver/v3"
	"github.com/minepkg/mclaunch/internals/downloadmgr"
)

// assetFile marks a complete runtime and contains the release it was installed from
const assetFile = "asset.json"

// Java is a java runtime
type Java struct {
	dir              string
	asset            *Asset
	needsDownloading bool
	factory          *Factory
}

// Bin returns the path of the java executable
func (j *Java) Bin() string {
	var bin string
	switch runtime.GOOS {
	case "windows":
		bin = "bin/java.exe"
	case "darwin": // macOS
		bin = "Contents/Home/bin/java"
	default:
		bin = "bin/java"
	}

	return filepath.Join(j.dir, bin)
}

// Dir is where the runtime is installed
func (j *Java) Dir() string {
	return j.dir
}

// Release returns the name of the installed release like "jdk-17.0.5+8"
func (j *Java) Release() string {
	return j.asset.ReleaseName
}

// NeedsDownloading is true if the runtime is not installed yet
func (j *Java) NeedsDownloading() bool {
	return j.needsDownloading
}

// Update downloads and extracts this java version
func (j *Java) Update(ctx context.Context) error {
	// remove everything
	if err := os.RemoveAll(j.dir); err != nil {
		return err
	}
	os.RemoveAll(j.dir + ".tmp")

	archive, err := j.download(ctx)
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	// the archive contains a single root directory like "jdk-17.0.5+8-jre"
	rootDirName := ""
	err = archiver.Walk(archive, func(f archiver.File) error {
		if f.IsDir() {
			rootDirName = f.Name()
			return archiver.ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return err
	}
	if rootDirName == "" {
		return fmt.Errorf("java archive %s has no root directory", filepath.Base(archive))
	}

	if err := archiver.Unarchive(archive, j.dir+".tmp"); err != nil {
		return err
	}
	// archiver can not extract without creating the root directory, so it is moved
	if err := os.Rename(filepath.Join(j.dir+".tmp", rootDirName), j.dir); err != nil {
		return err
	}
	// macos archives leave some files next to the root directory
	if err := os.RemoveAll(j.dir + ".tmp"); err != nil {
		return err
	}

	asset, err := os.Create(filepath.Join(j.dir, assetFile))
	if err != nil {
		return err
	}
	defer asset.Close()
	if err := json.NewEncoder(asset).Encode(j.asset); err != nil {
		return err
	}

	j.needsDownloading = false
	return nil
}

// download fetches and verifies the archive. It returns the path of the archive
func (j *Java) download(ctx context.Context) (string, error) {
	pkg := j.asset.Binaries[0].Package
	if err := os.MkdirAll(j.factory.BaseDir, os.ModePerm); err != nil {
		return "", err
	}

	// keeps the extension, archiver detects the format by it
	r := downloadmgr.NewResource(pkg.Link, filepath.Join(j.factory.BaseDir, pkg.Name), pkg.Checksum)
	r.HashAlgorithm = "sha256"
	r.Client = j.factory.Client.GetClient()

	var downloadErr error
	ok, err := r.Download(ctx, true, func(e downloadmgr.Event) {
		if e.Kind == downloadmgr.EventError {
			downloadErr = e.Err
		}
		if j.factory.OnEvent != nil {
			j.factory.OnEvent(r, e)
		}
	})
	if err != nil {
		return "", err
	}
	if !ok {
		os.Remove(r.Path)
		return "", fmt.Errorf("could not download java: %w", downloadErr)
	}
	return r.Path, nil
}
