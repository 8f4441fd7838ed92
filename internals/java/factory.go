package java

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/minepkg/mclaunch/internals/downloadmgr"
	"github.com/minepkg/mclaunch/internals/minecraft"
)

// ErrNoRelease is returned if the api has no java for the requested version
var ErrNoRelease = fmt.Errorf("no java release found")

// Factory provides java runtimes in BaseDir
type Factory struct {
	BaseDir string
	Client  *resty.Client
	// APIURL defaults to AdoptiumAPI
	APIURL string
	// OnEvent receives the events of runtime downloads
	OnEvent func(r *downloadmgr.Resource, e downloadmgr.Event)
}

// NewFactory returns a factory storing runtimes in baseDir
func NewFactory(baseDir string, httpClient *http.Client) *Factory {
	return &Factory{
		BaseDir: baseDir,
		Client:  resty.NewWithClient(httpClient),
		APIURL:  AdoptiumAPI,
	}
}

// ForVersion returns the runtime matching the java version of v
func (f *Factory) ForVersion(ctx context.Context, v *minecraft.Version) (*Java, error) {
	return f.Version(ctx, v.JavaMajorVersion())
}

// Version returns the runtime for a java feature release (like 17). It might need
// to be downloaded with `Update`
func (f *Factory) Version(ctx context.Context, featureRelease int) (*Java, error) {
	fullName := fmt.Sprintf("%d-jre-hotspot", featureRelease)

	p, err := filepath.Abs(filepath.Join(f.BaseDir, fullName))
	if err != nil {
		return nil, err
	}

	if asset, err := readAssetFile(filepath.Join(p, assetFile)); err == nil {
		return &Java{dir: p, asset: asset, factory: f}, nil
	}

	// no cached version, downloading
	assets, err := f.Assets(ctx, &AssetRequest{FeatureVersion: featureRelease})
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 || len(assets[0].Binaries) == 0 {
		return nil, fmt.Errorf("%w for java %d", ErrNoRelease, featureRelease)
	}

	return &Java{dir: p, asset: &assets[0], needsDownloading: true, factory: f}, nil
}

func readAssetFile(file string) (*Asset, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	asset := &Asset{}
	if err := json.NewDecoder(f).Decode(asset); err != nil {
		return nil, err
	}
	return asset, nil
}
