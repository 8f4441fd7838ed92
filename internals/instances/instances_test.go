package instances

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/minepkg/mclaunch/internals/downloadmgr"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/minepkg/mclaunch/internals/mojang"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

const (
	clientJar = "client jar"
	patchyJar = "patchy jar"
	iconPNG   = "png"
)

type fakeMeta struct {
	srv      *httptest.Server
	requests int64
}

func newFakeMeta(t *testing.T, brokenAsset bool) *fakeMeta {
	t.Helper()
	f := &fakeMeta{}
	mux := http.NewServeMux()

	assetIndex := fmt.Sprintf(`{"objects": {"icons/icon.png": {"hash": "%s", "size": 3}}}`, sum(iconPNG))
	if brokenAsset {
		assetIndex = `{"objects": {"icons/icon.png": {"hash": "0000000000000000000000000000000000000000", "size": 3}}}`
	}

	mux.HandleFunc("/versions.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"latest": {"release": "1.19.2"}, "versions": [{"id": "1.19.2", "type": "release", "url": "%s/1.19.2.json"}]}`, f.srv.URL)
	})
	mux.HandleFunc("/1.19.2.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"id": "1.19.2", "type": "release", "assets": "1.19",
			"mainClass": "net.minecraft.client.main.Main",
			"assetIndex": {"id": "1.19", "url": "%[1]s/indexes/1.19.json", "sha1": "%[2]s"},
			"downloads": {"client": {"url": "%[1]s/client.jar", "sha1": "%[3]s"}},
			"libraries": [{"name": "com.mojang:patchy:1.1", "downloads": {"artifact": {
				"url": "%[1]s/patchy.jar", "path": "com/mojang/patchy/1.1/patchy-1.1.jar", "sha1": "%[4]s"
			}}}]
		}`, f.srv.URL, sum(assetIndex), sum(clientJar), sum(patchyJar))
	})
	mux.HandleFunc("/v2/versions/loader/1.19.2/0.14.10/profile/json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "fabric-loader-0.14.10-1.19.2", "inheritsFrom": "1.19.2", "type": "release",
			"mainClass": "net.fabricmc.loader.impl.launch.knot.KnotClient",
			"libraries": [{"name": "net.fabricmc:fabric-loader:0.14.10", "url": "https://maven.fabricmc.net/"}]}`))
	})
	mux.HandleFunc("/indexes/1.19.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(assetIndex))
	})
	mux.HandleFunc("/client.jar", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(clientJar)) })
	mux.HandleFunc("/patchy.jar", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(patchyJar)) })
	mux.HandleFunc("/objects/", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(iconPNG)) })

	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.requests, 1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func testInstance(t *testing.T, meta *fakeMeta) *Instance {
	client := mojang.New(meta.srv.Client())
	client.VersionListURL = meta.srv.URL + "/versions.json"
	client.FabricMetaURL = meta.srv.URL

	i := New("/mc", client)
	i.Fs = afero.NewMemMapFs()
	i.AssetsBase = meta.srv.URL + "/objects"
	return i
}

func TestInstance_Resolve_Caches(t *testing.T) {
	meta := newFakeMeta(t, false)
	i := testInstance(t, meta)
	ctx := context.Background()

	v, err := i.Resolve(ctx, "latest")
	require.NoError(t, err)
	assert.Equal(t, "1.19.2", v.ID)

	exists, _ := afero.Exists(i.Fs, filepath.Join("/mc", "versions", "1.19.2", "1.19.2.json"))
	assert.True(t, exists, "manifest should be cached")

	before := atomic.LoadInt64(&meta.requests)
	cached, err := i.Resolve(ctx, "1.19.2")
	require.NoError(t, err)
	assert.Equal(t, v, cached)
	assert.Equal(t, before, atomic.LoadInt64(&meta.requests), "cached manifest should not hit the network")
}

func TestInstance_Resolve_Offline(t *testing.T) {
	i := New("/mc", nil)
	i.Fs = afero.NewMemMapFs()

	_, err := i.Resolve(context.Background(), "1.19.2")
	assert.ErrorIs(t, err, mojang.ErrVersionNotFound)
}

func TestInstance_ResolveFabric(t *testing.T) {
	i := testInstance(t, newFakeMeta(t, false))

	v, err := i.ResolveFabric(context.Background(), "1.19.2", "0.14.10")
	require.NoError(t, err)
	assert.Equal(t, "fabric-loader-0.14.10-1.19.2", v.ID)
	assert.Equal(t, "1.19", v.Assets)
	assert.Len(t, v.Libraries, 2)

	// the profile is cached and resolves offline now
	i.Client = nil
	cached, err := i.Resolve(context.Background(), "fabric-loader-0.14.10-1.19.2")
	require.NoError(t, err)
	assert.Equal(t, v.MainClass, cached.MainClass)
}

func TestInstance_Fetch(t *testing.T) {
	meta := newFakeMeta(t, false)
	i := testInstance(t, meta)
	i.Concurrency = 2
	ctx := context.Background()

	progress := make(map[string]int)
	i.OnProgress = func(stage string, p int) { progress[stage] = p }

	v, err := i.Resolve(ctx, "1.19.2")
	require.NoError(t, err)

	linux := minecraft.Platform{Name: "linux", Arch: "x64"}
	report, err := i.Fetch(ctx, v, linux, nil)
	require.NoError(t, err)
	require.NoError(t, report.Err())
	assert.Equal(t, []string{StageClient, StageLibraries, StageAssetIndex, StageAssets}, report.Stages)
	assert.Equal(t, 100, progress[StageAssets])

	files := map[string]string{
		"/mc/versions/1.19.2/1.19.2.jar":                              clientJar,
		"/mc/libraries/com/mojang/patchy/1.1/patchy-1.1.jar":          patchyJar,
		"/mc/assets/objects/" + sum(iconPNG)[:2] + "/" + sum(iconPNG): iconPNG,
	}
	for path, want := range files {
		got, err := afero.ReadFile(i.Fs, filepath.FromSlash(path))
		if assert.NoError(t, err, path) {
			assert.Equal(t, want, string(got), path)
		}
	}

	// everything is valid now, nothing gets downloaded again
	before := atomic.LoadInt64(&meta.requests)
	report, err = i.Fetch(ctx, v, linux, nil)
	require.NoError(t, err)
	assert.NoError(t, report.Err())
	assert.Equal(t, before, atomic.LoadInt64(&meta.requests))
}

func TestInstance_Fetch_PartialFailure(t *testing.T) {
	i := testInstance(t, newFakeMeta(t, true))
	ctx := context.Background()

	var errorEvents int64
	i.OnEvent = func(r *downloadmgr.Resource, e downloadmgr.Event) {
		if e.Kind == downloadmgr.EventError {
			atomic.AddInt64(&errorEvents, 1)
		}
	}

	v, err := i.Resolve(ctx, "1.19.2")
	require.NoError(t, err)

	report, err := i.Fetch(ctx, v, minecraft.Platform{Name: "linux", Arch: "x64"}, nil)
	require.NoError(t, err)

	assert.True(t, report.Results[StageClient].OK())
	assert.True(t, report.Results[StageLibraries].OK())
	assert.Len(t, report.Failed(), 1)
	assert.Error(t, report.Err())
	assert.Equal(t, int64(1), atomic.LoadInt64(&errorEvents))
}

func TestInstance_LaunchOptions(t *testing.T) {
	i := New("/mc", nil)
	v := minecraft.NewVersion("1.19.2", "release", "1.19", minecraft.VersionDownloads{}, nil, nil, minecraft.AssetIndexRef{}, "Main")

	opts := i.LaunchOptions(v)
	assert.Equal(t, i.LibrariesDir(), opts.LibrariesDir)
	assert.Equal(t, i.AssetsDir(), opts.AssetsDir)
	assert.Equal(t, i.VersionsDir(), opts.VersionsDir)
}
