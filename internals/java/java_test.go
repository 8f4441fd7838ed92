package java

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArchive(t *testing.T) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	_, err := w.Create("jdk-17.0.5+8-jre/")
	require.NoError(t, err)
	f, err := w.Create("jdk-17.0.5+8-jre/bin/java")
	require.NoError(t, err)
	f.Write([]byte("#!/bin/sh\n"))
	require.NoError(t, w.Close())
	return buf.Bytes()
}

type adoptiumServer struct {
	*httptest.Server
	archive  []byte
	checksum string
	queries  []string
}

func newAdoptiumServer(t *testing.T, checksum string) *adoptiumServer {
	t.Helper()
	s := &adoptiumServer{archive: testArchive(t)}
	sum := sha256.Sum256(s.archive)
	s.checksum = hex.EncodeToString(sum[:])
	if checksum == "" {
		checksum = s.checksum
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v3/assets/feature_releases/17/ga", func(w http.ResponseWriter, r *http.Request) {
		s.queries = append(s.queries, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Asset{{
			ReleaseName: "jdk-17.0.5+8",
			Binaries: []Binary{{
				ImageType: "jre",
				Package: Package{
					Checksum: checksum,
					Link:     s.URL + "/download/OpenJDK17U-jre.zip",
					Name:     "OpenJDK17U-jre.zip",
				},
			}},
		}})
	})
	mux.HandleFunc("/v3/assets/feature_releases/99/ga", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	mux.HandleFunc("/download/OpenJDK17U-jre.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(s.archive)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func testFactory(srv *adoptiumServer, dir string) *Factory {
	f := NewFactory(dir, srv.Client())
	f.APIURL = srv.URL + "/v3"
	return f
}

func TestFactory_ForVersion(t *testing.T) {
	srv := newAdoptiumServer(t, "")
	dir := t.TempDir()
	factory := testFactory(srv, dir)

	v := minecraft.NewVersion("1.19.2", "release", "1.19", minecraft.VersionDownloads{}, nil, nil, minecraft.AssetIndexRef{}, "Main")
	v.JavaVersion = &minecraft.JavaVersion{Component: "java-runtime-gamma", MajorVersion: 17}

	j, err := factory.ForVersion(context.Background(), v)
	require.NoError(t, err)
	assert.True(t, j.NeedsDownloading())
	assert.Equal(t, filepath.Join(dir, "17-jre-hotspot"), j.Dir())
	require.Len(t, srv.queries, 1)
	assert.Contains(t, srv.queries[0], "image_type=jre")
	assert.Contains(t, srv.queries[0], "jvm_impl=hotspot")
	assert.Contains(t, srv.queries[0], "vendor=eclipse")

	require.NoError(t, j.Update(context.Background()))
	assert.False(t, j.NeedsDownloading())
	assert.FileExists(t, filepath.Join(j.Dir(), "bin", "java"))
	assert.NoFileExists(t, filepath.Join(dir, "OpenJDK17U-jre.zip"), "archive should be removed")
	_, err = os.Stat(j.Dir() + ".tmp")
	assert.True(t, os.IsNotExist(err))

	// installed runtimes are found without asking the api
	cached, err := factory.Version(context.Background(), 17)
	require.NoError(t, err)
	assert.False(t, cached.NeedsDownloading())
	assert.Equal(t, "jdk-17.0.5+8", cached.Release())
	assert.Len(t, srv.queries, 1)
}

func TestJava_Update_InvalidChecksum(t *testing.T) {
	srv := newAdoptiumServer(t, "0000000000000000000000000000000000000000000000000000000000000000")
	dir := t.TempDir()

	j, err := testFactory(srv, dir).Version(context.Background(), 17)
	require.NoError(t, err)

	err = j.Update(context.Background())
	assert.Error(t, err)
	assert.True(t, j.NeedsDownloading())
	assert.NoDirExists(t, j.Dir())
	assert.NoFileExists(t, filepath.Join(dir, "OpenJDK17U-jre.zip"))
}

func TestFactory_Version_NoRelease(t *testing.T) {
	srv := newAdoptiumServer(t, "")
	_, err := testFactory(srv, t.TempDir()).Version(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNoRelease)
}

func TestVersion_JavaMajorVersion(t *testing.T) {
	v := minecraft.NewVersion("1.12.2", "release", "1.12", minecraft.VersionDownloads{}, nil, nil, minecraft.AssetIndexRef{}, "Main")
	assert.Equal(t, minecraft.DefaultJavaMajorVersion, v.JavaMajorVersion())
}
