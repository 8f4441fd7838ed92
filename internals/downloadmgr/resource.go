package downloadmgr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/minepkg/mclaunch/internals/ownhttp"
	"github.com/spf13/afero"
)

var defaultClient = ownhttp.New()

// Resource is a URL, target pair with an optional expected hash that will be downloaded
// using http(s)
type Resource struct {
	URL  string
	Path string
	// Hash is the expected hex digest. Empty means no verification
	Hash string
	// HashAlgorithm defaults to sha1
	HashAlgorithm string

	// Client defaults to a shared client with the mclaunch User-Agent
	Client *http.Client
	// Fs is where the file is written to (defaults to the OS filesystem)
	Fs afero.Fs
}

// NewResource creates a resource to download URL to path
func NewResource(URL string, path string, hash string) *Resource {
	return &Resource{
		URL:           URL,
		Path:          path,
		Hash:          hash,
		HashAlgorithm: DefaultHashAlgorithm,
	}
}

// FromArtifact creates a resource for an artifact. The artifact path is relative to dir
func FromArtifact(artifact minecraft.Artifact, dir string) *Resource {
	return NewResource(artifact.URL, filepath.Join(dir, filepath.FromSlash(artifact.Path)), artifact.SHA1)
}

func (r *Resource) String() string {
	return r.URL + " -> " + r.Path
}

func (r *Resource) fs() afero.Fs {
	if r.Fs == nil {
		return afero.NewOsFs()
	}
	return r.Fs
}

func (r *Resource) client() *http.Client {
	if r.Client == nil {
		return defaultClient
	}
	return r.Client
}

func (r *Resource) algorithm() string {
	if r.HashAlgorithm == "" {
		return DefaultHashAlgorithm
	}
	return r.HashAlgorithm
}

// Exists returns true if something already exists at the target path
func (r *Resource) Exists() bool {
	_, err := r.fs().Stat(r.Path)
	return err == nil
}

// Size returns the size of the file at the target path
func (r *Resource) Size() (int64, error) {
	info, err := r.fs().Stat(r.Path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Verify checks the file on disk against the expected hash
func (r *Resource) Verify() error {
	return verify(r.fs(), r.Path, r.algorithm(), r.Hash)
}

// Download fetches the resource and reports if the file is usable.
// Network and verification failures are reported to handler as an error event
// and result in false. A false result does not mean the file is absent: a partially
// written file may remain.
// The returned error is only set for an unsupported hash algorithm.
// With checkAfter set, the written file must match the expected hash (if there is one).
func (r *Resource) Download(ctx context.Context, checkAfter bool, handler EventHandler) (bool, error) {
	// fail fast for programmer errors, before touching the network
	if _, err := newHasher(r.algorithm()); err != nil {
		return false, err
	}

	handler.debug("GET " + r.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		handler.fail(err)
		return false, nil
	}

	res, err := r.client().Do(req)
	if err != nil {
		handler.fail(fmt.Errorf("error while fetching %s: %w", r.URL, err))
		return false, nil
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		handler.fail(fmt.Errorf("invalid status code: %s from %s", res.Status, r.URL))
		return false, nil
	}

	fs := r.fs()
	if err := fs.MkdirAll(filepath.Dir(r.Path), os.ModePerm); err != nil {
		handler.fail(err)
		return false, nil
	}

	dest, err := fs.Create(r.Path)
	if err != nil {
		handler.fail(err)
		return false, nil
	}

	counter := &progressWriter{total: res.ContentLength, handler: handler}
	written, err := io.Copy(io.MultiWriter(dest, counter), res.Body)
	if err == nil {
		err = dest.Sync()
	}
	if closeErr := dest.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		handler.fail(fmt.Errorf("error while writing %s: %w", r.Path, err))
		return false, nil
	}
	handler.debug(fmt.Sprintf("wrote %s to %s", humanize.Bytes(uint64(written)), r.Path))

	if !checkAfter {
		return true, nil
	}
	if r.Hash == "" {
		handler.debug("no hash set for " + r.Path + ", skipping verification")
		return true, nil
	}
	if err := r.Verify(); err != nil {
		handler.fail(err)
		return false, nil
	}
	return true, nil
}

// progressWriter emits a progress event for every chunk written
type progressWriter struct {
	received int64
	total    int64
	handler  EventHandler
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.received += int64(len(b))
	p.handler.progress(Status{Chunk: int64(len(b)), Received: p.received, Total: p.total})
	return len(b), nil
}
