// Package mojang fetches version metadata from the Mojang (and Fabric) meta servers
package mojang

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/pkg/errors"
)

const (
	// DefaultVersionListURL lists all minecraft versions
	DefaultVersionListURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"
	// DefaultFabricMetaURL is the base of the fabric meta api
	DefaultFabricMetaURL = "https://meta.fabricmc.net"
)

// Client fetches version manifests
type Client struct {
	R              *resty.Client
	VersionListURL string
	FabricMetaURL  string
	// Repository is used for libraries that do not define their own URL
	Repository string
}

// New returns a client using the given http client
func New(httpClient *http.Client) *Client {
	return &Client{
		R:              resty.NewWithClient(httpClient),
		VersionListURL: DefaultVersionListURL,
		FabricMetaURL:  DefaultFabricMetaURL,
		Repository:     minecraft.DefaultRepository,
	}
}

func (c *Client) get(ctx context.Context, url string, result interface{}) error {
	res, err := c.R.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return err
	}
	if res.StatusCode() == http.StatusNotFound {
		return errors.Wrap(ErrVersionNotFound, url)
	}
	if res.IsError() {
		return fmt.Errorf("invalid status code: %s from %s", res.Status(), url)
	}
	if err := json.Unmarshal(res.Body(), result); err != nil {
		return errors.Wrapf(err, "invalid json from %s", url)
	}
	return nil
}

// ListVersions returns all available versions
func (c *Client) ListVersions(ctx context.Context) (*VersionList, error) {
	list := VersionList{}
	if err := c.get(ctx, c.VersionListURL, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// FetchVersion returns the untyped manifest of the version
func (c *Client) FetchVersion(ctx context.Context, entry *VersionEntry) (map[string]interface{}, error) {
	raw := make(map[string]interface{})
	if err := c.get(ctx, entry.URL, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// FetchFabricProfile returns the untyped launch profile of a fabric loader version.
// The profile inherits from the minecraft version
func (c *Client) FetchFabricProfile(ctx context.Context, minecraftVersion string, loader string) (map[string]interface{}, error) {
	profileURL := fmt.Sprintf(
		"%s/v2/versions/loader/%s/%s/profile/json",
		c.FabricMetaURL,
		url.PathEscape(minecraftVersion),
		url.PathEscape(loader),
	)
	raw := make(map[string]interface{})
	if err := c.get(ctx, profileURL, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// FetchAssetIndex returns the asset index of a version
func (c *Client) FetchAssetIndex(ctx context.Context, ref minecraft.AssetIndexRef) (*minecraft.AssetIndex, error) {
	index := minecraft.AssetIndex{}
	if err := c.get(ctx, ref.URL, &index); err != nil {
		return nil, err
	}
	return &index, nil
}

// Resolve finds the version matching query, fetches its manifest and
// parses it into a version
func (c *Client) Resolve(ctx context.Context, query string) (*minecraft.Version, error) {
	raw, err := c.ResolveRaw(ctx, query)
	if err != nil {
		return nil, err
	}
	return minecraft.ParseVersion(raw, c.Repository)
}

// ResolveRaw finds the version matching query and returns its untyped manifest
func (c *Client) ResolveRaw(ctx context.Context, query string) (map[string]interface{}, error) {
	list, err := c.ListVersions(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := list.Find(query)
	if err != nil {
		return nil, errors.Wrapf(err, "could not find %q", query)
	}
	return c.FetchVersion(ctx, entry)
}

// ResolveFabric returns the fabric loader profile merged over its minecraft version
func (c *Client) ResolveFabric(ctx context.Context, query string, loader string) (*minecraft.Version, error) {
	list, err := c.ListVersions(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := list.Find(query)
	if err != nil {
		return nil, errors.Wrapf(err, "could not find %q", query)
	}

	profile, err := c.FetchFabricProfile(ctx, entry.ID, loader)
	if err != nil {
		return nil, err
	}
	parent, err := c.FetchVersion(ctx, entry)
	if err != nil {
		return nil, err
	}
	return minecraft.ParseVersion(minecraft.MergeManifests(profile, parent), c.Repository)
}
